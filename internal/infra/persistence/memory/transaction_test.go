package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/domain/repository"
	"pharmachain/internal/errors"
)

func TestTransactionManager_CommitPersistsWrites(t *testing.T) {
	store := NewStore()
	tm := NewTransactionManager(store)

	err := tm.Execute(context.Background(), func(f repository.RepositoryFactory) error {
		if err := f.NewMaterialRepository().Save(context.Background(), &entity.RawMaterial{ID: "paracetamol", Quantity: 50}); err != nil {
			return err
		}

		return f.NewOrderRepository().Create(context.Background(), &entity.Order{ID: "ord-1", MedicineID: "aspirin", Quantity: 5, Status: entity.OrderStatusCreated})
	})
	require.NoError(t, err)

	material, err := NewMaterialRepository(store).FindByID(context.Background(), "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(50), material.Quantity)

	order, err := NewOrderRepository(store).FindByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCreated, order.Status)
}

func TestTransactionManager_RollbackRestoresState(t *testing.T) {
	store := NewStore()
	materials := NewMaterialRepository(store)
	require.NoError(t, materials.Save(context.Background(), &entity.RawMaterial{ID: "ibuprofen", Quantity: 100}))

	boom := errors.New("boom")
	err := NewTransactionManager(store).Execute(context.Background(), func(f repository.RepositoryFactory) error {
		repo := f.NewMaterialRepository()
		if err := repo.Save(context.Background(), &entity.RawMaterial{ID: "ibuprofen", Quantity: 10}); err != nil {
			return err
		}
		if err := repo.Save(context.Background(), &entity.RawMaterial{ID: "codeine", Quantity: 30}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	material, err := materials.FindByID(context.Background(), "ibuprofen")
	require.NoError(t, err)
	assert.Equal(t, int64(100), material.Quantity, "failed transaction must not leave partial writes")

	_, err = materials.FindByID(context.Background(), "codeine")
	assert.ErrorIs(t, err, repository.ErrMaterialNotFound)
}

func TestBatchRepository_CreateRejectsDuplicateKey(t *testing.T) {
	store := NewStore()
	repo := NewBatchRepository(store)

	batch := &entity.Batch{
		MedicineID: "aspirin",
		BatchID:    "B-001",
		Materials:  []entity.BatchMaterial{{MaterialID: "acetylsalicylic-acid", Quantity: 10}},
	}
	require.NoError(t, repo.Create(context.Background(), batch))

	err := repo.Create(context.Background(), batch)
	assert.ErrorIs(t, err, repository.ErrBatchAlreadyExists)
}

func TestRoleRepository_SeedIsIdempotent(t *testing.T) {
	store := NewStore()
	repo := NewRoleRepository(store)

	require.NoError(t, repo.Seed(context.Background(), "org1-admin", "org1-supplier"))
	require.NoError(t, repo.Seed(context.Background(), "intruder", "intruder"))

	owner, err := repo.Owner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Identity("org1-admin"), owner)

	role, err := repo.GetRole(context.Background(), "org1-supplier")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupplier, role)
}
