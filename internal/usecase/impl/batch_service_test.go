package impl

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain/internal/domain/entity"
	domainerrors "pharmachain/internal/domain/errors"
	"pharmachain/internal/domain/service"
	"pharmachain/internal/usecase"
)

func TestBatchService_CreateBatch_DeductsMaterials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "acme-pharma", "manufacturer")

	env.restock(t,
		usecase.MaterialLine{MaterialID: "paracetamol", Quantity: 100},
		usecase.MaterialLine{MaterialID: "starch", Quantity: 60},
	)

	batch, err := env.batches.CreateBatch(ctx, "acme-pharma", &usecase.CreateBatchInput{
		MedicineID: "panadol",
		BatchID:    "B-001",
		Materials: []usecase.MaterialLine{
			{MaterialID: "paracetamol", Quantity: 40},
			{MaterialID: "starch", Quantity: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.Identity("acme-pharma"), batch.Manufacturer)

	paracetamol, err := env.inventory.GetMaterial(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(60), paracetamol.Quantity)

	starch, err := env.inventory.GetMaterial(ctx, "starch")
	require.NoError(t, err)
	assert.Equal(t, int64(50), starch.Quantity)

	stored, err := env.batches.GetBatch(ctx, "panadol", "B-001")
	require.NoError(t, err)
	require.Len(t, stored.Materials, 2)
	assert.Equal(t, "paracetamol", stored.Materials[0].MaterialID)

	events := env.publisher.EventsOfType(service.EventBatchCreated)
	require.Len(t, events, 1)
	assert.Equal(t, "B-001", events[0].BatchID)
}

func TestBatchService_CreateBatch_InsufficientLeavesAllBalancesUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "acme-pharma", "manufacturer")

	env.restock(t,
		usecase.MaterialLine{MaterialID: "paracetamol", Quantity: 100},
		usecase.MaterialLine{MaterialID: "starch", Quantity: 5},
	)

	// paracetamol is plentiful but starch is not: nothing may change.
	_, err := env.batches.CreateBatch(ctx, "acme-pharma", &usecase.CreateBatchInput{
		MedicineID: "panadol",
		BatchID:    "B-001",
		Materials: []usecase.MaterialLine{
			{MaterialID: "paracetamol", Quantity: 40},
			{MaterialID: "starch", Quantity: 10},
		},
	})
	assertAppError(t, err, domainerrors.ErrInsufficientQuantity)

	paracetamol, err := env.inventory.GetMaterial(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(100), paracetamol.Quantity)

	_, err = env.batches.GetBatch(ctx, "panadol", "B-001")
	assertAppError(t, err, domainerrors.ErrBatchNotFound)
	assert.Empty(t, env.publisher.EventsOfType(service.EventBatchCreated))
}

func TestBatchService_CreateBatch_SequentialDeductions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "acme-pharma", "manufacturer")

	env.restock(t, usecase.MaterialLine{MaterialID: "paracetamol", Quantity: 100})

	_, err := env.batches.CreateBatch(ctx, "acme-pharma", &usecase.CreateBatchInput{
		MedicineID: "panadol",
		BatchID:    "B-001",
		Materials:  []usecase.MaterialLine{{MaterialID: "paracetamol", Quantity: 40}},
	})
	require.NoError(t, err)

	material, err := env.inventory.GetMaterial(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(60), material.Quantity)

	_, err = env.batches.CreateBatch(ctx, "acme-pharma", &usecase.CreateBatchInput{
		MedicineID: "panadol",
		BatchID:    "B-002",
		Materials:  []usecase.MaterialLine{{MaterialID: "paracetamol", Quantity: 70}},
	})
	assertAppError(t, err, domainerrors.ErrInsufficientQuantity)

	material, err = env.inventory.GetMaterial(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(60), material.Quantity)
}

func TestBatchService_CreateBatch_DuplicateKeyRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "acme-pharma", "manufacturer")

	env.restock(t, usecase.MaterialLine{MaterialID: "paracetamol", Quantity: 100})

	input := &usecase.CreateBatchInput{
		MedicineID: "panadol",
		BatchID:    "B-001",
		Materials:  []usecase.MaterialLine{{MaterialID: "paracetamol", Quantity: 10}},
	}

	_, err := env.batches.CreateBatch(ctx, "acme-pharma", input)
	require.NoError(t, err)

	_, err = env.batches.CreateBatch(ctx, "acme-pharma", input)
	assertAppError(t, err, domainerrors.ErrBatchAlreadyExists)

	// The duplicate attempt must not deduct anything.
	material, err := env.inventory.GetMaterial(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(90), material.Quantity)
}

func TestBatchService_CreateBatch_OnlyManufacturer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "big-warehouse", "wholesaler")

	env.restock(t, usecase.MaterialLine{MaterialID: "paracetamol", Quantity: 100})

	input := &usecase.CreateBatchInput{
		MedicineID: "panadol",
		BatchID:    "B-001",
		Materials:  []usecase.MaterialLine{{MaterialID: "paracetamol", Quantity: 10}},
	}

	for _, caller := range []string{testOwner, testSupplier, "big-warehouse", "stranger"} {
		_, err := env.batches.CreateBatch(ctx, entity.Identity(caller), input)
		assertAppError(t, err, domainerrors.ErrUnauthorized)
	}

	material, err := env.inventory.GetMaterial(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(100), material.Quantity)
}

func TestBatchService_CreateBatch_NoConcurrentDoubleSpend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "acme-pharma", "manufacturer")

	env.restock(t, usecase.MaterialLine{MaterialID: "paracetamol", Quantity: 100})

	const workers = 10

	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = env.batches.CreateBatch(ctx, "acme-pharma", &usecase.CreateBatchInput{
				MedicineID: "panadol",
				BatchID:    "B-" + string(rune('A'+i)),
				Materials:  []usecase.MaterialLine{{MaterialID: "paracetamol", Quantity: 30}},
			})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assertAppError(t, err, domainerrors.ErrInsufficientQuantity)
		}
	}
	assert.Equal(t, 3, succeeded, "only three 30-unit deductions fit into 100")

	material, err := env.inventory.GetMaterial(ctx, "paracetamol")
	require.NoError(t, err)
	assert.Equal(t, int64(10), material.Quantity)
}

func TestBatchService_GenerateBatchQR(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "acme-pharma", "manufacturer")

	env.restock(t, usecase.MaterialLine{MaterialID: "paracetamol", Quantity: 10})

	_, err := env.batches.CreateBatch(ctx, "acme-pharma", &usecase.CreateBatchInput{
		MedicineID: "panadol",
		BatchID:    "B-001",
		Materials:  []usecase.MaterialLine{{MaterialID: "paracetamol", Quantity: 10}},
	})
	require.NoError(t, err)

	png, err := env.batches.GenerateBatchQR(ctx, "panadol", "B-001")
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = env.batches.GenerateBatchQR(ctx, "panadol", "missing")
	assertAppError(t, err, domainerrors.ErrBatchNotFound)
}
