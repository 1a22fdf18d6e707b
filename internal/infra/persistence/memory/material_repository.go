package memory

import (
	"context"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/domain/repository"
)

// materialRepository implements repository.MaterialRepository on the memory store.
type materialRepository struct {
	store *Store
	inTx  bool
}

// NewMaterialRepository is the constructor for the in-memory material repository.
func NewMaterialRepository(store *Store) repository.MaterialRepository {
	return &materialRepository{store: store}
}

// FindByID retrieves a material by id.
func (repo *materialRepository) FindByID(_ context.Context, materialID string) (*entity.RawMaterial, error) {
	var (
		material entity.RawMaterial
		found    bool
	)
	repo.store.read(repo.inTx, func() {
		material, found = repo.store.materials[materialID]
	})

	if !found {
		return nil, repository.ErrMaterialNotFound
	}

	return &material, nil
}

// Save persists a material record, creating it if absent.
func (repo *materialRepository) Save(_ context.Context, material *entity.RawMaterial) error {
	repo.store.write(repo.inTx, func() {
		repo.store.materials[material.ID] = *material
	})

	return nil
}
