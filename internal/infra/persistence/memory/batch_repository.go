package memory

import (
	"context"
	"slices"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/domain/repository"
)

// batchRepository implements repository.BatchRepository on the memory store.
type batchRepository struct {
	store *Store
	inTx  bool
}

// NewBatchRepository is the constructor for the in-memory batch repository.
func NewBatchRepository(store *Store) repository.BatchRepository {
	return &batchRepository{store: store}
}

// Create persists a new batch record, enforcing the one-shot key constraint.
func (repo *batchRepository) Create(_ context.Context, batch *entity.Batch) error {
	var exists bool
	repo.store.write(repo.inTx, func() {
		key := batch.Key()
		if _, exists = repo.store.batches[key]; exists {
			return
		}
		stored := *batch
		stored.Materials = slices.Clone(batch.Materials)
		repo.store.batches[key] = stored
	})

	if exists {
		return repository.ErrBatchAlreadyExists
	}

	return nil
}

// FindByKey retrieves a batch by its (medicineID, batchID) pair.
func (repo *batchRepository) FindByKey(_ context.Context, medicineID, batchID string) (*entity.Batch, error) {
	var (
		batch entity.Batch
		found bool
	)
	repo.store.read(repo.inTx, func() {
		batch, found = repo.store.batches[entity.BatchKey(medicineID, batchID)]
	})

	if !found {
		return nil, repository.ErrBatchNotFound
	}

	batch.Materials = slices.Clone(batch.Materials)

	return &batch, nil
}
