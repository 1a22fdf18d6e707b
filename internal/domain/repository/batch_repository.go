package repository

import (
	"context"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/errors"
)

// Domain-specific errors for batch persistence.
var (
	// ErrBatchNotFound is returned when no batch exists for the pair.
	ErrBatchNotFound = errors.New("batch not found")
	// ErrBatchAlreadyExists is returned on a duplicate (medicineID, batchID) key.
	ErrBatchAlreadyExists = errors.New("batch already exists")
)

// BatchRepository defines the interface for immutable batch records.
type BatchRepository interface {
	// Create persists a new batch record.
	// Returns ErrBatchAlreadyExists if the (medicineID, batchID) pair is taken.
	Create(ctx context.Context, batch *entity.Batch) error

	// FindByKey retrieves a batch by its (medicineID, batchID) pair.
	// Returns ErrBatchNotFound if absent.
	FindByKey(ctx context.Context, medicineID, batchID string) (*entity.Batch, error)
}
