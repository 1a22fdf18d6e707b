package usecase

import (
	"context"

	"pharmachain/internal/domain/entity"
)

// CreateBatchInput carries one batch creation request. Materials are the
// consumption list: each line is deducted from stock when the batch commits.
type CreateBatchInput struct {
	MedicineID string         `json:"medicineId" validate:"required"`
	BatchID    string         `json:"batchId" validate:"required"`
	Materials  []MaterialLine `json:"materials" validate:"required,min=1,dive"`
}

// BatchUsecase defines the production batch use cases.
type BatchUsecase interface {
	// CreateBatch records a new batch and deducts its materials from stock,
	// all-or-nothing. Only a manufacturer may call it.
	CreateBatch(ctx context.Context, actor entity.Identity, input *CreateBatchInput) (*entity.Batch, error)

	// GetBatch returns one immutable batch record.
	GetBatch(ctx context.Context, medicineID, batchID string) (*entity.Batch, error)

	// GenerateBatchQR renders the traceability QR code of an existing batch.
	GenerateBatchQR(ctx context.Context, medicineID, batchID string) ([]byte, error)
}
