package usecase

import (
	"context"

	"pharmachain/internal/domain/entity"
)

// MaterialLine is one (material, quantity) pair in a restock or batch request.
type MaterialLine struct {
	MaterialID string `json:"materialId" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
}

// RestockInput carries one supplier restock call. Lines apply atomically:
// either every material balance grows or none does.
type RestockInput struct {
	Materials []MaterialLine `json:"materials" validate:"required,min=1,dive"`
}

// InventoryUsecase defines the raw-material stock use cases.
type InventoryUsecase interface {
	// Restock increases material balances. Only the supplier may call it.
	// Materials seen for the first time are created with the given quantity.
	Restock(ctx context.Context, actor entity.Identity, input *RestockInput) error

	// GetMaterial returns the stock record of one material.
	GetMaterial(ctx context.Context, materialID string) (*entity.RawMaterial, error)
}
