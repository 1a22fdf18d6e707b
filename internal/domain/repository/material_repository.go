package repository

import (
	"context"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/errors"
)

// Domain-specific errors for material persistence.
var (
	// ErrMaterialNotFound is returned when a material has never been created.
	ErrMaterialNotFound = errors.New("raw material not found")
)

// MaterialRepository defines the interface for raw-material stock records.
// Serialization of concurrent balance changes is the caller's responsibility
// (per-material locks in the inventory and batch services).
type MaterialRepository interface {
	// FindByID retrieves a material by id.
	// Returns ErrMaterialNotFound if the material was never restocked.
	FindByID(ctx context.Context, materialID string) (*entity.RawMaterial, error)

	// Save persists a material record, creating it if absent.
	Save(ctx context.Context, material *entity.RawMaterial) error
}
