package repository

import (
	"context"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists is returned on a duplicate order id.
	ErrOrderAlreadyExists = errors.New("order already exists")
)

// OrderRepository defines the interface for order records and their
// per-transition status history.
type OrderRepository interface {
	// Create persists a new order.
	// Returns ErrOrderAlreadyExists if the id is taken.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order by id. Returns ErrOrderNotFound if absent.
	FindByID(ctx context.Context, orderID string) (*entity.Order, error)

	// Update replaces an existing order record.
	// Returns ErrOrderNotFound if the order does not exist.
	Update(ctx context.Context, order *entity.Order) error

	// AppendStatusChange records one applied lifecycle transition.
	AppendStatusChange(ctx context.Context, change *entity.OrderStatusChange) error

	// StatusHistory returns the applied transitions of an order, oldest first.
	StatusHistory(ctx context.Context, orderID string) ([]*entity.OrderStatusChange, error)
}
