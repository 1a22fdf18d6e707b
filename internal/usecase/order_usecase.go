package usecase

import (
	"context"

	"pharmachain/internal/domain/entity"
)

// CreateOrderInput carries one order placement request.
type CreateOrderInput struct {
	OrderID    string `json:"orderId" validate:"required"`
	MedicineID string `json:"medicineId" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
	Seller     string `json:"seller" validate:"required"`
}

// AssignTransporterInput names the transporter for an order.
type AssignTransporterInput struct {
	Transporter string `json:"transporter" validate:"required"`
}

// UpdateOrderStatusInput carries one lifecycle transition request.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// OrderDetails bundles an order with its applied transition history.
type OrderDetails struct {
	Order   *entity.Order
	History []*entity.OrderStatusChange
}

// OrderUsecase defines the order lifecycle use cases.
type OrderUsecase interface {
	// CreateOrder places a new order against a seller. The caller must be a
	// registered participant and the seller must hold the manufacturer role.
	CreateOrder(ctx context.Context, actor entity.Identity, input *CreateOrderInput) (*entity.Order, error)

	// AssignTransporter sets the transporter of an order before shipment.
	// Only the seller or the admin may call it.
	AssignTransporter(ctx context.Context, actor entity.Identity, orderID string, input *AssignTransporterInput) error

	// UpdateOrderStatus applies one forward lifecycle step. Who may apply a
	// step depends on the target status.
	UpdateOrderStatus(ctx context.Context, actor entity.Identity, orderID string, input *UpdateOrderStatusInput) (*entity.Order, error)

	// GetOrder returns an order with its status history.
	GetOrder(ctx context.Context, orderID string) (*OrderDetails, error)
}
