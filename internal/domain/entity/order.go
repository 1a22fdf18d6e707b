package entity

import "time"

// OrderStatus is one stage of the order delivery lifecycle.
type OrderStatus string

const (
	// OrderStatusCreated is the initial status of every order.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusVerified means the seller confirmed the order.
	OrderStatusVerified OrderStatus = "verified"
	// OrderStatusShipped means the assigned transporter picked the order up.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered is the terminal status.
	OrderStatusDelivered OrderStatus = "delivered"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusVerified, OrderStatusShipped, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// Rank returns the position of the status in the lifecycle ordering
// Created < Verified < Shipped < Delivered. Unknown statuses rank -1.
func (s OrderStatus) Rank() int {
	switch s {
	case OrderStatusCreated:
		return 0
	case OrderStatusVerified:
		return 1
	case OrderStatusShipped:
		return 2
	case OrderStatusDelivered:
		return 3
	default:
		return -1
	}
}

// OrderStatusFromString parses a status string. Callers check IsValid.
func OrderStatusFromString(s string) OrderStatus {
	return OrderStatus(s)
}

// Order is a purchase order progressing through the delivery lifecycle.
type Order struct {
	ID          string
	MedicineID  string
	Quantity    int64
	Creator     Identity    // The registered identity that placed the order.
	Seller      Identity    // Must hold RoleManufacturer at creation time.
	Transporter Identity    // Zero until assigned.
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderStatusChange records one applied lifecycle transition.
type OrderStatusChange struct {
	OrderID   string
	Status    OrderStatus
	Actor     Identity
	ChangedAt time.Time
}
