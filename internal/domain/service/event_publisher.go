package service

import (
	"context"
	"time"
)

// EventType names a domain event emitted on a successful state change.
type EventType string

const (
	// EventParticipantRegistered is emitted when the admin sets a role.
	EventParticipantRegistered EventType = "ParticipantRegistered"
	// EventOwnershipTransferred is emitted when ownership moves to a new admin.
	EventOwnershipTransferred EventType = "OwnershipTransferred"
	// EventRawMaterialAdded is emitted on a successful restock call.
	EventRawMaterialAdded EventType = "RawMaterialAdded"
	// EventBatchCreated is emitted when a batch record is written.
	EventBatchCreated EventType = "BatchCreated"
	// EventOrderCreated is emitted when an order is placed.
	EventOrderCreated EventType = "OrderCreated"
	// EventTransporterAssigned is emitted when a transporter is set on an order.
	EventTransporterAssigned EventType = "TransporterAssigned"
	// EventOrderStatusUpdated is emitted on an applied lifecycle transition.
	EventOrderStatusUpdated EventType = "OrderStatusUpdated"
)

// MaterialChange is one (material, quantity) line carried by restock and
// batch-creation events.
type MaterialChange struct {
	MaterialID string `json:"material_id"`
	Quantity   int64  `json:"quantity"`
}

// DomainEvent is the immutable notification consumed by the external
// audit/notification collaborator. Exactly one is published per successful
// mutating call; fields not relevant to the event type stay empty.
type DomainEvent struct {
	EventID    string           `json:"event_id"`
	Type       EventType        `json:"type"`
	OccurredAt time.Time        `json:"occurred_at"`
	Actor      string           `json:"actor"` // The authenticated caller identity.
	Identity   string           `json:"identity,omitempty"`
	Role       string           `json:"role,omitempty"`
	Materials  []MaterialChange `json:"materials,omitempty"`
	MedicineID string           `json:"medicine_id,omitempty"`
	BatchID    string           `json:"batch_id,omitempty"`
	OrderID    string           `json:"order_id,omitempty"`
	Quantity   int64            `json:"quantity,omitempty"`
	Status     string           `json:"status,omitempty"`
}

// EventPublisher defines the interface for publishing domain events to the
// audit/notification collaborator.
type EventPublisher interface {
	// PublishDomainEvent publishes one domain event for async consumption.
	PublishDomainEvent(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
