package memory

import (
	"context"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/domain/repository"
)

// orderRepository implements repository.OrderRepository on the memory store.
type orderRepository struct {
	store *Store
	inTx  bool
}

// NewOrderRepository is the constructor for the in-memory order repository.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{store: store}
}

// Create persists a new order, enforcing id uniqueness.
func (repo *orderRepository) Create(_ context.Context, order *entity.Order) error {
	var exists bool
	repo.store.write(repo.inTx, func() {
		if _, exists = repo.store.orders[order.ID]; exists {
			return
		}
		repo.store.orders[order.ID] = *order
	})

	if exists {
		return repository.ErrOrderAlreadyExists
	}

	return nil
}

// FindByID retrieves an order by id.
func (repo *orderRepository) FindByID(_ context.Context, orderID string) (*entity.Order, error) {
	var (
		order entity.Order
		found bool
	)
	repo.store.read(repo.inTx, func() {
		order, found = repo.store.orders[orderID]
	})

	if !found {
		return nil, repository.ErrOrderNotFound
	}

	return &order, nil
}

// Update replaces an existing order record.
func (repo *orderRepository) Update(_ context.Context, order *entity.Order) error {
	var found bool
	repo.store.write(repo.inTx, func() {
		if _, found = repo.store.orders[order.ID]; !found {
			return
		}
		repo.store.orders[order.ID] = *order
	})

	if !found {
		return repository.ErrOrderNotFound
	}

	return nil
}

// AppendStatusChange records one applied lifecycle transition.
func (repo *orderRepository) AppendStatusChange(_ context.Context, change *entity.OrderStatusChange) error {
	repo.store.write(repo.inTx, func() {
		repo.store.history[change.OrderID] = append(repo.store.history[change.OrderID], *change)
	})

	return nil
}

// StatusHistory returns the applied transitions of an order, oldest first.
func (repo *orderRepository) StatusHistory(_ context.Context, orderID string) ([]*entity.OrderStatusChange, error) {
	var changes []*entity.OrderStatusChange
	repo.store.read(repo.inTx, func() {
		for _, change := range repo.store.history[orderID] {
			c := change
			changes = append(changes, &c)
		}
	})

	return changes, nil
}
