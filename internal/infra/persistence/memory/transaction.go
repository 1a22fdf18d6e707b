package memory

import (
	"context"

	"pharmachain/internal/domain/repository"
	"pharmachain/internal/errors"
)

// transactionManager implements repository.TransactionManager with a
// snapshot-and-restore scheme. Execute holds the store's write lock for the
// whole callback, so a transaction sees a frozen view and other callers wait.
type transactionManager struct {
	store *Store
}

// NewTransactionManager is the constructor for the in-memory transaction manager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs fn against transaction-bound repositories. When fn fails or
// panics, the pre-transaction snapshot is restored.
func (tm *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "transaction aborted")
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snap := tm.store.takeSnapshot()

	defer func() {
		if r := recover(); r != nil {
			tm.store.restore(snap)
			panic(r)
		}
	}()

	if err := fn(&txRepositoryFactory{store: tm.store}); err != nil {
		tm.store.restore(snap)

		return err
	}

	return nil
}

// txRepositoryFactory hands out repositories flagged as transaction-bound so
// they skip locking; the transaction already holds the write lock.
type txRepositoryFactory struct {
	store *Store
}

func (f *txRepositoryFactory) NewRoleRepository() repository.RoleRepository {
	return &roleRepository{store: f.store, inTx: true}
}

func (f *txRepositoryFactory) NewMaterialRepository() repository.MaterialRepository {
	return &materialRepository{store: f.store, inTx: true}
}

func (f *txRepositoryFactory) NewBatchRepository() repository.BatchRepository {
	return &batchRepository{store: f.store, inTx: true}
}

func (f *txRepositoryFactory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{store: f.store, inTx: true}
}
