package repository

import "context"

// TransactionManager defines the interface for managing atomic multi-step
// commits. This allows the use case layer to handle transactions without
// depending on a specific storage driver.
type TransactionManager interface {
	// Execute runs a function within a transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction,
// so that a batch write and its material deductions, or an order update and
// its history row, commit or roll back together.
type RepositoryFactory interface {
	// NewRoleRepository returns a RoleRepository bound to the current transaction.
	NewRoleRepository() RoleRepository

	// NewMaterialRepository returns a MaterialRepository bound to the current transaction.
	NewMaterialRepository() MaterialRepository

	// NewBatchRepository returns a BatchRepository bound to the current transaction.
	NewBatchRepository() BatchRepository

	// NewOrderRepository returns an OrderRepository bound to the current transaction.
	NewOrderRepository() OrderRepository
}
