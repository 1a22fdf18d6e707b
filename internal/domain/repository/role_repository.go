// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/errors"
)

// Domain-specific errors for role persistence.
var (
	// ErrOwnerNotSet is returned before the genesis seed has run.
	ErrOwnerNotSet = errors.New("chain owner not set")
)

// RoleRepository defines the interface for the identity → role registry and
// the owner/supplier pointers. No other component writes roles.
type RoleRepository interface {
	// GetRole returns the role of an identity, entity.RoleNone for unseen identities.
	GetRole(ctx context.Context, identity entity.Identity) (entity.Role, error)

	// SetRole persists the role of an identity, creating the record if absent.
	// Setting entity.RoleNone keeps the record and acts as revocation.
	SetRole(ctx context.Context, identity entity.Identity, role entity.Role) error

	// Owner returns the identity currently holding ownership.
	// Returns ErrOwnerNotSet before the genesis seed.
	Owner(ctx context.Context) (entity.Identity, error)

	// SetOwner updates the owner pointer.
	SetOwner(ctx context.Context, identity entity.Identity) error

	// Supplier returns the single supplier identity pinned at bootstrap.
	Supplier(ctx context.Context) (entity.Identity, error)

	// Seed installs the genesis owner (Admin role) and supplier (Supplier role)
	// if no owner is set yet. It is idempotent across restarts.
	Seed(ctx context.Context, owner, supplier entity.Identity) error
}
