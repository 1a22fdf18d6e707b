package memory

import (
	"context"

	"pharmachain/internal/domain/entity"
	"pharmachain/internal/domain/repository"
)

// roleRepository implements repository.RoleRepository on the memory store.
type roleRepository struct {
	store *Store
	inTx  bool
}

// NewRoleRepository is the constructor for the in-memory role repository.
func NewRoleRepository(store *Store) repository.RoleRepository {
	return &roleRepository{store: store}
}

// GetRole returns the role of an identity, RoleNone for unseen identities.
func (repo *roleRepository) GetRole(_ context.Context, identity entity.Identity) (entity.Role, error) {
	role := entity.RoleNone
	repo.store.read(repo.inTx, func() {
		if r, ok := repo.store.participants[identity]; ok {
			role = r
		}
	})

	return role, nil
}

// SetRole persists the role of an identity.
func (repo *roleRepository) SetRole(_ context.Context, identity entity.Identity, role entity.Role) error {
	repo.store.write(repo.inTx, func() {
		repo.store.participants[identity] = role
	})

	return nil
}

// Owner returns the current owner identity.
func (repo *roleRepository) Owner(_ context.Context) (entity.Identity, error) {
	var owner entity.Identity
	repo.store.read(repo.inTx, func() {
		owner = repo.store.owner
	})

	if owner.IsZero() {
		return "", repository.ErrOwnerNotSet
	}

	return owner, nil
}

// SetOwner updates the owner pointer.
func (repo *roleRepository) SetOwner(_ context.Context, identity entity.Identity) error {
	repo.store.write(repo.inTx, func() {
		repo.store.owner = identity
	})

	return nil
}

// Supplier returns the pinned supplier identity.
func (repo *roleRepository) Supplier(_ context.Context) (entity.Identity, error) {
	var supplier entity.Identity
	repo.store.read(repo.inTx, func() {
		supplier = repo.store.supplier
	})

	return supplier, nil
}

// Seed installs the genesis owner and supplier if no owner is set yet.
func (repo *roleRepository) Seed(_ context.Context, owner, supplier entity.Identity) error {
	repo.store.write(repo.inTx, func() {
		if !repo.store.owner.IsZero() {
			return
		}
		repo.store.owner = owner
		repo.store.supplier = supplier
		repo.store.participants[owner] = entity.RoleAdmin
		repo.store.participants[supplier] = entity.RoleSupplier
	})

	return nil
}
