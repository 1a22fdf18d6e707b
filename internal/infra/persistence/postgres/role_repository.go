// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"pharmachain/internal/domain/entity"
	domainerrors "pharmachain/internal/domain/errors"
	"pharmachain/internal/domain/repository"
	"pharmachain/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// roleRepository implements the repository.RoleRepository interface.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{
		db: db,
	}
}

// GetRole returns the current role of an identity. Identities without a row
// default to entity.RoleNone.
func (repo *roleRepository) GetRole(ctx context.Context, identity entity.Identity) (entity.Role, error) {
	var participantM model.ParticipantModel

	if err := repo.db.WithContext(ctx).
		Where("identity = ?", identity.String()).
		First(&participantM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.RoleNone, nil
		}

		return entity.RoleNone, errors.Wrap(err, "failed to find participant role")
	}

	return entity.RoleFromString(participantM.Role), nil
}

// SetRole upserts the role of an identity.
func (repo *roleRepository) SetRole(ctx context.Context, identity entity.Identity, role entity.Role) error {
	participantM := &model.ParticipantModel{
		Identity: identity.String(),
		Role:     role.String(),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(participantM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to set participant role")
	}

	return nil
}

// Owner returns the identity stored under the owner state key.
func (repo *roleRepository) Owner(ctx context.Context) (entity.Identity, error) {
	identity, err := repo.stateIdentity(ctx, model.ChainStateOwnerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrOwnerNotSet
		}

		return "", errors.Wrap(err, "failed to find chain owner")
	}

	return identity, nil
}

// SetOwner upserts the owner state key.
func (repo *roleRepository) SetOwner(ctx context.Context, identity entity.Identity) error {
	return repo.setStateIdentity(ctx, model.ChainStateOwnerKey, identity)
}

// Supplier returns the identity stored under the supplier state key, empty
// when the chain was never seeded.
func (repo *roleRepository) Supplier(ctx context.Context) (entity.Identity, error) {
	identity, err := repo.stateIdentity(ctx, model.ChainStateSupplierKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", errors.Wrap(err, "failed to find chain supplier")
	}

	return identity, nil
}

// Seed installs the genesis owner and supplier once. The owner row acts as
// the sentinel: when it already exists the seed is a no-op, so restarts are
// safe.
func (repo *roleRepository) Seed(ctx context.Context, owner, supplier entity.Identity) error {
	if _, err := repo.Owner(ctx); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrOwnerNotSet) {
		return err
	}

	if err := repo.setStateIdentity(ctx, model.ChainStateOwnerKey, owner); err != nil {
		return err
	}
	if err := repo.setStateIdentity(ctx, model.ChainStateSupplierKey, supplier); err != nil {
		return err
	}
	if err := repo.SetRole(ctx, owner, entity.RoleAdmin); err != nil {
		return err
	}

	return repo.SetRole(ctx, supplier, entity.RoleSupplier)
}

func (repo *roleRepository) stateIdentity(ctx context.Context, key string) (entity.Identity, error) {
	var stateM model.ChainStateModel

	if err := repo.db.WithContext(ctx).
		Where("key = ?", key).
		First(&stateM).Error; err != nil {
		return "", err
	}

	return entity.Identity(stateM.Identity), nil
}

func (repo *roleRepository) setStateIdentity(ctx context.Context, key string, identity entity.Identity) error {
	stateM := &model.ChainStateModel{
		Key:      key,
		Identity: identity.String(),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"identity", "updated_at"}),
		}).
		Create(stateM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update chain state")
	}

	return nil
}
