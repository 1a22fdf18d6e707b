package impl

import (
	"context"
	"log/slog"

	"pharmachain/config"
	"pharmachain/internal/domain/entity"
	domainerrors "pharmachain/internal/domain/errors"
	"pharmachain/internal/domain/repository"
	"pharmachain/internal/domain/service"
	"pharmachain/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type registryService struct {
	roleRepo  repository.RoleRepository
	txManager repository.TransactionManager
	publisher service.EventPublisher
	config    *config.Config
	logger    *slog.Logger
}

// RegistryServiceParams holds dependencies for RegistryService, injected by Fx.
type RegistryServiceParams struct {
	fx.In

	RoleRepo  repository.RoleRepository
	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewRegistryService creates a new registry service instance
func NewRegistryService(params RegistryServiceParams) usecase.RegistryUsecase {
	return &registryService{
		roleRepo:  params.RoleRepo,
		txManager: params.TxManager,
		publisher: params.Publisher,
		config:    params.Config,
		logger:    params.Logger,
	}
}

// Bootstrap seeds the genesis owner and supplier from configuration. Calling
// it on an already-seeded ledger is a no-op.
func (s *registryService) Bootstrap(ctx context.Context) error {
	chainCfg := s.config.Chain
	if chainCfg == nil || chainCfg.OwnerIdentity == "" || chainCfg.SupplierIdentity == "" {
		return errors.New("chain owner and supplier identities must be configured")
	}
	if chainCfg.OwnerIdentity == chainCfg.SupplierIdentity {
		return errors.New("chain owner and supplier must be distinct identities")
	}

	owner := entity.Identity(chainCfg.OwnerIdentity)
	supplier := entity.Identity(chainCfg.SupplierIdentity)

	if err := s.roleRepo.Seed(ctx, owner, supplier); err != nil {
		return errors.Wrap(err, "failed to seed genesis participants")
	}

	s.logger.Info("participant registry ready",
		slog.String("owner", owner.String()),
		slog.String("supplier", supplier.String()),
	)

	return nil
}

// RegisterParticipant grants or revokes a role. Only the current owner may
// call it; the admin and supplier roles are never grantable.
func (s *registryService) RegisterParticipant(ctx context.Context, actor entity.Identity, input *usecase.RegisterParticipantInput) error {
	role := entity.RoleFromString(input.Role)
	if !role.IsValid() || !role.IsAssignable() {
		return domainerrors.ErrInvalidArgument.WrapMessage("role is not assignable: " + input.Role)
	}

	identity := entity.Identity(input.Identity)
	if identity.IsZero() {
		return domainerrors.ErrInvalidArgument.WrapMessage("identity must not be empty")
	}

	owner, err := s.roleRepo.Owner(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to resolve chain owner")
	}
	if actor != owner {
		return domainerrors.ErrUnauthorized.WrapMessage("only the owner may register participants")
	}

	supplier, err := s.roleRepo.Supplier(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to resolve chain supplier")
	}
	if identity == owner || identity == supplier {
		return domainerrors.ErrInvalidArgument.WrapMessage("cannot reassign the role of the owner or supplier")
	}

	if err := s.roleRepo.SetRole(ctx, identity, role); err != nil {
		return errors.Wrap(err, "failed to set participant role")
	}

	event := newDomainEvent(service.EventParticipantRegistered, actor)
	event.Identity = identity.String()
	event.Role = role.String()
	publishEvent(ctx, s.publisher, s.logger, event)

	return nil
}

// GetRole returns the current role of an identity.
func (s *registryService) GetRole(ctx context.Context, identity entity.Identity) (entity.Role, error) {
	if identity.IsZero() {
		return entity.RoleNone, domainerrors.ErrInvalidArgument.WrapMessage("identity must not be empty")
	}

	role, err := s.roleRepo.GetRole(ctx, identity)
	if err != nil {
		return entity.RoleNone, errors.Wrap(err, "failed to get participant role")
	}

	return role, nil
}

// TransferOwnership atomically moves the admin role to a new identity and
// strips it from the previous owner.
func (s *registryService) TransferOwnership(ctx context.Context, actor entity.Identity, input *usecase.TransferOwnershipInput) error {
	newOwner := entity.Identity(input.NewOwner)
	if newOwner.IsZero() {
		return domainerrors.ErrInvalidArgument.WrapMessage("new owner identity must not be empty")
	}

	owner, err := s.roleRepo.Owner(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to resolve chain owner")
	}
	if actor != owner {
		return domainerrors.ErrUnauthorized.WrapMessage("only the owner may transfer ownership")
	}
	if newOwner == owner {
		return domainerrors.ErrInvalidArgument.WrapMessage("new owner is already the owner")
	}

	supplier, err := s.roleRepo.Supplier(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to resolve chain supplier")
	}
	if newOwner == supplier {
		return domainerrors.ErrInvalidArgument.WrapMessage("the supplier cannot take ownership")
	}

	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		roleRepo := f.NewRoleRepository()

		if err := roleRepo.SetOwner(ctx, newOwner); err != nil {
			return errors.Wrap(err, "failed to set new owner")
		}
		if err := roleRepo.SetRole(ctx, newOwner, entity.RoleAdmin); err != nil {
			return errors.Wrap(err, "failed to grant admin role")
		}

		return errors.Wrap(roleRepo.SetRole(ctx, owner, entity.RoleNone), "failed to revoke previous owner role")
	})
	if err != nil {
		return err
	}

	event := newDomainEvent(service.EventOwnershipTransferred, actor)
	event.Identity = newOwner.String()
	event.Role = entity.RoleAdmin.String()
	publishEvent(ctx, s.publisher, s.logger, event)

	return nil
}
