package impl

import (
	"context"
	"log/slog"
	"time"

	"pharmachain/internal/domain/entity"
	domainerrors "pharmachain/internal/domain/errors"
	"pharmachain/internal/domain/repository"
	"pharmachain/internal/domain/service"
	"pharmachain/internal/usecase"
	"pharmachain/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type inventoryService struct {
	roleRepo      repository.RoleRepository
	materialRepo  repository.MaterialRepository
	txManager     repository.TransactionManager
	materialLocks *util.KeyedMutex
	publisher     service.EventPublisher
	logger        *slog.Logger
}

// InventoryServiceParams holds dependencies for InventoryService, injected by Fx.
type InventoryServiceParams struct {
	fx.In

	RoleRepo      repository.RoleRepository
	MaterialRepo  repository.MaterialRepository
	TxManager     repository.TransactionManager
	MaterialLocks *util.KeyedMutex
	Publisher     service.EventPublisher
	Logger        *slog.Logger
}

// NewInventoryService creates a new inventory service instance
func NewInventoryService(params InventoryServiceParams) usecase.InventoryUsecase {
	return &inventoryService{
		roleRepo:      params.RoleRepo,
		materialRepo:  params.MaterialRepo,
		txManager:     params.TxManager,
		materialLocks: params.MaterialLocks,
		publisher:     params.Publisher,
		logger:        params.Logger,
	}
}

// Restock increases material balances, all lines or none. Only the supplier
// may call it.
func (s *inventoryService) Restock(ctx context.Context, actor entity.Identity, input *usecase.RestockInput) error {
	materialIDs, err := validateMaterialLines(input.Materials)
	if err != nil {
		return err
	}

	role, err := s.roleRepo.GetRole(ctx, actor)
	if err != nil {
		return errors.Wrap(err, "failed to get caller role")
	}
	if role != entity.RoleSupplier {
		return domainerrors.ErrUnauthorized.WrapMessage("only the supplier may restock materials")
	}

	// Serialize balance changes per material across restocks and batch
	// deductions.
	unlock := s.materialLocks.LockAll(materialIDs)
	defer unlock()

	now := time.Now().UTC()

	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		materialRepo := f.NewMaterialRepository()

		for _, line := range input.Materials {
			material, err := materialRepo.FindByID(ctx, line.MaterialID)
			if err != nil {
				if !errors.Is(err, repository.ErrMaterialNotFound) {
					return errors.Wrap(err, "failed to load material")
				}
				material = &entity.RawMaterial{
					ID:        line.MaterialID,
					CreatedAt: now,
				}
			}

			material.Quantity += line.Quantity
			material.UpdatedAt = now

			if err := materialRepo.Save(ctx, material); err != nil {
				return errors.Wrap(err, "failed to save material")
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	event := newDomainEvent(service.EventRawMaterialAdded, actor)
	event.Materials = toMaterialChanges(input.Materials)
	publishEvent(ctx, s.publisher, s.logger, event)

	return nil
}

// GetMaterial returns the stock record of one material.
func (s *inventoryService) GetMaterial(ctx context.Context, materialID string) (*entity.RawMaterial, error) {
	if materialID == "" {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("material id must not be empty")
	}

	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, repository.ErrMaterialNotFound) {
			return nil, domainerrors.ErrMaterialNotFound.WrapMessage("unknown material: " + materialID)
		}

		return nil, errors.Wrap(err, "failed to find material")
	}

	return material, nil
}

// validateMaterialLines rejects empty, non-positive and duplicated lines and
// returns the distinct material ids.
func validateMaterialLines(lines []usecase.MaterialLine) ([]string, error) {
	if len(lines) == 0 {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("at least one material line is required")
	}

	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.MaterialID == "" {
			return nil, domainerrors.ErrInvalidArgument.WrapMessage("material id must not be empty")
		}
		if line.Quantity <= 0 {
			return nil, domainerrors.ErrInvalidArgument.WrapMessage("material quantity must be positive: " + line.MaterialID)
		}
		if _, dup := seen[line.MaterialID]; dup {
			return nil, domainerrors.ErrInvalidArgument.WrapMessage("duplicate material line: " + line.MaterialID)
		}
		seen[line.MaterialID] = struct{}{}
		ids = append(ids, line.MaterialID)
	}

	return ids, nil
}

func toMaterialChanges(lines []usecase.MaterialLine) []service.MaterialChange {
	changes := make([]service.MaterialChange, 0, len(lines))
	for _, line := range lines {
		changes = append(changes, service.MaterialChange{
			MaterialID: line.MaterialID,
			Quantity:   line.Quantity,
		})
	}

	return changes
}
