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

type batchService struct {
	roleRepo      repository.RoleRepository
	batchRepo     repository.BatchRepository
	txManager     repository.TransactionManager
	materialLocks *util.KeyedMutex
	qrcodeService service.QRCodeService
	publisher     service.EventPublisher
	logger        *slog.Logger
}

// BatchServiceParams holds dependencies for BatchService, injected by Fx.
type BatchServiceParams struct {
	fx.In

	RoleRepo      repository.RoleRepository
	BatchRepo     repository.BatchRepository
	TxManager     repository.TransactionManager
	MaterialLocks *util.KeyedMutex
	QRCodeService service.QRCodeService
	Publisher     service.EventPublisher
	Logger        *slog.Logger
}

// NewBatchService creates a new batch service instance
func NewBatchService(params BatchServiceParams) usecase.BatchUsecase {
	return &batchService{
		roleRepo:      params.RoleRepo,
		batchRepo:     params.BatchRepo,
		txManager:     params.TxManager,
		materialLocks: params.MaterialLocks,
		qrcodeService: params.QRCodeService,
		publisher:     params.Publisher,
		logger:        params.Logger,
	}
}

// CreateBatch records a new production batch and deducts every consumed
// material from stock in one transaction. Balances are validated before any
// deduction, so a failing line leaves all stocks untouched.
func (s *batchService) CreateBatch(ctx context.Context, actor entity.Identity, input *usecase.CreateBatchInput) (*entity.Batch, error) {
	if input.MedicineID == "" || input.BatchID == "" {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("medicine id and batch id must not be empty")
	}

	materialIDs, err := validateMaterialLines(input.Materials)
	if err != nil {
		return nil, err
	}

	role, err := s.roleRepo.GetRole(ctx, actor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get caller role")
	}
	if role != entity.RoleManufacturer {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("only a manufacturer may create batches")
	}

	unlock := s.materialLocks.LockAll(materialIDs)
	defer unlock()

	now := time.Now().UTC()
	batch := &entity.Batch{
		MedicineID:   input.MedicineID,
		BatchID:      input.BatchID,
		Manufacturer: actor,
		CreatedAt:    now,
	}
	for _, line := range input.Materials {
		batch.Materials = append(batch.Materials, entity.BatchMaterial{
			MaterialID: line.MaterialID,
			Quantity:   line.Quantity,
		})
	}

	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		materialRepo := f.NewMaterialRepository()

		// Validate every balance before touching any of them.
		materials := make([]*entity.RawMaterial, 0, len(input.Materials))
		for _, line := range input.Materials {
			material, err := materialRepo.FindByID(ctx, line.MaterialID)
			if err != nil {
				if errors.Is(err, repository.ErrMaterialNotFound) {
					return domainerrors.ErrMaterialNotFound.WrapMessage("unknown material: " + line.MaterialID)
				}

				return errors.Wrap(err, "failed to load material")
			}
			if material.Quantity < line.Quantity {
				return domainerrors.ErrInsufficientQuantity.WrapMessage("insufficient stock of material: " + line.MaterialID)
			}
			materials = append(materials, material)
		}

		for i, line := range input.Materials {
			materials[i].Quantity -= line.Quantity
			materials[i].UpdatedAt = now
			if err := materialRepo.Save(ctx, materials[i]); err != nil {
				return errors.Wrap(err, "failed to save material")
			}
		}

		if err := f.NewBatchRepository().Create(ctx, batch); err != nil {
			if errors.Is(err, repository.ErrBatchAlreadyExists) {
				return domainerrors.ErrBatchAlreadyExists.WrapMessage("batch already recorded: " + batch.Key())
			}

			return errors.Wrap(err, "failed to create batch")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	event := newDomainEvent(service.EventBatchCreated, actor)
	event.MedicineID = batch.MedicineID
	event.BatchID = batch.BatchID
	event.Materials = toMaterialChanges(input.Materials)
	publishEvent(ctx, s.publisher, s.logger, event)

	return batch, nil
}

// GetBatch returns one immutable batch record.
func (s *batchService) GetBatch(ctx context.Context, medicineID, batchID string) (*entity.Batch, error) {
	if medicineID == "" || batchID == "" {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("medicine id and batch id must not be empty")
	}

	batch, err := s.batchRepo.FindByKey(ctx, medicineID, batchID)
	if err != nil {
		if errors.Is(err, repository.ErrBatchNotFound) {
			return nil, domainerrors.ErrBatchNotFound.WrapMessage("unknown batch: " + entity.BatchKey(medicineID, batchID))
		}

		return nil, errors.Wrap(err, "failed to find batch")
	}

	return batch, nil
}

// GenerateBatchQR renders the traceability QR code of an existing batch.
func (s *batchService) GenerateBatchQR(ctx context.Context, medicineID, batchID string) ([]byte, error) {
	if _, err := s.GetBatch(ctx, medicineID, batchID); err != nil {
		return nil, err
	}

	png, err := s.qrcodeService.GenerateBatchQR(medicineID, batchID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate batch QR")
	}

	return png, nil
}
