package postgres

import (
	"context"

	"pharmachain/internal/domain/entity"
	domainerrors "pharmachain/internal/domain/errors"
	"pharmachain/internal/domain/repository"
	"pharmachain/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// batchRepository implements the repository.BatchRepository interface.
type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository is the constructor for batchRepository.
func NewBatchRepository(db *gorm.DB) repository.BatchRepository {
	return &batchRepository{
		db: db,
	}
}

// Create persists a new batch and its material lines. The composite primary
// key enforces one-shot creation per (medicine_id, batch_id).
func (repo *batchRepository) Create(ctx context.Context, batch *entity.Batch) error {
	batchM := fromBatchDomain(batch)

	if err := repo.db.WithContext(ctx).Create(batchM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrBatchAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create batch")
	}

	batch.CreatedAt = batchM.CreatedAt

	return nil
}

// FindByKey retrieves a batch with its material lines in recorded order.
func (repo *batchRepository) FindByKey(ctx context.Context, medicineID, batchID string) (*entity.Batch, error) {
	var batchM model.BatchModel

	if err := repo.db.WithContext(ctx).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("medicine_id = ? AND batch_id = ?", medicineID, batchID).
		First(&batchM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBatchNotFound
		}

		return nil, errors.Wrap(err, "failed to find batch by key")
	}

	return toBatchDomain(&batchM), nil
}

// --- Mapper Functions ---

func toBatchDomain(data *model.BatchModel) *entity.Batch {
	if data == nil {
		return nil
	}

	materials := make([]entity.BatchMaterial, 0, len(data.Materials))
	for _, lineM := range data.Materials {
		materials = append(materials, entity.BatchMaterial{
			MaterialID: lineM.MaterialID,
			Quantity:   lineM.Quantity,
		})
	}

	return &entity.Batch{
		MedicineID:   data.MedicineID,
		BatchID:      data.BatchID,
		Materials:    materials,
		Manufacturer: entity.Identity(data.Manufacturer),
		CreatedAt:    data.CreatedAt,
	}
}

func fromBatchDomain(data *entity.Batch) *model.BatchModel {
	if data == nil {
		return nil
	}

	lines := make([]model.BatchMaterialModel, 0, len(data.Materials))
	for i, line := range data.Materials {
		lines = append(lines, model.BatchMaterialModel{
			MedicineID: data.MedicineID,
			BatchID:    data.BatchID,
			Position:   i,
			MaterialID: line.MaterialID,
			Quantity:   line.Quantity,
		})
	}

	return &model.BatchModel{
		MedicineID:   data.MedicineID,
		BatchID:      data.BatchID,
		Manufacturer: data.Manufacturer.String(),
		CreatedAt:    data.CreatedAt,
		Materials:    lines,
	}
}
