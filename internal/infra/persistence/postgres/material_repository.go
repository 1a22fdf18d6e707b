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

// materialRepository implements the repository.MaterialRepository interface.
type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository is the constructor for materialRepository.
func NewMaterialRepository(db *gorm.DB) repository.MaterialRepository {
	return &materialRepository{
		db: db,
	}
}

// FindByID retrieves a material stock record by id.
func (repo *materialRepository) FindByID(ctx context.Context, materialID string) (*entity.RawMaterial, error) {
	var materialM model.MaterialModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", materialID).
		First(&materialM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMaterialNotFound
		}

		return nil, errors.Wrap(err, "failed to find material by ID")
	}

	return toMaterialDomain(&materialM), nil
}

// Save upserts a material stock record. The non-negative check constraint
// backs up the use case layer's balance validation.
func (repo *materialRepository) Save(ctx context.Context, material *entity.RawMaterial) error {
	materialM := fromMaterialDomain(material)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(materialM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInsufficientQuantity.WrapMessage("material balance would go negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save material")
	}

	material.CreatedAt = materialM.CreatedAt
	material.UpdatedAt = materialM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toMaterialDomain(data *model.MaterialModel) *entity.RawMaterial {
	if data == nil {
		return nil
	}

	return &entity.RawMaterial{
		ID:        data.ID,
		Quantity:  data.Quantity,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromMaterialDomain(data *entity.RawMaterial) *model.MaterialModel {
	if data == nil {
		return nil
	}

	return &model.MaterialModel{
		ID:        data.ID,
		Quantity:  data.Quantity,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
