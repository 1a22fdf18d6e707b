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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrOrderAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order by id.
func (repo *orderRepository) FindByID(ctx context.Context, orderID string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// Update replaces an existing order record.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"transporter": orderM.Transporter,
			"status":      orderM.Status,
			"updated_at":  orderM.UpdatedAt,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// AppendStatusChange records one applied lifecycle transition.
func (repo *orderRepository) AppendStatusChange(ctx context.Context, change *entity.OrderStatusChange) error {
	changeM := &model.OrderStatusChangeModel{
		OrderID:   change.OrderID,
		Status:    change.Status.String(),
		Actor:     change.Actor.String(),
		ChangedAt: change.ChangedAt,
	}

	if err := repo.db.WithContext(ctx).Create(changeM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append order status change")
	}

	return nil
}

// StatusHistory returns the applied transitions of an order, oldest first.
func (repo *orderRepository) StatusHistory(ctx context.Context, orderID string) ([]*entity.OrderStatusChange, error) {
	var changeModels []*model.OrderStatusChangeModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&changeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find order status history")
	}

	changes := make([]*entity.OrderStatusChange, 0, len(changeModels))
	for _, changeM := range changeModels {
		changes = append(changes, &entity.OrderStatusChange{
			OrderID:   changeM.OrderID,
			Status:    entity.OrderStatusFromString(changeM.Status),
			Actor:     entity.Identity(changeM.Actor),
			ChangedAt: changeM.ChangedAt,
		})
	}

	return changes, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:          data.ID,
		MedicineID:  data.MedicineID,
		Quantity:    data.Quantity,
		Creator:     entity.Identity(data.Creator),
		Seller:      entity.Identity(data.Seller),
		Transporter: entity.Identity(data.Transporter),
		Status:      entity.OrderStatusFromString(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:          data.ID,
		MedicineID:  data.MedicineID,
		Quantity:    data.Quantity,
		Creator:     data.Creator.String(),
		Seller:      data.Seller.String(),
		Transporter: data.Transporter.String(),
		Status:      data.Status.String(),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
