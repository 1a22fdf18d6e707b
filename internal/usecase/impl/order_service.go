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

type orderService struct {
	roleRepo   repository.RoleRepository
	orderRepo  repository.OrderRepository
	txManager  repository.TransactionManager
	orderLocks *util.KeyedMutex
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	RoleRepo   repository.RoleRepository
	OrderRepo  repository.OrderRepository
	TxManager  repository.TransactionManager
	OrderLocks *util.KeyedMutex
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		roleRepo:   params.RoleRepo,
		orderRepo:  params.OrderRepo,
		txManager:  params.TxManager,
		orderLocks: params.OrderLocks,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

// lockOrder serializes mutations of one order. The key is prefixed so order
// ids never collide with material ids on the shared lock set.
func (s *orderService) lockOrder(orderID string) func() {
	return s.orderLocks.Lock("order:" + orderID)
}

// CreateOrder places a new order against a seller.
func (s *orderService) CreateOrder(ctx context.Context, actor entity.Identity, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if input.OrderID == "" || input.MedicineID == "" {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("order id and medicine id must not be empty")
	}
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("order quantity must be positive")
	}

	seller := entity.Identity(input.Seller)
	if seller.IsZero() {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("seller identity must not be empty")
	}
	if seller == actor {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("cannot order from yourself")
	}

	actorRole, err := s.roleRepo.GetRole(ctx, actor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get caller role")
	}
	if actorRole == entity.RoleNone {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("caller is not a registered participant")
	}

	sellerRole, err := s.roleRepo.GetRole(ctx, seller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get seller role")
	}
	if sellerRole != entity.RoleManufacturer {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("seller must be a manufacturer")
	}

	now := time.Now().UTC()
	order := &entity.Order{
		ID:         input.OrderID,
		MedicineID: input.MedicineID,
		Quantity:   input.Quantity,
		Creator:    actor,
		Seller:     seller,
		Status:     entity.OrderStatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		orderRepo := f.NewOrderRepository()

		if err := orderRepo.Create(ctx, order); err != nil {
			if errors.Is(err, repository.ErrOrderAlreadyExists) {
				return domainerrors.ErrOrderAlreadyExists.WrapMessage("order id already taken: " + order.ID)
			}

			return errors.Wrap(err, "failed to create order")
		}

		return errors.Wrap(orderRepo.AppendStatusChange(ctx, &entity.OrderStatusChange{
			OrderID:   order.ID,
			Status:    entity.OrderStatusCreated,
			Actor:     actor,
			ChangedAt: now,
		}), "failed to record order creation")
	})
	if err != nil {
		return nil, err
	}

	event := newDomainEvent(service.EventOrderCreated, actor)
	event.OrderID = order.ID
	event.MedicineID = order.MedicineID
	event.Quantity = order.Quantity
	event.Status = order.Status.String()
	publishEvent(ctx, s.publisher, s.logger, event)

	return order, nil
}

// AssignTransporter sets the transporter of an order before it ships.
func (s *orderService) AssignTransporter(ctx context.Context, actor entity.Identity, orderID string, input *usecase.AssignTransporterInput) error {
	transporter := entity.Identity(input.Transporter)
	if transporter.IsZero() {
		return domainerrors.ErrInvalidArgument.WrapMessage("transporter identity must not be empty")
	}

	unlock := s.lockOrder(orderID)
	defer unlock()

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return err
	}

	allowed, err := s.isSellerOrAdmin(ctx, actor, order)
	if err != nil {
		return err
	}
	if !allowed {
		return domainerrors.ErrUnauthorized.WrapMessage("only the seller or the admin may assign a transporter")
	}

	if order.Status.Rank() >= entity.OrderStatusShipped.Rank() {
		return domainerrors.ErrInvalidArgument.WrapMessage("order already shipped")
	}

	transporterRole, err := s.roleRepo.GetRole(ctx, transporter)
	if err != nil {
		return errors.Wrap(err, "failed to get transporter role")
	}
	if transporterRole != entity.RoleTransporter {
		return domainerrors.ErrInvalidArgument.WrapMessage("assignee is not a transporter")
	}

	order.Transporter = transporter
	order.UpdatedAt = time.Now().UTC()

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	event := newDomainEvent(service.EventTransporterAssigned, actor)
	event.OrderID = order.ID
	event.Identity = transporter.String()
	publishEvent(ctx, s.publisher, s.logger, event)

	return nil
}

// UpdateOrderStatus applies one forward lifecycle step. The lifecycle is
// strictly monotonic: created, verified, shipped, delivered, one step at a
// time and never backwards.
func (s *orderService) UpdateOrderStatus(ctx context.Context, actor entity.Identity, orderID string, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	target := entity.OrderStatusFromString(input.Status)
	if !target.IsValid() {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("unknown order status: " + input.Status)
	}

	unlock := s.lockOrder(orderID)
	defer unlock()

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if target.Rank() != order.Status.Rank()+1 {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage(
			"illegal transition from " + order.Status.String() + " to " + target.String())
	}

	if err := s.authorizeTransition(ctx, actor, order, target); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order.Status = target
	order.UpdatedAt = now

	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		orderRepo := f.NewOrderRepository()

		if err := orderRepo.Update(ctx, order); err != nil {
			return errors.Wrap(err, "failed to update order")
		}

		return errors.Wrap(orderRepo.AppendStatusChange(ctx, &entity.OrderStatusChange{
			OrderID:   order.ID,
			Status:    target,
			Actor:     actor,
			ChangedAt: now,
		}), "failed to record status change")
	})
	if err != nil {
		return nil, err
	}

	event := newDomainEvent(service.EventOrderStatusUpdated, actor)
	event.OrderID = order.ID
	event.Status = target.String()
	publishEvent(ctx, s.publisher, s.logger, event)

	return order, nil
}

// GetOrder returns an order with its status history.
func (s *orderService) GetOrder(ctx context.Context, orderID string) (*usecase.OrderDetails, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	history, err := s.orderRepo.StatusHistory(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order history")
	}

	return &usecase.OrderDetails{
		Order:   order,
		History: history,
	}, nil
}

// authorizeTransition checks who may apply a transition: verification belongs
// to the seller, movement to the assigned transporter, and the admin may step
// in for either.
func (s *orderService) authorizeTransition(ctx context.Context, actor entity.Identity, order *entity.Order, target entity.OrderStatus) error {
	switch target {
	case entity.OrderStatusVerified:
		allowed, err := s.isSellerOrAdmin(ctx, actor, order)
		if err != nil {
			return err
		}
		if !allowed {
			return domainerrors.ErrUnauthorized.WrapMessage("only the seller or the admin may verify an order")
		}
	case entity.OrderStatusShipped, entity.OrderStatusDelivered:
		if order.Transporter.IsZero() {
			return domainerrors.ErrInvalidArgument.WrapMessage("no transporter assigned")
		}
		if actor == order.Transporter {
			return nil
		}
		isAdmin, err := s.isAdmin(ctx, actor)
		if err != nil {
			return err
		}
		if !isAdmin {
			return domainerrors.ErrUnauthorized.WrapMessage("only the assigned transporter or the admin may move an order")
		}
	case entity.OrderStatusCreated:
		return domainerrors.ErrInvalidArgument.WrapMessage("orders cannot return to the created status")
	}

	return nil
}

func (s *orderService) findOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	if orderID == "" {
		return nil, domainerrors.ErrInvalidArgument.WrapMessage("order id must not be empty")
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("unknown order: " + orderID)
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

func (s *orderService) isSellerOrAdmin(ctx context.Context, actor entity.Identity, order *entity.Order) (bool, error) {
	if actor == order.Seller {
		return true, nil
	}

	return s.isAdmin(ctx, actor)
}

func (s *orderService) isAdmin(ctx context.Context, actor entity.Identity) (bool, error) {
	role, err := s.roleRepo.GetRole(ctx, actor)
	if err != nil {
		return false, errors.Wrap(err, "failed to get caller role")
	}

	return role == entity.RoleAdmin, nil
}
