package handler

import (
	"log/slog"
	"net/http"

	"pharmachain/internal/delivery/http/middleware"
	"pharmachain/internal/delivery/http/response"
	"pharmachain/internal/domain/entity"
	"pharmachain/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// orderResponse flattens an order and its history for the API.
type orderResponse struct {
	Order   *entity.Order               `json:"order"`
	History []*entity.OrderStatusChange `json:"history,omitempty"`
}

// CreateOrder handles an order placement request.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var input *usecase.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	actor := middleware.CallerIdentity(c)
	order, err := h.uc.CreateOrder(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, orderResponse{Order: order}, "Order created successfully")
}

// AssignTransporter handles a transporter assignment request.
func (h *OrderHandler) AssignTransporter(c echo.Context) error {
	var input *usecase.AssignTransporterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transporter input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	actor := middleware.CallerIdentity(c)
	if err := h.uc.AssignTransporter(c.Request().Context(), actor, c.Param("orderId"), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"orderId":     c.Param("orderId"),
		"transporter": input.Transporter,
	}, "Transporter assigned successfully")
}

// UpdateOrderStatus handles a lifecycle transition request.
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	var input *usecase.UpdateOrderStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	actor := middleware.CallerIdentity(c)
	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), actor, c.Param("orderId"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orderResponse{Order: order}, "Order status updated successfully")
}

// GetOrder returns an order with its status history.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	details, err := h.uc.GetOrder(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orderResponse{
		Order:   details.Order,
		History: details.History,
	}, "")
}
