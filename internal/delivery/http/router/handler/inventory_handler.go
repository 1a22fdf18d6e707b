package handler

import (
	"log/slog"
	"net/http"

	"pharmachain/internal/delivery/http/middleware"
	"pharmachain/internal/delivery/http/response"
	"pharmachain/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InventoryHandler holds dependencies for raw-material handlers.
type InventoryHandler struct {
	uc     usecase.InventoryUsecase
	logger *slog.Logger
}

// NewInventoryHandler is the constructor for InventoryHandler, injected by Fx.
func NewInventoryHandler(uc usecase.InventoryUsecase, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: logger,
	}
}

// Restock handles a supplier restock request.
func (h *InventoryHandler) Restock(c echo.Context) error {
	var input *usecase.RestockInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid restock input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	actor := middleware.CallerIdentity(c)
	if err := h.uc.Restock(c.Request().Context(), actor, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{
		"materials": len(input.Materials),
	}, "Materials restocked successfully")
}

// GetMaterial returns one material stock record.
func (h *InventoryHandler) GetMaterial(c echo.Context) error {
	material, err := h.uc.GetMaterial(c.Request().Context(), c.Param("materialId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, material, "")
}
