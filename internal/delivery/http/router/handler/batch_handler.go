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

// BatchHandler holds dependencies for batch-related handlers.
type BatchHandler struct {
	uc     usecase.BatchUsecase
	logger *slog.Logger
}

// NewBatchHandler is the constructor for BatchHandler, injected by Fx.
func NewBatchHandler(uc usecase.BatchUsecase, logger *slog.Logger) *BatchHandler {
	return &BatchHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateBatch handles a batch creation request.
func (h *BatchHandler) CreateBatch(c echo.Context) error {
	var input *usecase.CreateBatchInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid batch input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	actor := middleware.CallerIdentity(c)
	batch, err := h.uc.CreateBatch(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, batch, "Batch created successfully")
}

// GetBatch returns one batch record.
func (h *BatchHandler) GetBatch(c echo.Context) error {
	batch, err := h.uc.GetBatch(c.Request().Context(), c.Param("medicineId"), c.Param("batchId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, batch, "")
}

// GetBatchQR streams the traceability QR code of a batch as PNG.
func (h *BatchHandler) GetBatchQR(c echo.Context) error {
	png, err := h.uc.GenerateBatchQR(c.Request().Context(), c.Param("medicineId"), c.Param("batchId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
