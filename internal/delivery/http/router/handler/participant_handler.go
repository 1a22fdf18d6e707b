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

// ParticipantHandler holds dependencies for registry-related handlers.
type ParticipantHandler struct {
	uc     usecase.RegistryUsecase
	logger *slog.Logger
}

// NewParticipantHandler is the constructor for ParticipantHandler, injected by Fx.
func NewParticipantHandler(uc usecase.RegistryUsecase, logger *slog.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		uc:     uc,
		logger: logger,
	}
}

// RegisterParticipant handles a role grant or revocation request.
func (h *ParticipantHandler) RegisterParticipant(c echo.Context) error {
	var input *usecase.RegisterParticipantInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid participant input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	actor := middleware.CallerIdentity(c)
	if err := h.uc.RegisterParticipant(c.Request().Context(), actor, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{
		"identity": input.Identity,
		"role":     input.Role,
	}, "Participant registered successfully")
}

// GetRole returns the current role of an identity.
func (h *ParticipantHandler) GetRole(c echo.Context) error {
	identity := entity.Identity(c.Param("identity"))

	role, err := h.uc.GetRole(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"identity": identity.String(),
		"role":     role.String(),
	}, "")
}

// TransferOwnership handles an ownership transfer request.
func (h *ParticipantHandler) TransferOwnership(c echo.Context) error {
	var input *usecase.TransferOwnershipInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid ownership transfer input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	actor := middleware.CallerIdentity(c)
	if err := h.uc.TransferOwnership(c.Request().Context(), actor, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"newOwner": input.NewOwner,
	}, "Ownership transferred successfully")
}
