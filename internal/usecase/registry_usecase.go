// Package usecase defines the application-layer interfaces and their
// input/output types.
package usecase

import (
	"context"

	"pharmachain/internal/domain/entity"
)

// RegisterParticipantInput carries one role grant request.
type RegisterParticipantInput struct {
	Identity string `json:"identity" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// TransferOwnershipInput names the identity receiving ownership.
type TransferOwnershipInput struct {
	NewOwner string `json:"newOwner" validate:"required"`
}

// RegistryUsecase defines the participant registry use cases: role grants,
// role lookups and ownership transfer.
type RegistryUsecase interface {
	// Bootstrap seeds the genesis owner and supplier. It is idempotent and
	// runs once at startup.
	Bootstrap(ctx context.Context) error

	// RegisterParticipant grants or revokes a role. Only the current owner
	// may call it, and the admin and supplier roles cannot be granted.
	RegisterParticipant(ctx context.Context, actor entity.Identity, input *RegisterParticipantInput) error

	// GetRole returns the current role of an identity, entity.RoleNone for
	// unknown identities.
	GetRole(ctx context.Context, identity entity.Identity) (entity.Role, error)

	// TransferOwnership moves the admin role from the current owner to a new
	// identity. Only the current owner may call it.
	TransferOwnership(ctx context.Context, actor entity.Identity, input *TransferOwnershipInput) error
}
