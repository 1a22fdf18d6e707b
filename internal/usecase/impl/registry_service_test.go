package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain/internal/domain/entity"
	domainerrors "pharmachain/internal/domain/errors"
	"pharmachain/internal/domain/service"
	"pharmachain/internal/usecase"
)

func TestRegistryService_Bootstrap_SeedsOwnerAndSupplier(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerRole, err := env.registry.GetRole(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, ownerRole)

	supplierRole, err := env.registry.GetRole(ctx, testSupplier)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupplier, supplierRole)
}

func TestRegistryService_RegisterParticipant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.registry.RegisterParticipant(ctx, testOwner, &usecase.RegisterParticipantInput{
		Identity: "acme-pharma",
		Role:     "manufacturer",
	})
	require.NoError(t, err)

	role, err := env.registry.GetRole(ctx, "acme-pharma")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManufacturer, role)

	events := env.publisher.EventsOfType(service.EventParticipantRegistered)
	require.Len(t, events, 1)
	assert.Equal(t, "acme-pharma", events[0].Identity)
	assert.Equal(t, "manufacturer", events[0].Role)
}

func TestRegistryService_RegisterParticipant_NonOwnerUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.registry.RegisterParticipant(ctx, "stranger", &usecase.RegisterParticipantInput{
		Identity: "acme-pharma",
		Role:     "manufacturer",
	})
	assertAppError(t, err, domainerrors.ErrUnauthorized)

	role, err := env.registry.GetRole(ctx, "acme-pharma")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleNone, role, "failed grant must not change state")
	assert.Empty(t, env.publisher.Events())
}

func TestRegistryService_RegisterParticipant_ReservedRolesRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, role := range []string{"admin", "supplier", "chairman"} {
		err := env.registry.RegisterParticipant(ctx, testOwner, &usecase.RegisterParticipantInput{
			Identity: "someone",
			Role:     role,
		})
		assertAppError(t, err, domainerrors.ErrInvalidArgument)
	}
}

func TestRegistryService_RegisterParticipant_RevocationViaNone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "mover", "transporter")

	err := env.registry.RegisterParticipant(ctx, testOwner, &usecase.RegisterParticipantInput{
		Identity: "mover",
		Role:     "none",
	})
	require.NoError(t, err)

	role, err := env.registry.GetRole(ctx, "mover")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleNone, role)
}

func TestRegistryService_TransferOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.registry.TransferOwnership(ctx, testOwner, &usecase.TransferOwnershipInput{
		NewOwner: "org2-admin",
	})
	require.NoError(t, err)

	oldRole, err := env.registry.GetRole(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleNone, oldRole)

	newRole, err := env.registry.GetRole(ctx, "org2-admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, newRole)

	// The old owner lost the grant permission along with the role.
	err = env.registry.RegisterParticipant(ctx, testOwner, &usecase.RegisterParticipantInput{
		Identity: "acme-pharma",
		Role:     "manufacturer",
	})
	assertAppError(t, err, domainerrors.ErrUnauthorized)

	// The new owner gained it.
	err = env.registry.RegisterParticipant(ctx, "org2-admin", &usecase.RegisterParticipantInput{
		Identity: "acme-pharma",
		Role:     "manufacturer",
	})
	require.NoError(t, err)

	events := env.publisher.EventsOfType(service.EventOwnershipTransferred)
	require.Len(t, events, 1)
	assert.Equal(t, "org2-admin", events[0].Identity)
}

func TestRegistryService_TransferOwnership_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.registry.TransferOwnership(ctx, "stranger", &usecase.TransferOwnershipInput{NewOwner: "org2-admin"})
	assertAppError(t, err, domainerrors.ErrUnauthorized)

	err = env.registry.TransferOwnership(ctx, testOwner, &usecase.TransferOwnershipInput{NewOwner: testOwner})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)

	err = env.registry.TransferOwnership(ctx, testOwner, &usecase.TransferOwnershipInput{NewOwner: testSupplier})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)
}

// assertAppError checks that err carries the error code of the expected
// predefined AppError.
func assertAppError(t *testing.T, err error, expected *domainerrors.BaseError) {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expected.ErrorCode(), appErr.ErrorCode())
}
