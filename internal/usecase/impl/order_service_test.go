package impl

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmachain/internal/domain/entity"
	domainerrors "pharmachain/internal/domain/errors"
	"pharmachain/internal/domain/service"
	"pharmachain/internal/usecase"
)

// newOrderEnv seeds the cast used by the order tests.
func newOrderEnv(t *testing.T) *testEnv {
	t.Helper()

	env := newTestEnv(t)
	env.register(t, "acme-pharma", "manufacturer")
	env.register(t, "big-warehouse", "wholesaler")
	env.register(t, "fast-trucks", "transporter")

	return env
}

func createTestOrder(t *testing.T, env *testEnv) *entity.Order {
	t.Helper()

	order, err := env.orders.CreateOrder(context.Background(), "big-warehouse", &usecase.CreateOrderInput{
		OrderID:    "ord-1",
		MedicineID: "panadol",
		Quantity:   500,
		Seller:     "acme-pharma",
	})
	require.NoError(t, err)

	return order
}

func TestOrderService_CreateOrder(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	order := createTestOrder(t, env)
	assert.Equal(t, entity.OrderStatusCreated, order.Status)
	assert.Equal(t, entity.Identity("big-warehouse"), order.Creator)
	assert.True(t, order.Transporter.IsZero())

	details, err := env.orders.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	require.Len(t, details.History, 1)
	assert.Equal(t, entity.OrderStatusCreated, details.History[0].Status)

	events := env.publisher.EventsOfType(service.EventOrderCreated)
	require.Len(t, events, 1)
	assert.Equal(t, "ord-1", events[0].OrderID)
}

func TestOrderService_CreateOrder_Rejections(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	// Unregistered caller.
	_, err := env.orders.CreateOrder(ctx, "stranger", &usecase.CreateOrderInput{
		OrderID: "ord-1", MedicineID: "panadol", Quantity: 10, Seller: "acme-pharma",
	})
	assertAppError(t, err, domainerrors.ErrUnauthorized)

	// Seller without the manufacturer role.
	env.register(t, "patient-zero", "customer")
	_, err = env.orders.CreateOrder(ctx, "big-warehouse", &usecase.CreateOrderInput{
		OrderID: "ord-1", MedicineID: "panadol", Quantity: 10, Seller: "patient-zero",
	})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)

	_, err = env.orders.GetOrder(ctx, "ord-1")
	assertAppError(t, err, domainerrors.ErrOrderNotFound)

	// Duplicate order id.
	createTestOrder(t, env)
	_, err = env.orders.CreateOrder(ctx, "big-warehouse", &usecase.CreateOrderInput{
		OrderID: "ord-1", MedicineID: "panadol", Quantity: 10, Seller: "acme-pharma",
	})
	assertAppError(t, err, domainerrors.ErrOrderAlreadyExists)
}

func TestOrderService_AssignTransporter(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	createTestOrder(t, env)

	err := env.orders.AssignTransporter(ctx, "acme-pharma", "ord-1", &usecase.AssignTransporterInput{
		Transporter: "fast-trucks",
	})
	require.NoError(t, err)

	details, err := env.orders.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, entity.Identity("fast-trucks"), details.Order.Transporter)
	assert.Equal(t, entity.OrderStatusCreated, details.Order.Status, "assignment does not advance the lifecycle")

	events := env.publisher.EventsOfType(service.EventTransporterAssigned)
	require.Len(t, events, 1)
	assert.Equal(t, "fast-trucks", events[0].Identity)
}

func TestOrderService_AssignTransporter_Rejections(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	createTestOrder(t, env)

	// Missing order.
	err := env.orders.AssignTransporter(ctx, "acme-pharma", "ord-404", &usecase.AssignTransporterInput{
		Transporter: "fast-trucks",
	})
	assertAppError(t, err, domainerrors.ErrOrderNotFound)

	// Assignee without the transporter role.
	err = env.orders.AssignTransporter(ctx, "acme-pharma", "ord-1", &usecase.AssignTransporterInput{
		Transporter: "big-warehouse",
	})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)

	// Caller who is neither the seller nor the admin.
	err = env.orders.AssignTransporter(ctx, "big-warehouse", "ord-1", &usecase.AssignTransporterInput{
		Transporter: "fast-trucks",
	})
	assertAppError(t, err, domainerrors.ErrUnauthorized)
}

func TestOrderService_UpdateOrderStatus_FullLifecycle(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	createTestOrder(t, env)

	require.NoError(t, env.orders.AssignTransporter(ctx, "acme-pharma", "ord-1", &usecase.AssignTransporterInput{
		Transporter: "fast-trucks",
	}))

	steps := []struct {
		actor  string
		status string
	}{
		{"acme-pharma", "verified"},
		{"fast-trucks", "shipped"},
		{"fast-trucks", "delivered"},
	}
	for _, step := range steps {
		order, err := env.orders.UpdateOrderStatus(ctx, entity.Identity(step.actor), "ord-1", &usecase.UpdateOrderStatusInput{
			Status: step.status,
		})
		require.NoError(t, err)
		assert.Equal(t, step.status, order.Status.String())
	}

	details, err := env.orders.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	require.Len(t, details.History, 4)
	for i := 1; i < len(details.History); i++ {
		assert.Greater(t, details.History[i].Status.Rank(), details.History[i-1].Status.Rank(),
			"recorded statuses must be strictly increasing")
	}

	assert.Len(t, env.publisher.EventsOfType(service.EventOrderStatusUpdated), 3)
}

func TestOrderService_UpdateOrderStatus_NoSkippingOrBacktracking(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	createTestOrder(t, env)

	require.NoError(t, env.orders.AssignTransporter(ctx, "acme-pharma", "ord-1", &usecase.AssignTransporterInput{
		Transporter: "fast-trucks",
	}))

	// Skipping verified.
	_, err := env.orders.UpdateOrderStatus(ctx, "fast-trucks", "ord-1", &usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)

	_, err = env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{Status: "verified"})
	require.NoError(t, err)

	// Backwards.
	_, err = env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{Status: "created"})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)

	// Re-applying the current status.
	_, err = env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{Status: "verified"})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)

	// Unknown status value.
	_, err = env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{Status: "lost"})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)
}

func TestOrderService_UpdateOrderStatus_RoleScoping(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	createTestOrder(t, env)

	// The buyer cannot verify its own order.
	_, err := env.orders.UpdateOrderStatus(ctx, "big-warehouse", "ord-1", &usecase.UpdateOrderStatusInput{Status: "verified"})
	assertAppError(t, err, domainerrors.ErrUnauthorized)

	// Shipping requires an assigned transporter.
	_, err = env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{Status: "verified"})
	require.NoError(t, err)
	_, err = env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)

	require.NoError(t, env.orders.AssignTransporter(ctx, "acme-pharma", "ord-1", &usecase.AssignTransporterInput{
		Transporter: "fast-trucks",
	}))

	// The seller cannot ship; that belongs to the transporter.
	_, err = env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertAppError(t, err, domainerrors.ErrUnauthorized)

	// The admin may step in at any stage.
	_, err = env.orders.UpdateOrderStatus(ctx, testOwner, "ord-1", &usecase.UpdateOrderStatusInput{Status: "shipped"})
	require.NoError(t, err)
}

func TestOrderService_AssignTransporter_AfterShippingRejected(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	createTestOrder(t, env)

	require.NoError(t, env.orders.AssignTransporter(ctx, "acme-pharma", "ord-1", &usecase.AssignTransporterInput{
		Transporter: "fast-trucks",
	}))
	_, err := env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{Status: "verified"})
	require.NoError(t, err)
	_, err = env.orders.UpdateOrderStatus(ctx, "fast-trucks", "ord-1", &usecase.UpdateOrderStatusInput{Status: "shipped"})
	require.NoError(t, err)

	env.register(t, "other-trucks", "transporter")
	err = env.orders.AssignTransporter(ctx, "acme-pharma", "ord-1", &usecase.AssignTransporterInput{
		Transporter: "other-trucks",
	})
	assertAppError(t, err, domainerrors.ErrInvalidArgument)
}

func TestOrderService_UpdateOrderStatus_ConcurrentVerifyAppliesOnce(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	createTestOrder(t, env)

	const attempts = 8

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = env.orders.UpdateOrderStatus(ctx, "acme-pharma", "ord-1", &usecase.UpdateOrderStatusInput{
				Status: "verified",
			})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assertAppError(t, err, domainerrors.ErrInvalidArgument)
		}
	}
	assert.Equal(t, 1, succeeded)

	details, err := env.orders.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusVerified, details.Order.Status)
	require.Len(t, details.History, 2)
	assert.Equal(t, entity.OrderStatusVerified, details.History[1].Status)

	assert.Len(t, env.publisher.EventsOfType(service.EventOrderStatusUpdated), 1)
}
