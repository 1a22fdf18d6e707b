package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"pharmachain/config"
	"pharmachain/internal/domain/service"
	"pharmachain/internal/infra/persistence/memory"
	"pharmachain/internal/usecase"
	"pharmachain/internal/util"
)

const (
	testOwner    = "org1-admin"
	testSupplier = "org1-supplier"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Chain: &config.ChainConfig{
			OwnerIdentity:    testOwner,
			SupplierIdentity: testSupplier,
		},
	}
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.DomainEvent
}

func (p *recordingPublisher) PublishDomainEvent(_ context.Context, event *service.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) Events() []*service.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.DomainEvent(nil), p.events...)
}

func (p *recordingPublisher) EventsOfType(eventType service.EventType) []*service.DomainEvent {
	var matched []*service.DomainEvent
	for _, event := range p.Events() {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}

	return matched
}

// testEnv wires every service against a fresh in-memory store, seeded with
// the genesis owner and supplier.
type testEnv struct {
	store     *memory.Store
	publisher *recordingPublisher

	registry  usecase.RegistryUsecase
	inventory usecase.InventoryUsecase
	batches   usecase.BatchUsecase
	orders    usecase.OrderUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	roleRepo := memory.NewRoleRepository(store)
	materialRepo := memory.NewMaterialRepository(store)
	batchRepo := memory.NewBatchRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	txManager := memory.NewTransactionManager(store)
	locks := util.NewKeyedMutex()
	publisher := &recordingPublisher{}
	logger := newDiscardLogger()
	cfg := newTestConfig()

	env := &testEnv{
		store:     store,
		publisher: publisher,
		registry: NewRegistryService(RegistryServiceParams{
			RoleRepo:  roleRepo,
			TxManager: txManager,
			Publisher: publisher,
			Config:    cfg,
			Logger:    logger,
		}),
		inventory: NewInventoryService(InventoryServiceParams{
			RoleRepo:      roleRepo,
			MaterialRepo:  materialRepo,
			TxManager:     txManager,
			MaterialLocks: locks,
			Publisher:     publisher,
			Logger:        logger,
		}),
		batches: NewBatchService(BatchServiceParams{
			RoleRepo:      roleRepo,
			BatchRepo:     batchRepo,
			TxManager:     txManager,
			MaterialLocks: locks,
			QRCodeService: NewQRCodeServiceStub(),
			Publisher:     publisher,
			Logger:        logger,
		}),
		orders: NewOrderService(OrderServiceParams{
			RoleRepo:   roleRepo,
			OrderRepo:  orderRepo,
			TxManager:  txManager,
			OrderLocks: locks,
			Publisher:  publisher,
			Logger:     logger,
		}),
	}

	require.NoError(t, env.registry.Bootstrap(context.Background()))

	return env
}

// register grants a role through the owner, bypassing nothing: it exercises
// the same path production callers use.
func (env *testEnv) register(t *testing.T, identity, role string) {
	t.Helper()

	err := env.registry.RegisterParticipant(context.Background(), testOwner, &usecase.RegisterParticipantInput{
		Identity: identity,
		Role:     role,
	})
	require.NoError(t, err)
}

func (env *testEnv) restock(t *testing.T, lines ...usecase.MaterialLine) {
	t.Helper()

	require.NoError(t, env.inventory.Restock(context.Background(), testSupplier, &usecase.RestockInput{
		Materials: lines,
	}))
}

// qrCodeServiceStub returns a fixed payload so batch tests need no renderer.
type qrCodeServiceStub struct{}

// NewQRCodeServiceStub creates a QR service stub for tests.
func NewQRCodeServiceStub() service.QRCodeService {
	return &qrCodeServiceStub{}
}

func (s *qrCodeServiceStub) GenerateBatchQR(medicineID, batchID string) ([]byte, error) {
	return []byte("qr:" + medicineID + "/" + batchID), nil
}
