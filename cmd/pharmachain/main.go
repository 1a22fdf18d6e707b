package main

import (
	"context"
	"log/slog"
	"os"

	"pharmachain/config"
	"pharmachain/internal/delivery"
	"pharmachain/internal/delivery/http"
	"pharmachain/internal/delivery/http/middleware"
	"pharmachain/internal/delivery/http/router/handler"
	"pharmachain/internal/domain/repository"
	"pharmachain/internal/infra/auth"
	logs "pharmachain/internal/infra/log"
	"pharmachain/internal/infra/persistence/memory"
	"pharmachain/internal/infra/persistence/postgres"
	"pharmachain/internal/infra/pubsub"
	"pharmachain/internal/infra/qrcode"
	"pharmachain/internal/usecase"
	"pharmachain/internal/usecase/impl"
	"pharmachain/internal/util"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedRegistry,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

type persistenceParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

type repoSet struct {
	fx.Out

	RoleRepo     repository.RoleRepository
	MaterialRepo repository.MaterialRepository
	BatchRepo    repository.BatchRepository
	OrderRepo    repository.OrderRepository
	TxManager    repository.TransactionManager
}

// newPersistence picks the storage backend: Postgres when configured, the
// in-memory store otherwise.
func newPersistence(params persistenceParams) (repoSet, error) {
	if params.Config.Postgres == nil {
		params.Logger.Info("Postgres not configured, using in-memory ledgers")
		store := memory.NewStore()

		return repoSet{
			RoleRepo:     memory.NewRoleRepository(store),
			MaterialRepo: memory.NewMaterialRepository(store),
			BatchRepo:    memory.NewBatchRepository(store),
			OrderRepo:    memory.NewOrderRepository(store),
			TxManager:    memory.NewTransactionManager(store),
		}, nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return repoSet{}, err
	}

	return repoSet{
		RoleRepo:     postgres.NewRoleRepository(db),
		MaterialRepo: postgres.NewMaterialRepository(db),
		BatchRepo:    postgres.NewBatchRepository(db),
		OrderRepo:    postgres.NewOrderRepository(db),
		TxManager:    postgres.NewTransactionManager(db),
	}, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newPersistence,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		pubsub.Module,
		fx.Provide(
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			util.NewKeyedMutex,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRegistryService,
			impl.NewInventoryService,
			impl.NewBatchService,
			impl.NewOrderService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewParticipantHandler,
			handler.NewInventoryHandler,
			handler.NewBatchHandler,
			handler.NewOrderHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedRegistry installs the genesis owner and supplier before the server
// starts taking calls.
func seedRegistry(ctx context.Context, registry usecase.RegistryUsecase) error {
	return registry.Bootstrap(ctx)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
