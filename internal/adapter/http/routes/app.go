package routes

import (
	"context"
	"errors"
	"fmt"

	"marketplace_escrow/internal/adapter/persistence/repository"
	"marketplace_escrow/internal/config"
	"marketplace_escrow/internal/infrastructure/database"
	"marketplace_escrow/internal/infrastructure/events"
	"marketplace_escrow/internal/infrastructure/payments"
	"marketplace_escrow/internal/infrastructure/worker"
	"marketplace_escrow/internal/usecase"
	"marketplace_escrow/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// App holds the wired use cases shared by the HTTP server and the CLI commands.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Store      interfaces.IStore
	Drafts     usecase.IDraftUseCase
	Escrows    usecase.IEscrowUseCase
	Finalize   usecase.IFinalizeUseCase
	Settlement usecase.ISettlementUseCase
	Hours      usecase.IHoursUseCase
	Storno     usecase.IStornoUseCase
	Sweeper    *worker.ClearingSweeper

	closers []func() error
}

// Build connects the configured store, payment gateway and event sinks and wires
// the use cases on top of them.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	store, closeStore, err := BuildStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app.Store = store
	app.closers = append(app.closers, closeStore)

	publisher, err := buildPublisher(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments, logger)
	if err != nil {
		logger.Warn("[app] Mercado Pago gateway not configured", zap.Error(err))
	} else {
		gateway = mpGateway
	}

	opts := []usecase.Option{
		usecase.WithLogger(logger),
		usecase.WithSettings(cfg.Settlement.Settings()),
	}
	app.Drafts = usecase.NewDraftUseCase(store, opts...)
	app.Escrows = usecase.NewEscrowUseCase(store, opts...)
	app.Finalize = usecase.NewFinalizeUseCase(store, publisher, opts...)
	app.Settlement = usecase.NewSettlementUseCase(store, publisher, opts...)
	app.Hours = usecase.NewHoursUseCase(store, gateway, publisher, opts...)
	app.Storno = usecase.NewStornoUseCase(store, gateway, publisher, opts...)

	if cfg.Settlement.SweepInterval > 0 {
		app.Sweeper = worker.NewClearingSweeper(app.Settlement, cfg.Settlement.SweepInterval, cfg.Settlement.SweepBatchSize, logger)
	}
	return app, nil
}

// Close releases the store connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BuildStore opens the store selected by cfg.Store.Driver. The returned func
// closes the underlying connection.
func BuildStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (interfaces.IStore, func() error, error) {
	switch cfg.Store.Driver {
	case config.StoreDynamoDB:
		client, err := database.ConnectDynamoDB(ctx, cfg.AWS, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewDynamoStore(client, repository.DynamoTablesFromEnv(), logger), func() error { return nil }, nil
	case config.StorePostgres, config.StoreSQLite:
		db, err := database.ConnectGorm(cfg.Store, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewGormStore(db, logger)
		if cfg.Store.AutoMigrate {
			if err := store.AutoMigrate(); err != nil {
				_ = sqlDB.Close()
				return nil, nil, fmt.Errorf("auto migrate: %w", err)
			}
		}
		return store, sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// Migrate creates the tables of the configured store.
func Migrate(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	switch cfg.Store.Driver {
	case config.StoreDynamoDB:
		client, err := database.ConnectDynamoDB(ctx, cfg.AWS, logger)
		if err != nil {
			return err
		}
		return repository.EnsureDynamoTables(ctx, client, repository.DynamoTablesFromEnv(), logger)
	case config.StorePostgres, config.StoreSQLite:
		db, err := database.ConnectGorm(cfg.Store, logger)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		return repository.NewGormStore(db, logger).AutoMigrate()
	default:
		return fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func buildPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (interfaces.IEventPublisher, error) {
	var fanout events.FanoutPublisher
	for _, sink := range cfg.Events.Sinks {
		switch sink {
		case config.EventSinkLog:
			fanout = append(fanout, events.NewLogPublisher(logger))
		case config.EventSinkS3:
			client, err := database.ConnectS3(ctx, cfg.AWS, logger)
			if err != nil {
				return nil, err
			}
			fanout = append(fanout, events.NewS3Publisher(client, cfg.Events.S3Bucket, cfg.Events.S3Prefix, logger))
		default:
			return nil, fmt.Errorf("unsupported event sink %q", sink)
		}
	}
	if len(fanout) == 1 {
		return fanout[0], nil
	}
	return fanout, nil
}
