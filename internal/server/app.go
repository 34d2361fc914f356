// Package server wires the content ledger service together: storage,
// ledger state restore, event bus, content store and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/logging"
	"github.com/kunalsinghdadhwal/solcast/internal/server/config"
	"github.com/kunalsinghdadhwal/solcast/internal/server/eventbus"
	"github.com/kunalsinghdadhwal/solcast/internal/server/ledger"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/repomanager"
	"github.com/kunalsinghdadhwal/solcast/internal/server/services"

	gs "github.com/kunalsinghdadhwal/solcast/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	bus           *eventbus.Bus
	authService   *services.AuthService
	ledgerService *services.LedgerService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repository manager: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	owner := common.HexToAddress(c.OwnerAddress)
	state, err := services.LoadState(ctx, db, rm, owner)
	if err != nil {
		return nil, fmt.Errorf("restoring ledger: %w", err)
	}

	journal := services.NewPostgresJournal(db, rm)
	transferer := services.NewPostgresTransferer(db, rm)
	l, err := ledger.New(owner, state, ledger.Options{
		FeePercent:     c.PlatformFeePercent,
		PaymentUnit:    c.PaymentUnit,
		Journal:        journal,
		Transferer:     transferer,
		History:        journal,
		ResidentEvents: services.ResidentEvents,
		OnJournalError: func(err error) {
			logger.Error(context.Background(), "transfer outcome not journaled", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ledger init: %w", err)
	}

	if err := l.Recover(ctx); err != nil {
		return nil, fmt.Errorf("recovering transfers: %w", err)
	}

	logger.Info(ctx, "Ledger restored",
		"owner", l.Owner().Hex(),
		"next_post_id", l.NextPostID(),
		"platform_fee_percent", c.PlatformFeePercent,
	)

	bus := eventbus.New()
	content := services.NewContentStore(c)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		bus:           bus,
		authService:   services.NewAuthService(db, rm, c),
		ledgerService: services.NewLedgerService(l, bus, content, transferer, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewLedgerServer(app.config.EndpointAddrGRPC, app.logger, app.authService, app.ledgerService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startAudit(ctx context.Context) {
	if err := eventbus.Audit(ctx, app.bus, app.logger); err != nil {
		app.logger.Error(ctx, "audit subscriber", "error", err)
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var audit, server sync.WaitGroup

	audit.Add(1)
	go func() {
		defer audit.Done()
		app.startAudit(ctx)
	}()

	server.Add(1)
	go func() {
		defer server.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	<-ctx.Done()
	server.Wait()

	// in-flight requests have drained; nothing publishes after this
	if err := app.bus.Close(); err != nil {
		app.logger.Error(ctx, "closing event bus", "error", err)
	}
	audit.Wait()

	if err := app.ledgerService.Sync(context.Background()); err != nil {
		app.logger.Error(ctx, "unjournaled changes left at shutdown", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}

	app.logger.Info(ctx, "Stopped")
}
