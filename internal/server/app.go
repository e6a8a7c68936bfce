// Package server initializes and runs the API server. It connects to the
// document store, wires repositories and services, handles OS signals, and
// starts the HTTP endpoint.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/proyection/proyection-api/internal/logging"
	"github.com/proyection/proyection-api/internal/server/auth"
	"github.com/proyection/proyection-api/internal/server/config"
	"github.com/proyection/proyection-api/internal/server/httpapi"
	"github.com/proyection/proyection-api/internal/server/repositories/bankaccounts"
	"github.com/proyection/proyection-api/internal/server/repositories/banks"
	"github.com/proyection/proyection-api/internal/server/repositories/countries"
	"github.com/proyection/proyection-api/internal/server/repositories/users"
	"github.com/proyection/proyection-api/internal/server/services"
)

const connectTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	client *mongo.Client
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := users.NewMongoRepository(db)
	countryRepo := countries.NewMongoRepository(db)
	bankRepo := banks.NewMongoRepository(db)
	accountRepo := bankaccounts.NewMongoRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes,
		countryRepo.EnsureIndexes,
		bankRepo.EnsureIndexes,
		accountRepo.EnsureIndexes,
	} {
		if err := ensure(connectCtx); err != nil {
			return nil, fmt.Errorf("index init error: %w", err)
		}
	}

	tokens := auth.NewTokenManager(cfg)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	authSvc := services.NewAuthService(userRepo, tokens, hasher, logger)
	accountSvc := services.NewBankAccountService(accountRepo)
	referenceSvc := services.NewReferenceService(countryRepo, bankRepo)

	srv := httpapi.NewServer(cfg, logger, authSvc, accountSvc, referenceSvc, userRepo, tokens)

	return &App{config: cfg, logger: logger, client: client, server: srv}, nil
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

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr, "db", app.config.MongoDatabase)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}

	disconnectCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := app.client.Disconnect(disconnectCtx); err != nil {
		app.logger.Error(ctx, "mongo disconnect error", "error", err)
	}

	app.logger.Info(ctx, "app stopped")
}
