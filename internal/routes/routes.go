package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/billo-wallet/billo/internal/config"
	"github.com/billo-wallet/billo/internal/identity"
	"github.com/billo-wallet/billo/internal/ledger"
	"github.com/billo-wallet/billo/internal/middleware"
	"github.com/billo-wallet/billo/internal/notification"
	"github.com/billo-wallet/billo/internal/session"
	"github.com/billo-wallet/billo/internal/store"
	"github.com/billo-wallet/billo/internal/transfer"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Store  store.Store
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	notifier := notification.NewLoggerNotifier(d.Logger)

	identityRepo := identity.NewRepository(d.Store)
	identitySvc := identity.NewService(identityRepo, d.Logger)

	ledgerRepo := ledger.NewRepository(d.Store)
	ledgerSvc := ledger.NewService(ledgerRepo, d.Logger)

	transferSvc := transfer.NewService(ledgerSvc, notifier)
	manager := session.NewManager(identitySvc, ledgerSvc, d.Store, notifier, d.Logger)

	sessionHandler := session.NewHandler(manager, d.Logger)
	ledgerHandler := ledger.NewHandler(ledgerSvc, d.Logger)
	transferHandler := transfer.NewHandler(transferSvc, d.Logger)

	api := app.Group("/api/v1")
	RegisterSessionRoutes(api, sessionHandler)
	RegisterLedgerRoutes(api, ledgerHandler)
	RegisterTransferRoutes(api, transferHandler)

	return nil
}
