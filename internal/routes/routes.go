package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/reward-forge/reward_forge/internal/access"
	"github.com/reward-forge/reward_forge/internal/config"
	"github.com/reward-forge/reward_forge/internal/events"
	"github.com/reward-forge/reward_forge/internal/guard"
	"github.com/reward-forge/reward_forge/internal/holdings"
	"github.com/reward-forge/reward_forge/internal/issuance"
	"github.com/reward-forge/reward_forge/internal/ledger"
	"github.com/reward-forge/reward_forge/internal/metadata"
	"github.com/reward-forge/reward_forge/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though config also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Principal())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Backends
	var ledgerBackend ledger.Ledger
	var accessRepo access.Repository
	var counterStore issuance.CounterStore
	var locatorStore metadata.LocatorStore
	if d.DB != nil {
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
		accessRepo = access.NewPostgresRepository(d.DB)
		counterStore = issuance.NewPostgresCounter(d.DB)
		locatorStore = metadata.NewPostgresStore(d.DB)
	} else {
		ledgerBackend = ledger.NewInMemory()
		accessRepo = access.NewMemoryRepository()
		counterStore = issuance.NewMemoryCounter()
		locatorStore = metadata.NewMemoryStore()
	}

	// One reentrancy region covers every mutating entry point.
	region := &guard.Region{}
	emitter := events.NewLoggerEmitter(d.Logger)

	accessSvc := access.NewService(d.Cfg.OwnerPrincipal, accessRepo, emitter, region)
	if err := accessSvc.Init(context.Background()); err != nil {
		return fmt.Errorf("seed access state: %w", err)
	}
	issuanceSvc := issuance.NewService(ledgerBackend, accessSvc, counterStore, emitter, region)
	metadataSvc := metadata.NewService(locatorStore, ledgerBackend, accessSvc, emitter, region)
	if err := metadataSvc.Init(context.Background(), d.Cfg.BaseLocator); err != nil {
		return fmt.Errorf("seed base locator: %w", err)
	}
	holdingsSvc := holdings.NewService(ledgerBackend, counterStore)

	accessHandler := access.NewHandler(accessSvc)
	issuanceHandler := issuance.NewHandler(issuanceSvc)
	metadataHandler := metadata.NewHandler(metadataSvc)
	holdingsHandler := holdings.NewHandler(holdingsSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Read-only queries stay open to anyone.
	RegisterQueryRoutes(api, metadataHandler, holdingsHandler)

	// Owner administration
	RegisterAdminRoutes(api, d.Cfg, accessHandler, metadataHandler)

	// Issuance
	rateLimiter := middleware.MintRateLimit(d.Cache, d.Cfg.MintRatePerMin)
	RegisterMintRoutes(api, issuanceHandler, rateLimiter)

	return nil
}
