// Package routes wires repositories, services and handlers onto the fiber app.
package routes

import (
	"context"
	"encoding/hex"
	"time"

	"invox/internal/config"
	"invox/internal/handlers"
	"invox/internal/ledger"
	"invox/internal/middleware"
	"invox/internal/models"
	"invox/internal/repositories"
	"invox/internal/services/scoring"
	"invox/internal/services/sentiment"
	"invox/internal/services/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	invoiceRepo := repositories.NewInvoiceRepository(db, repositories.CacheService)
	verificationRepo := repositories.NewVerificationRepository(db)

	// Market sentiment: HTTP feed behind a short-lived cache.
	feed := sentiment.NewHTTPProvider(
		config.GetEnv("MARKET_DATA_URL",
			"https://api.coingecko.com/api/v3/simple/price?ids=ethereum&vs_currencies=usd&include_24hr_change=true&include_market_cap=true"),
		config.GetEnv("MARKET_DATA_ASSET", sentiment.DefaultAsset),
		config.GetDurationEnv("MARKET_DATA_TIMEOUT", sentiment.DefaultTimeout),
	)
	provider := sentiment.NewCachedProvider(feed, repositories.CacheService,
		config.GetDurationEnv("MARKET_DATA_CACHE_TTL", sentiment.DefaultCacheTTL))

	engine := scoring.NewEngine(scoring.WithSentimentProvider(provider))

	// Ledger: in-process implementation that runs the verification function
	// locally and emits fulfillment events.
	chain := ledger.NewMemory(engine.Execute, func(ctx context.Context, invoiceID uint64) ([]string, error) {
		invoice, err := invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return nil, err
		}
		return invoice.ScoringArgs(), nil
	})

	orchestrator := verification.NewService(
		chain,
		&verificationAudit{repo: verificationRepo},
		&verification.NoopMetricsCollector{},
	)

	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo, engine)
	verificationHandler := handlers.NewVerificationHandler(orchestrator)
	adminHandler := handlers.NewAdminHandler(orchestrator)

	api := app.Group("/api")

	api.Get("/health", handlers.HealthCheck)
	api.Get("/cache/stats", handlers.CacheStats)

	api.Post("/invoices", invoiceHandler.CreateInvoice)
	api.Get("/invoices", invoiceHandler.ListInvoices)
	api.Get("/invoices/:id", invoiceHandler.GetInvoice)
	api.Get("/invoices/:id/score", invoiceHandler.ScoreInvoice)

	// Verification requests hit the oracle network; keep the rate modest.
	api.Post("/invoices/:id/verify", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}), verificationHandler.RequestVerification)
	api.Post("/invoices/:id/verify/manual", verificationHandler.ManualVerify)
	api.Get("/invoices/:id/verification", verificationHandler.GetStatus)

	admin := api.Group("/admin", middleware.AdminOnly())
	admin.Post("/source", adminHandler.UploadSource)
}

// verificationAudit adapts the verification repository to the orchestrator's
// audit interface.
type verificationAudit struct {
	repo repositories.VerificationRepository
}

func (a *verificationAudit) Save(ctx context.Context, req *verification.Request) error {
	record := &models.VerificationRecord{
		CorrelationID: req.CorrelationID,
		InvoiceID:     req.InvoiceID,
		RequestID:     hex.EncodeToString(req.RequestID),
		Status:        string(req.Status),
		RiskScore:     req.RiskScore,
		Reason:        req.Reason,
		SubmittedAt:   req.SubmittedAt,
	}
	return a.repo.Save(ctx, record)
}
