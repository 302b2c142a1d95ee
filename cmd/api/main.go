package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"notepilot/docs"
	"notepilot/internal/auth"
	"notepilot/internal/config"
	"notepilot/internal/database"
	"notepilot/internal/database/migration"
	"notepilot/internal/extractor"
	handlers "notepilot/internal/http/handler"
	"notepilot/internal/http/middleware"
	"notepilot/internal/llm"
	"notepilot/internal/logging"
	"notepilot/internal/otel"
	"notepilot/internal/repository/postgres"
	"notepilot/internal/service"
	"notepilot/internal/storage"
)

// @title NotePilot API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logging.Stdout(cfg.Location())

	if err := run(cfg, log); err != nil {
		log.Error("server_exited", err, nil)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// Supabase Postgres holds notes and notebooks
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, database.HostOf(cfg.Database)); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	tracedClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	verifier, err := auth.NewSupabaseVerifier(cfg.Supabase, tracedClient)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	var generator llm.Generator
	gemini, err := llm.NewGemini(ctx, cfg.Gemini, tracedClient)
	if err != nil {
		// Missing key is tolerated; generation fails per request instead.
		log.Warn("gemini_not_configured", map[string]any{"error": err.Error()})
		generator = llm.Unconfigured()
	} else {
		log.Info("gemini_configured", map[string]any{"model": gemini.Model()})
		generator = gemini
	}

	var archive storage.Storage
	if cfg.Archive.Enabled() {
		archive, err = storage.NewMinIO(ctx, cfg.Archive, tracedClient.Transport)
		if err != nil {
			return fmt.Errorf("init upload archive: %w", err)
		}
		log.Info("upload_archive_enabled", map[string]any{"endpoint": cfg.Archive.Endpoint, "bucket": cfg.Archive.Bucket})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register service metrics: %w", err)
	}

	ext := extractor.New(extractor.NewTesseract(cfg.OCR), extractor.OpenMuPDF, cfg.OCR.DPI)
	analysisSvc := service.NewAnalysisService(generator, cfg.Gemini.SourceLabel, metrics)
	uploadSvc := service.NewUploadService(ext, analysisSvc, archive, log, metrics)
	noteSvc := service.NewNoteService(postgres.NewNotePostgres(db), postgres.NewNotebookPostgres(db))

	app := newApp(cfg, log, db, reg, promMiddleware, handlers.Services{
		Upload:   uploadSvc,
		Analysis: analysisSvc,
		Notes:    noteSvc,
		Verifier: verifier,
		Log:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting", map[string]any{"port": cfg.Port})
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("server_stopping", nil)
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

func newApp(cfg *config.AppConfig, log *logging.Logger, db *sql.DB, reg *prometheus.Registry, prom *middleware.PrometheusMiddleware, svc handlers.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.UploadLimitMB * 1024 * 1024,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(prom.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.AllowedOrigins(), ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, db, svc)
	return app
}
