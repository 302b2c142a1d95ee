package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"notepilot/internal/auth"
	"notepilot/internal/http/middleware"
	"notepilot/internal/logging"
	"notepilot/internal/service"
)

// Services bundles what the routes depend on.
type Services struct {
	Upload   service.UploadService
	Analysis service.AnalysisService
	Notes    service.NoteService
	Verifier auth.Verifier
	Log      *logging.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Only the note and notebook routes require a verified bearer token.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	log := svc.Log
	if log == nil {
		log = logging.Nop()
	}

	app.Get("/", Root())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Post("/upload_and_analyze", UploadAndAnalyze(svc.Upload, log))
	api.Post("/analyze", Analyze(svc.Analysis))

	requireUser := middleware.RequireUser(svc.Verifier)

	api.Get("/notes", requireUser, ListNotes(svc.Notes))
	api.Post("/notes", requireUser, CreateNote(svc.Notes))
	api.Put("/notes/:id", requireUser, UpdateNote(svc.Notes))
	api.Delete("/notes/:id", requireUser, DeleteNote(svc.Notes))

	api.Get("/notebooks", requireUser, ListNotebooks(svc.Notes))
	api.Post("/notebooks", requireUser, CreateNotebook(svc.Notes))
	api.Put("/notebooks/:id", requireUser, RenameNotebook(svc.Notes))
	api.Delete("/notebooks/:id", requireUser, DeleteNotebook(svc.Notes))
}
