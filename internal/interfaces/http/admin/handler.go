package admin

import (
	"html/template"
	"log"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/sngm3741/feedback-collector/api/internal/admin/application"
	"github.com/sngm3741/feedback-collector/api/internal/session"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger   *log.Logger
	auth     adminapp.AuthService
	reports  adminapp.ReportService
	sessions session.Store
	pages    *template.Template
}

// Config provides dependencies for Handler.
type Config struct {
	Logger   *log.Logger
	Auth     adminapp.AuthService
	Reports  adminapp.ReportService
	Sessions session.Store
	Pages    *template.Template
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		auth:     cfg.Auth,
		reports:  cfg.Reports,
		sessions: cfg.Sessions,
		pages:    cfg.Pages,
	}
}

// Register mounts admin routes onto router. The paths are flat because the
// dashboard and login form live at the site root alongside the public form.
func (h *Handler) Register(r chi.Router) {
	r.Get("/login", h.loginRedirectHandler())
	r.Post("/login", h.loginHandler())
	r.Get("/logout", h.logoutHandler())
	r.Get("/admin-dashboard", h.dashboardHandler())
	r.Get("/api/feedback", h.feedbackListHandler())
	r.Get("/export-csv", h.exportCSVHandler())
}
