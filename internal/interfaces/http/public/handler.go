package public

import (
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	publicapp "github.com/sngm3741/feedback-collector/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger   *log.Logger
	commands publicapp.FeedbackCommandService
	pages    *template.Template
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger   *log.Logger
	Commands publicapp.FeedbackCommandService
	Pages    *template.Template
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger,
		commands: cfg.Commands,
		pages:    cfg.Pages,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.homeHandler())
	r.Post("/submit-feedback", h.feedbackCreateHandler())
}

// homeHandler はフィードバック投稿フォームを描画する。
func (h *Handler) homeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.pages.ExecuteTemplate(w, "index.html", nil); err != nil {
			h.logger.Printf("フォームページの描画に失敗: %v", err)
		}
	}
}
