package api

import (
	"encoding/json"
	"html/template"
	"image/color"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openclaw/qrdesigner/designer"
)

// Server holds the dependencies for all HTTP handlers.
type Server struct {
	Generator     *designer.Generator
	Log           *slog.Logger
	Version       string
	MaxLogoBytes  int64
	DefaultColor  color.RGBA
	DefaultFormat designer.Format

	startTime time.Time
	page      *template.Template
}

// NewRouter returns a fully configured chi router with all API routes.
func NewRouter(s *Server) http.Handler {
	s.startTime = time.Now()
	s.page = template.Must(template.New("designer").Parse(designerPageHTML))
	if s.Log == nil {
		s.Log = slog.Default()
	}
	if s.DefaultFormat == "" {
		s.DefaultFormat = designer.FormatPNG
	}
	if s.DefaultColor.A == 0 {
		s.DefaultColor = designer.DefaultColor
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(corsMiddleware)
	r.Use(requestLogger(s.Log))

	r.Get("/status", s.handleStatus)

	// Designer web UI
	r.Get("/", s.handleDesignerPage)
	r.Post("/preview", s.handlePreview)
	r.Post("/generate", s.handleGenerate)

	return r
}

// --- helpers ----------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// --- middleware --------------------------------------------------------------

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
			next.ServeHTTP(w, r)
		})
	}
}
