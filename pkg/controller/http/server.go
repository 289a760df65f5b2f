package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/utils/errutil"
)

// QuoteUseCase prices one questionnaire
type QuoteUseCase interface {
	Quote(ctx context.Context, answers *model.SurveyAnswers) (*model.Quote, error)
}

type Server struct {
	router         *chi.Mux
	quoteUC        QuoteUseCase
	requestTimeout time.Duration
	allowedOrigins []string
}

type Options func(*Server)

// WithRequestTimeout bounds the time spent on one pricing request
func WithRequestTimeout(d time.Duration) Options {
	return func(s *Server) {
		s.requestTimeout = d
	}
}

// WithAllowedOrigins restricts CORS to the given origins. All origins are allowed by default.
func WithAllowedOrigins(origins []string) Options {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

func New(quoteUC QuoteUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:         r,
		quoteUC:        quoteUC,
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", rootHandler)
	r.Get("/health", healthHandler)
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate-pricing", s.calculatePricingHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Zombie Insurance API")) //nolint:errcheck // header already committed
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	errutil.WriteJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
