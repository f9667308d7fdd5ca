package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Mortgage       *MortgageHandler
	Terms          *TermRecommendationHandler
	Limiter        *RateLimiter
	AllowedOrigins []string
	Logger         zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLogger(cfg.Logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Routes are registered on the root router so a method mismatch reaches
	// MethodNotAllowedHandler; mux subrouters report it as a 404.
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(cfg.Limiter)(RequireJSON(h))
	}

	r.Handle("/mortgage/schedule", limited(cfg.Mortgage.CalculateSchedule)).Methods(http.MethodPost)
	r.Handle("/mortgage/compare", limited(cfg.Mortgage.CompareScenarios)).Methods(http.MethodPost)
	r.Handle("/mortgage/chart", limited(cfg.Mortgage.RenderChart)).Methods(http.MethodPost)
	r.Handle("/mortgage/recommend-term", limited(cfg.Terms.RecommendTerm)).Methods(http.MethodPost)
	r.Handle("/mortgage/calculations/{id}", limited(cfg.Mortgage.GetCalculation)).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(r)
}
