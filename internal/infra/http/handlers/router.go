package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/promptmetrics/promptmetrics-api/internal/infra/http/middleware"
)

type RouterConfig struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	WebhookSecret  string
	Verifier       middleware.TokenVerifier
	TriggerLimiter *middleware.RateLimiter

	Health       *HealthHandler
	Analysis     *AnalysisHandler
	RankLLM      *RankLLMHandler
	Waitlist     *WaitlistHandler
	Organization *OrganizationHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.Get("/health", cfg.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/functions", func(r chi.Router) {
		r.With(cfg.TriggerLimiter.Handler).Post("/trigger-analysis", cfg.Analysis.Trigger)
		r.With(middleware.WebhookAuth(cfg.WebhookSecret)).Post("/receive-analysis", cfg.Analysis.Receive)
		r.Post("/get-analysis-data", cfg.Analysis.Get)
		r.Post("/trigger-rankllm-analysis", cfg.RankLLM.Trigger)
		r.Post("/get-rankllm-data", cfg.RankLLM.Get)
		r.Post("/submit-waitlist", cfg.Waitlist.Submit)
		r.With(middleware.RequireUser(cfg.Verifier)).Post("/create-organization", cfg.Organization.Create)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(cfg.Verifier))
		r.Get("/auth/redirect", cfg.Organization.Redirect)
		r.Get("/organizations/{slug}/dashboard", cfg.Organization.Dashboard)
	})

	return r
}
