package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/sales-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/charts"

	salesatlasmiddleware "github.com/de-tools/sales-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Dashboard handlers.Dashboard
	Charts    charts.Registry
	Logger    zerolog.Logger
}

type Config struct {
	Addr               string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	// RateLimitRequests caps /api/v1 requests per client IP within
	// RateLimitWindow. Zero disables the limiter.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	Dependencies      Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	registry := config.Dependencies.Charts
	if registry == nil {
		registry = charts.DefaultRegistry()
	}
	dashboardHandler := handlers.NewRouter(config.Dependencies.Dashboard, registry)

	origins := config.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(salesatlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(salesatlasmiddleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(middleware.Recoverer)

	router.Get("/", dashboardHandler.Page)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		if config.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(config.RateLimitRequests, config.RateLimitWindow))
		}

		r.Get("/categories", dashboardHandler.ListCategories)
		r.Get("/sales", dashboardHandler.ListSales)
		r.Get("/sales/by-category", dashboardHandler.SalesByCategory)
		r.Get("/customers", dashboardHandler.ListCustomers)
		r.Get("/products", dashboardHandler.ListProducts)
		r.Get("/summary", dashboardHandler.GetSummary)
		r.Get("/insights", dashboardHandler.GetInsights)
		r.Get("/charts/{chart}.{format}", dashboardHandler.GetChart)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
