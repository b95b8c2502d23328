// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"circdash/internal/analytics"
	"circdash/internal/api"
	"circdash/internal/catalog"
	"circdash/internal/circulation"
	"circdash/internal/config"
	"circdash/internal/notes"
	"circdash/internal/reporting"
	"circdash/internal/telemetry"
)

func main() {
	cfg := config.Load()

	logger, err := buildLogger(cfg.Environment)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	tp, err := telemetry.Setup(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	if tp != nil {
		defer tp.Shutdown(ctx)
	}

	items, transactions, err := catalog.Load(cfg.CSVPath, cfg.SampleCSVPath, logger)
	if err != nil {
		logger.Fatal("failed to load circulation export", zap.Error(err))
	}

	checkoutStore, err := circulation.OpenStore(cfg.CheckoutsPath(), logger)
	if err != nil {
		logger.Fatal("failed to open checkout ledger", zap.Error(err))
	}
	noteStore, err := notes.OpenStore(cfg.NotesPath(), logger)
	if err != nil {
		logger.Fatal("failed to open notes ledger", zap.Error(err))
	}

	catalogSvc := catalog.NewService(items, transactions, cfg.DefaultPageSize, cfg.MaxPageSize)
	circulationSvc := circulation.NewService(checkoutStore, logger)
	reportingSvc := reporting.NewService(catalogSvc, circulationSvc)
	analyticsSvc := analytics.NewService(catalogSvc)
	notesSvc := notes.NewService(noteStore, logger)

	catalogHandler := catalog.NewHandler(catalogSvc, circulationSvc, logger)
	circulationHandler := circulation.NewHandler(circulationSvc, logger)
	reportingHandler := reporting.NewHandler(reportingSvc)
	analyticsHandler := analytics.NewHandler(analyticsSvc)
	notesHandler := notes.NewHandler(notesSvc, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(throttleWrites(rate.NewLimiter(rate.Every(time.Second), 20)))

	r.Get("/api/health", handleHealth)

	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", catalogHandler.HandleSearch)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", catalogHandler.HandleDetail)
			r.Get("/notes", notesHandler.HandleList)
			r.Post("/notes", notesHandler.HandleAdd)
			r.Get("/checkout", circulationHandler.HandleStatus)
			r.Post("/checkout", circulationHandler.HandleCheckout)
			r.Post("/checkin", circulationHandler.HandleCheckin)
		})
	})

	r.Route("/api/notes/{id}", func(r chi.Router) {
		r.Get("/", notesHandler.HandleList)
		r.Post("/", notesHandler.HandleAdd)
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/checked-out", reportingHandler.HandleCheckedOut)
		r.Get("/history", reportingHandler.HandleHistory)
		r.Get("/stats", reportingHandler.HandleStats)
	})

	r.Get("/api/stats", analyticsHandler.HandleStats)

	logger.Info("starting circulation dashboard",
		zap.String("port", cfg.Port),
		zap.Int("items", len(items)))

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func buildLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// throttleWrites bounds mutating request throughput; reads pass through.
func throttleWrites(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodOptions && !limiter.Allow() {
				api.WriteError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
