package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/roastarena/backend/pkg/app/http"
	"github.com/roastarena/backend/pkg/arenadb"
	"github.com/roastarena/backend/pkg/config"
	"github.com/roastarena/backend/pkg/pgutil"
	profilesvc "github.com/roastarena/backend/pkg/profile/service"
	"github.com/roastarena/backend/pkg/profilestore"
	"github.com/roastarena/backend/pkg/roastapi"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger("api-server", cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting RoastArena API server")

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	roastService := roastapi.NewService(arenadb.NewStore(db), logger)
	profileService := profilesvc.NewService(profilestore.NewStore(db), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		roastapi.RegisterRoutes(r, roastService, logger)
		profilesvc.RegisterRoutes(r, profileService, logger)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := apphttp.ServeAndWait(ctx, r, logger, &cfg.Server, cfg.Shutdown.Timeout()); err != nil {
		logger.Fatal("API server failed", zap.Error(err))
	}

	logger.Info("API server stopped")
}
