package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-review/internal/data/repository"
	"movie-review/internal/sentiment"
	"movie-review/internal/wire"
	"movie-review/pkg/database"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.String("sentiment_backend", config.Sentiment.Backend),
		zap.Bool("debug", config.App.Debug),
	)

	// Open store
	repos, closeStore, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to open store", zap.Error(err))
		return err
	}
	defer closeStore()

	// Build sentiment pipeline
	annotator, err := newAnnotator(config.Sentiment, logger)
	if err != nil {
		logger.Error("Failed to build sentiment provider", zap.Error(err))
		return err
	}

	// Wire routes
	app := wire.Wiring(repos, annotator, config, logger)

	// Start server
	return APIServer(ctx, app.Router, config.App.Port, logger)
}

// APIServer serves route on port until ctx is cancelled, then drains
// in-flight requests.
func APIServer(ctx context.Context, route *chi.Mux, port string, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal or server failure
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *utils.Config, log *zap.Logger) (*repository.Repository, func(), error) {
	switch cfg.Store.Driver {
	case "", "memory":
		return repository.NewMemoryRepository(log), func() {}, nil
	case "postgres":
		db, err := database.InitDB(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		// Create tables
		if err := database.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("Database connected successfully")
		return repository.NewRepository(db, log), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func newAnnotator(cfg utils.SentimentConfig, log *zap.Logger) (*sentiment.Pipeline, error) {
	provider, err := sentiment.NewProvider(cfg, log)
	if err != nil {
		return nil, err
	}
	return sentiment.NewPipeline(provider, cfg, clockwork.NewRealClock(), log), nil
}
