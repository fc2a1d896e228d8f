package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"movie-review/pkg/telemetry"
	"movie-review/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	config *utils.Config
	logger *zap.Logger

	shutdownTracing func(context.Context) error

	portFlag    string
	backendFlag string

	rootCmd = &cobra.Command{
		Use:   "movie-review",
		Short: "Movie review service with sentiment analysis",
		Long: `movie-review stores movies and reviews and labels every review
as positive or negative using the configured sentiment backend.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config, flags win over the environment
			cfg, err := utils.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if portFlag != "" {
				cfg.App.Port = portFlag
			}
			if backendFlag != "" {
				cfg.Sentiment.Backend = backendFlag
			}
			config = cfg

			// Init logger
			logger, err = utils.InitLogger(cfg.App.LogPath, cfg.App.Name, cfg.App.Debug)
			if err != nil {
				log.Printf("Failed to init logger: %v. Using production logger.", err)
				logger, _ = zap.NewProduction()
			}

			// Init tracing
			shutdownTracing, err = telemetry.Init(cmd.Context(), telemetry.Config{
				ServiceName:   cfg.App.Name,
				Environment:   cfg.Telemetry.Environment,
				TraceExporter: cfg.Telemetry.TraceExporter,
				OTLPEndpoint:  cfg.Telemetry.OTLPEndpoint,
				OTLPInsecure:  cfg.Telemetry.OTLPInsecure,
			})
			if err != nil {
				return fmt.Errorf("init telemetry: %w", err)
			}
			logger.Debug("Tracing configured", zap.String("exporter", cfg.Telemetry.TraceExporter))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if shutdownTracing != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				if err := shutdownTracing(ctx); err != nil && logger != nil {
					logger.Warn("Failed to flush traces", zap.Error(err))
				}
				cancel()
			}
			if logger != nil {
				_ = logger.Sync()
			}
		},
		// serving is the default action
		RunE: runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "listen port (overrides PORT)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "sentiment backend: local, hosted, openai or anthropic (overrides SENTIMENT_BACKEND)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
