package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-grocery-list/internal/app"
	"ai-grocery-list/internal/config"
	"ai-grocery-list/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	verbose     bool
	planFile    string
	recordID    int64
	cleanupDays int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "grocery-list",
	Short: "Generate categorized grocery lists from weekly meal plans",
	Long: `grocery-list turns a weekly meal plan (lunch and dinner for each day)
into a grocery list grouped by store section, using a language model.

Configuration is read from the environment or a .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a grocery list from a meal plan JSON file",
	RunE:  runGenerate,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a stored meal plan and its grocery list",
	RunE:  runShow,
}

var metricsCleanupCmd = &cobra.Command{
	Use:   "metrics-cleanup",
	Short: "Delete model usage metrics older than the given number of days",
	RunE:  runMetricsCleanup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	generateCmd.Flags().StringVarP(&planFile, "file", "f", "", "Path to the meal plan JSON file (required)")
	_ = generateCmd.MarkFlagRequired("file")

	showCmd.Flags().Int64Var(&recordID, "id", 0, "Grocery list id (required)")
	_ = showCmd.MarkFlagRequired("id")

	metricsCleanupCmd.Flags().IntVar(&cleanupDays, "days", 30, "Keep metrics from the last N days")

	rootCmd.AddCommand(serveCmd, generateCmd, showCmd, metricsCleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap(ctx context.Context) (*app.App, *config.Config, error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	application, err := app.Bootstrap(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return application, cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	gin.SetMode(cfg.GinMode)
	srv := newHTTPServer(cfg.Port, application.Router())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("provider", cfg.LLMProvider), zap.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Model calls can take a while.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	application, _, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer application.Close()

	return application.GenerateFromFile(cmd.Context(), planFile, cmd.OutOrStdout())
}

func runShow(cmd *cobra.Command, args []string) error {
	if recordID <= 0 {
		return fmt.Errorf("--id must be a positive integer")
	}
	application, _, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer application.Close()

	return application.ShowRecord(cmd.Context(), recordID, cmd.OutOrStdout())
}

func runMetricsCleanup(cmd *cobra.Command, args []string) error {
	if cleanupDays <= 0 {
		return fmt.Errorf("--days must be a positive integer")
	}
	application, _, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer application.Close()

	removed, err := application.CleanupMetrics(cmd.Context(), cleanupDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d metric rows older than %d days\n", removed, cleanupDays)
	return nil
}
