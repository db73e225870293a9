package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/parlami/internal/bootstrap"
	"github.com/at-ishikawa/parlami/internal/catalog"
	"github.com/at-ishikawa/parlami/internal/config"
	"github.com/at-ishikawa/parlami/internal/learner"
	"github.com/at-ishikawa/parlami/internal/server"
	"github.com/at-ishikawa/parlami/internal/storage"
	"github.com/at-ishikawa/parlami/internal/translation"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "parlami-server",
		Short:         "Parlami learner API over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	})))
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	srv, err := newServer(ctx, app, cfg)
	if err != nil {
		return err
	}

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

// newServer opens the learner state and returns the HTTP server serving it.
// Everything it opens is closed by app's shutdown hooks.
func newServer(ctx context.Context, app *bootstrap.App, cfg *config.Config) (*http.Server, error) {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage.Open > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return store.Close()
	})

	c, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load > %w", err)
	}
	session, err := learner.Open(ctx, store, c, time.Now)
	if err != nil {
		return nil, fmt.Errorf("learner.Open > %w", err)
	}

	client := translation.NewMyMemoryClient(cfg.Translation.BaseURL, cfg.Translation.Email, cfg.Translation.RetryAttempts)
	app.AddShutdownHook(func(context.Context) error {
		return client.Close()
	})
	ttl := time.Duration(cfg.Translation.CacheTTLHours) * time.Hour
	translator := translation.NewService(client, translation.NewCache(store, ttl, time.Now), time.Now)

	saved, err := translation.NewSavedRepository(store, time.Now).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("savedRepository.List > %w", err)
	}
	translator.SeedRecent(saved)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.New(server.NewHandler(session, translator), cfg.Server.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(srv.Shutdown)
	return srv, nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
