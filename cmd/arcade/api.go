package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/api"
	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP catalog API",
	Long: `Serve the catalog and the leaderboards as JSON.

Endpoints:
  GET /health
  GET /categories
  GET /games?category=<id>
  GET /games/{id}
  GET /games/{id}/scores?limit=<n>

Examples:
  arcade api
  arcade api --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "HTTP listen address (default from config)")
}

func runAPI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagAPIAddr != "" {
		cfg.API.Addr = flagAPIAddr
	}

	logger := newLogger(os.Stderr, cfg, "arcade-api")
	store := storage.OpenOrMemory(cfg.DBPath, logger)
	//nolint:errcheck // Best-effort close on exit
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.New(api.Options{
		Catalog:        catalog.Default(),
		Store:          store,
		Logger:         logger,
		RequestTimeout: cfg.API.RequestTimeout,
	})
	return srv.ListenAndServe(ctx, cfg.API.Addr)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// port extracts the port from a listen address for the connect hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}

