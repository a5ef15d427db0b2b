package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsclarke/hooktrap/internal/config"
	"github.com/rsclarke/hooktrap/internal/db"
	"github.com/rsclarke/hooktrap/internal/logging"
	"github.com/rsclarke/hooktrap/internal/server"
)

var serverFlags struct {
	bindAddr string
	dbPath   string
	baseURL  string
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the webhook capture server",
	Long: `Start the hooktrap server.

Configuration is read from the environment (a .env file in the working
directory is honored); flags override it:

  BASE_URL              fixed external base URL for webhook URLs
  BIND_ADDR / PORT      listen address (default 0.0.0.0:3000)
  HOOKTRAP_DB           database path (default hooktrap.db)
  MAX_BODY_SIZE         captured body cap, e.g. "1MiB"
  CORS_PERMISSIVE       allow any origin when set
  CORS_ALLOWED_ORIGINS  comma-separated origin allow-list`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringVar(&serverFlags.bindAddr, "bind", "", "address to listen on (overrides BIND_ADDR/PORT)")
	serverCmd.Flags().StringVar(&serverFlags.dbPath, "db", "", "database path (overrides HOOKTRAP_DB)")
	serverCmd.Flags().StringVar(&serverFlags.baseURL, "base-url", "", "fixed external base URL for webhook URLs (overrides BASE_URL)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serverFlags.bindAddr != "" {
		cfg.BindAddr = serverFlags.bindAddr
	}
	if serverFlags.dbPath != "" {
		cfg.DBPath = serverFlags.dbPath
	}
	if serverFlags.baseURL != "" {
		cfg.BaseURL = serverFlags.baseURL
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	srv := &server.Server{
		DB:                 database,
		BaseURL:            cfg.BaseURL,
		MaxBodySize:        cfg.MaxBodySize,
		CORSPermissive:     cfg.CORSPermissive,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger.Named("server"),
	}

	managed := server.NewManagedServer(cfg.BindAddr, srv.Handler(), logger.Named("http"))
	managed.Start()
	if err := managed.WaitForStartup(500 * time.Millisecond); err != nil {
		return err
	}

	logger.Info("listening", logging.Addr(cfg.BindAddr))
	if cfg.BaseURL != "" {
		logger.Info("using configured base url", logging.BaseURL(cfg.BaseURL))
	} else {
		logger.Info("no base url configured, deriving webhook urls from request headers")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	managed.Shutdown(ctx)

	return nil
}
