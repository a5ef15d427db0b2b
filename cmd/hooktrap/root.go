package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rsclarke/hooktrap/internal/logging"
)

var (
	logger *zap.Logger
	apiURL string
)

var rootCmd = &cobra.Command{
	Use:   "hooktrap",
	Short: "Webhook capture and inspection service",
	Long: `hooktrap records arbitrary HTTP requests sent to per-token webhook
endpoints so webhook producers can be debugged and inspected.

Create a token, point the producer at the returned webhook URL, then
retrieve the captured requests.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logging.FromEnv())
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logging.Sync(logger)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", getEnv("HOOKTRAP_URL", "http://localhost:3000"), "server URL")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
