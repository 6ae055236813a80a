package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/luggify/internal/devserver"
	"github.com/dmitrijs2005/luggify/internal/logging"
	"github.com/spf13/cobra"
)

var (
	addr     string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run an in-memory Luggify backend",
	Long: `Serves the Luggify checklist API from memory for local development.
Generated lists come from a fixed catalog; data is lost on exit.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8000", "listen address")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func run(cmd *cobra.Command, args []string) error {
	if _, err := logging.ParseLevel(logLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := logging.NewJSONSlogLogger(os.Stdout, logLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	return devserver.New(logger).Run(ctx, addr)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
