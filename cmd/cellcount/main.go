// Package main provides the CLI entry point for cellcount.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/cellcount-go/internal/config"
	"github.com/ukaji3/cellcount-go/internal/log"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cellcount",
		Short: "Cell culture dilution calculator",
		Long: `cellcount turns manual hemocytometer counts into a stock concentration,
viability, and the recipe for a working suspension dispensed into dishes.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCalcCmd(cfg, logger))
	rootCmd.AddCommand(newServeCmd(cfg, logger))

	return rootCmd
}
