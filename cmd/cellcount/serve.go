package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/cellcount-go/internal/config"
	"github.com/ukaji3/cellcount-go/internal/server"
	"github.com/ukaji3/cellcount-go/internal/session"
	"go.uber.org/zap"
)

func newServeCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logger.Named("server")

			cache, err := session.NewCache(cfg.Service.CacheSize)
			if err != nil {
				return err
			}

			listener, err := newListener(address)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()

			logger.Info("starting server")
			defer logger.Info("server stopped")
			return server.New(logger, cache, listener).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&address, "address", cfg.Service.Address, "Listen address")

	return cmd
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
