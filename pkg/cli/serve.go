package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/govern-lab/aegis/pkg/cli/config"
	httpctrl "github.com/govern-lab/aegis/pkg/controller/http"
	"github.com/govern-lab/aegis/pkg/usecase"
	"github.com/govern-lab/aegis/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var catalogCfg config.Catalog
	var scoringCfg config.Scoring
	var repoCfg config.Repository
	var authCfg config.Auth

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("AEGIS_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Load reference data
			cat, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load governance catalog")
			}
			scoring, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load scoring table")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			authUC := authCfg.Configure(repo)
			if authCfg.IsNoAuthMode() {
				logging.Default().Warn("Running in no-auth mode (development only)")
			}

			uc := usecase.New(repo, cat, scoring, usecase.WithAuth(authUC))

			handler := httpctrl.New(uc, cat, httpctrl.WithAuth(authUC))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
