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
	"golang.org/x/sync/errgroup"

	"github.com/forgelab/promptforge/pkg/cli/config"
	httpctrl "github.com/forgelab/promptforge/pkg/controller/http"
	"github.com/forgelab/promptforge/pkg/usecase"
	"github.com/forgelab/promptforge/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var providerCfg config.Provider
	var authCfg config.Auth
	var levelsCfg config.Levels

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PROMPTFORGE_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, providerCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, levelsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the relay HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			authUC, err := authCfg.Configure(repo)
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			if authCfg.IsNoAuthMode() {
				logging.Default().Warn("Running in no-auth mode (development only)")
			} else if authCfg.IsConfigured() {
				logging.Default().Info("External auth service enabled")
			} else {
				logging.Default().Info("Auth not configured, history endpoints disabled")
			}

			if !providerCfg.HasCredential() {
				logging.Default().Warn("No provider API key found, generation requests will fail")
			}

			levels, err := levelsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load level definitions")
			}

			ucOpts := []usecase.Option{
				usecase.WithCompletionClient(providerCfg.Configure()),
			}
			if authUC != nil {
				ucOpts = append(ucOpts, usecase.WithAuth(authUC))
			}
			uc := usecase.New(repo, ucOpts...)

			handler := httpctrl.New(uc, httpctrl.WithLevels(levels))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Run the server until a shutdown signal arrives
			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)
			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
