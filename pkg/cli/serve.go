package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetscope/fleetscope/pkg/cli/config"
	controller "github.com/fleetscope/fleetscope/pkg/controller/http"
	"github.com/fleetscope/fleetscope/pkg/domain/interfaces"
	"github.com/fleetscope/fleetscope/pkg/usecase"
	"github.com/fleetscope/fleetscope/pkg/utils/apperr"
	"github.com/fleetscope/fleetscope/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		firestoreCfg config.Firestore
		sourceCfg    config.Source
		catalogCfg   config.Catalog
		seedCfg      config.Seed
	)

	flags := joinFlags(
		serverCfg.Flags(),
		firestoreCfg.Flags(),
		sourceCfg.Flags(),
		catalogCfg.Flags(),
		seedCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the dashboard HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting fleetscope server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("firestore", firestoreCfg),
				slog.Any("source", sourceCfg),
				slog.Any("catalog", catalogCfg),
				slog.Any("seed", seedCfg),
			)

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			var src interfaces.DeviceSource
			if client := sourceCfg.Configure(); client != nil {
				src = client
			}

			loader := usecase.NewLoader(repo, src, int(sourceCfg.WindowMonths))

			// Seed the mock dataset when the repository is empty, so the
			// dashboard has data before any source load completes
			activeLoad, err := repo.ActiveLoad(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to check repository state")
			}
			if activeLoad == "" {
				if err := loader.Seed(ctx, seedCfg.Configure(catalog).Generate()); err != nil {
					return err
				}
			}

			// Fire-and-forget startup load: no retry, and a failure keeps
			// the dataset already in place
			if src != nil {
				async.Dispatch(ctx, loader.Load)
			}

			dashboardUC := usecase.NewDashboard(repo, catalog)
			server := controller.NewServer(ctx, serverCfg.Addr, dashboardUC)

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					apperr.Handle(ctx, goerr.Wrap(err, "HTTP server error"))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
