package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/cli/config"
	httpctrl "github.com/osint-lab/casetrail/pkg/controller/http"
	"github.com/osint-lab/casetrail/pkg/repository"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/usecase"
	"github.com/osint-lab/casetrail/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdServe() *cli.Command {
	var addr string
	var storageCfg config.Storage

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("CASETRAIL_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the local HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := storageCfg.Configure(ctx, c)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize storage")
			}
			defer func() {
				if err := store.Close(); err != nil {
					logging.Default().Error("failed to close storage", "error", err.Error())
				}
			}()

			adapter := kv.NewAdapter(store)
			repo := repository.New(adapter)
			caseStore := usecase.New(repo, adapter)

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(caseStore),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var eg errgroup.Group
			eg.Go(func() error {
				logging.Default().Info("HTTP server listening", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "http server failed")
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logging.Default().Info("Shutting down HTTP server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return eg.Wait()
		},
	}
}
