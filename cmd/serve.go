package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mytheresa/go-configurable-catalog/app/database"
	"github.com/mytheresa/go-configurable-catalog/app/server"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := database.Open(cfg.Postgres)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			opts := server.Options{
				CacheSize:        cfg.Cache.Size,
				CacheTTL:         cfg.Cache.TTL,
				PriceScopeGlobal: cfg.PriceScopeGlobal,
			}
			if cfg.Redis.Addr != "" {
				opts.Redis = redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer func() { _ = opts.Redis.Close() }()
				if err := opts.Redis.Ping(cmd.Context()).Err(); err != nil {
					logger.Warnw("redis unreachable, variant cache will fall through", "addr", cfg.Redis.Addr, "error", err)
				}
			}

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           server.NewHandler(db, opts, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Infow("starting server", "addr", cfg.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
