package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/blog-api/internal/api"
	"github.com/baharkarakas/blog-api/internal/auth"
	"github.com/baharkarakas/blog-api/internal/config"
	"github.com/baharkarakas/blog-api/internal/logger"
	"github.com/baharkarakas/blog-api/internal/services"
	"github.com/baharkarakas/blog-api/internal/worker"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply postgres migrations before serving")
	return cmd
}

func serve(parent context.Context, cfg config.Config, migrate bool) error {
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openStore(ctx, cfg, migrate)
	if err != nil {
		return err
	}

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	wp := worker.NewPool(cfg.Workers)

	userSvc := services.NewUserService(repos.Users, tm)
	postSvc := services.NewPostService(repos.Posts, repos.AuditLogs, wp, cfg.DefaultPageSize, cfg.MaxPageSize)

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: api.NewRouter(api.RouterDeps{
			Cfg:     cfg,
			Tokens:  tm,
			UserSvc: userSvc,
			PostSvc: postSvc,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err = <-errCh:
		log.Error("server", "err", err)
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	// in-flight audit writes finish before the store goes away
	wp.Stop()
	if cerr := repos.Close(shutdownCtx); cerr != nil {
		log.Warn("store close", "err", cerr)
	}
	return err
}
