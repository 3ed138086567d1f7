package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/vogue_nest/internal/httpserver"
	"github.com/Skotchmaster/vogue_nest/internal/logging"
	"github.com/Skotchmaster/vogue_nest/internal/service"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, ctx, err := openApp(ctx, rootOpts, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()

			return runServe(ctx, a)
		},
	}
}

func runServe(ctx context.Context, a *app) error {
	if err := a.cfg.RequireServe(); err != nil {
		return err
	}
	l := a.logger

	if a.cfg.SeedOnStart {
		if err := a.store.Init(ctx, false); err != nil {
			return fmt.Errorf("seed on start: %w", err)
		}
	}

	authSvc := service.NewAuthService(a.store, a.publisher)
	if err := authSvc.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	defer authSvc.Close()
	authSvc.OnLogout(func(ctx context.Context) {
		logging.FromContext(ctx).Info("session_ended")
	})

	carts, err := service.NewCartService(ctx, a.store, a.publisher)
	if err != nil {
		return fmt.Errorf("load carts: %w", err)
	}
	orders := service.NewOrderService(a.store, carts, a.publisher)

	e := httpserver.New(l, &httpserver.Deps{
		Store:     a.store,
		JWTSecret: a.cfg.JWTSecret,
		Auth:      &httpserver.AuthHTTP{Svc: authSvc, JWTSecret: a.cfg.JWTSecret, TokenTTL: a.cfg.AccessTokenTTL},
		Products:  &httpserver.ProductHTTP{Store: a.store},
		Cart:      &httpserver.CartHTTP{Svc: carts, Orders: orders, Store: a.store},
		Orders:    &httpserver.OrderHTTP{Svc: orders, Store: a.store},
		Admin:     &httpserver.AdminHTTP{Store: a.store, Orders: orders, Auth: authSvc},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info("http server started", "addr", srv.Addr, "state", authSvc.State().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("server shutdown error", "error", err)
		return err
	}
	l.Info("shutdown complete")
	return nil
}
