package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"meetingsManagement/internal/dates"
	grpcserver "meetingsManagement/internal/grpc"
	"meetingsManagement/internal/router"
	"meetingsManagement/internal/updates"
	"meetingsManagement/internal/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the application shell over HTTP and the navigation service over gRPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger
	logger.Info("configuration loaded", zap.Stringer("config", cfg))

	be, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	table, err := router.LoadTableFile(cfg.Guard.RoutesFile)
	if err != nil {
		return err
	}
	rt := router.New(table, be, router.GuardOptions{
		AdminRole: cfg.Guard.AdminRole,
		OnError:   router.FailurePolicy(cfg.Guard.OnError),
	}, logger.Named("router"))

	formatter, err := dates.NewFormatter(cfg.Web.Locale, cfg.Web.Timezone)
	if err != nil {
		return err
	}

	notifier := updates.NewNotifier(logger.Named("updates"))
	defer notifier.Close()
	watcher, err := updates.NewWatcher(cfg.Web.StaticDir, notifier, 0, logger.Named("updates"))
	if err != nil {
		return err
	}

	shell, err := web.New(web.Options{
		Router:      rt,
		Backend:     be,
		Notifier:    notifier,
		Formatter:   formatter,
		TokenCookie: cfg.Auth.TokenCookie,
		StaticDir:   cfg.Web.StaticDir,
		Logger:      logger.Named("web"),
	})
	if err != nil {
		return err
	}

	grpcSrv := grpcserver.NewServer(rt)
	_, shutdownGRPC, err := grpcserver.Start(grpcSrv, cfg.GRPC.Address, logger.Named("grpc"))
	if err != nil {
		return fmt.Errorf("start grpc: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := watcher.Start(ctx); err != nil {
			// Without a static directory the shell still serves; only updates are lost.
			logger.Warn("asset watcher disabled", zap.Error(err))
			return nil
		}
		<-ctx.Done()
		watcher.Stop()
		return nil
	})

	httpSrv := shell.HTTPServer(cfg.HTTP.Address)
	g.Go(func() error {
		logger.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(sctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownGRPC(sctx); err != nil {
			logger.Warn("grpc shutdown", zap.Error(err))
		}
		return nil
	})

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}
