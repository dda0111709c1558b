package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hostforge/hostforge/internal/bootstrap"
	"github.com/hostforge/hostforge/internal/config"
	"github.com/hostforge/hostforge/internal/modules/handler"
	"github.com/hostforge/hostforge/internal/modules/service"
	"github.com/hostforge/hostforge/internal/router"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg, err := do.Invoke[*config.Config](inj)
	if err != nil {
		panic(err)
	}
	log, err := do.Invoke[*zap.Logger](inj)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	monitor := do.MustInvoke[service.MonitorService](inj)
	security := do.MustInvoke[service.SecurityService](inj)
	chat := do.MustInvoke[service.ChatService](inj)
	defer chat.Close()

	r := router.NewRouter(router.RouterDeps{
		Config:          cfg,
		Log:             log,
		CapsuleHandler:  do.MustInvoke[*handler.CapsuleHandler](inj),
		MonitorHandler:  do.MustInvoke[*handler.MonitorHandler](inj),
		SecurityHandler: do.MustInvoke[*handler.SecurityHandler](inj),
		ChatHandler:     do.MustInvoke[*handler.ChatHandler](inj),
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		monitor.Run(gctx)
		return nil
	})
	g.Go(func() error {
		security.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info("server starting", zap.String("addr", cfg.App.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
