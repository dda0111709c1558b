package bootstrap

import (
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/hostforge/hostforge/internal/config"
	"github.com/hostforge/hostforge/internal/infra/logger"
	"github.com/hostforge/hostforge/internal/infra/stream"
	"github.com/hostforge/hostforge/internal/modules/handler"
	"github.com/hostforge/hostforge/internal/modules/repo"
	"github.com/hostforge/hostforge/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// stream hub
	do.Provide(inj, func(i *do.Injector) (*stream.Hub, error) {
		return stream.NewHub(), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.CapsuleRepo, error) {
		return repo.NewCapsuleRepo(SeedCapsules()), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.CapsuleService, error) {
		return service.NewCapsuleService(
			do.MustInvoke[repo.CapsuleRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.MonitorService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewMonitorService(
			do.MustInvoke[*stream.Hub](i),
			do.MustInvoke[*zap.Logger](i),
			service.MonitorOptions{
				WindowLen:    cfg.Monitor.WindowLen,
				TickInterval: cfg.Monitor.TickInterval,
				ScoreEvery:   cfg.Monitor.ScoreEvery,
			},
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.SecurityService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewSecurityService(
			do.MustInvoke[*zap.Logger](i),
			cfg.Security.Refresh,
			0,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ChatService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewChatService(service.ChatConfig{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		}, do.MustInvoke[*zap.Logger](i)), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.CapsuleHandler, error) {
		return handler.NewCapsuleHandler(do.MustInvoke[service.CapsuleService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.MonitorHandler, error) {
		return handler.NewMonitorHandler(
			do.MustInvoke[service.MonitorService](i),
			do.MustInvoke[*stream.Hub](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.SecurityHandler, error) {
		return handler.NewSecurityHandler(do.MustInvoke[service.SecurityService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ChatHandler, error) {
		return handler.NewChatHandler(do.MustInvoke[service.ChatService](i)), nil
	})
	return inj
}
