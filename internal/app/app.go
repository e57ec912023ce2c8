package app

import (
	"context"
	"fmt"
	"time"

	httpx "github.com/yungbote/account-inventory/internal/http"
	httpH "github.com/yungbote/account-inventory/internal/http/handlers"
	"github.com/yungbote/account-inventory/internal/observability"
	"github.com/yungbote/account-inventory/internal/platform/logger"
	"github.com/yungbote/account-inventory/internal/services"
)

type App struct {
	Log    *logger.Logger
	Config *Config

	server       *httpx.Server
	closeSource  func() error
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	serviceName := cfg.Otel.ServiceName
	if serviceName == "" {
		serviceName = observability.DefaultServiceName
	}
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: serviceName,
		Environment: cfg.Env,
		Version:     httpH.ServiceVersion,
		Endpoint:    cfg.Otel.Endpoint,
		Headers:     observability.ParseHeaders(cfg.Otel.Headers),
		Insecure:    cfg.Otel.Insecure,
		SampleRatio: cfg.Otel.SampleRatio,
	})

	source, closeSource, err := resolveSource(ctx, log, *cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}

	accounts := services.NewAccountService(log, source, services.AccountServiceOptions{
		StrictDuplicates: cfg.StrictDuplicates,
	})

	ready := func(ctx context.Context) error {
		_, err := accounts.Tenants(ctx)
		return err
	}

	routes := httpx.RouterConfig{
		Log:            log,
		AccountHandler: httpH.NewAccountHandler(log, accounts),
		MetaHandler:    httpH.NewMetaHandler(),
		HealthHandler:  httpH.NewHealthHandler(ready),
	}
	if cfg.Otel.Enabled {
		routes.ServiceName = serviceName
	}

	srv := httpx.NewServer(httpx.ServerConfig{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout.Duration,
	}, routes)

	log.Info("Account inventory configured",
		"addr", cfg.HTTP.Addr,
		"source", source.Describe(),
		"strict_duplicates", cfg.StrictDuplicates,
		"otel_enabled", cfg.Otel.Enabled,
	)

	return &App{
		Log:          log,
		Config:       cfg,
		server:       srv,
		closeSource:  closeSource,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled and then releases the source and
// flushes traces.
func (a *App) Run(ctx context.Context) error {
	a.Log.Info("HTTP server listening", "addr", a.server.Addr())
	err := a.server.Run(ctx)
	a.close()
	return err
}

func (a *App) close() {
	if a.closeSource != nil {
		if err := a.closeSource(); err != nil {
			a.Log.Warn("Close account source failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("Otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
