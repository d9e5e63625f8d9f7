package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/dayanaadylkhanova/order-insights/internal/adapter/source/orderapi"
	"github.com/dayanaadylkhanova/order-insights/internal/adapter/store/postgres"
	http_server "github.com/dayanaadylkhanova/order-insights/internal/adapter/transport/http"
	"github.com/dayanaadylkhanova/order-insights/internal/service"
	"github.com/dayanaadylkhanova/order-insights/pkg/config"
	"github.com/dayanaadylkhanova/order-insights/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type AppInfo struct {
	Name      string
	BuildTime string
	Commit    string
	Release   string
}

type App struct {
	cfg  config.Config
	info *AppInfo
	log  *zap.Logger

	store     *postgres.Store
	sessions  *service.Sessions
	refresher *service.Refresher
	server    *http_server.Server
}

func New(ctx context.Context, cfg config.Config, info *AppInfo, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, info: info, log: log}

	// 1) Order source
	var src service.OrderLister
	switch cfg.OrderSource {
	case config.SourceHTTP:
		src = orderapi.New(log, cfg.OrdersAPIURL, cfg.OrdersAPIToken, cfg.OrdersAPITimeout)
	default:
		st, err := postgres.New(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		if err := st.Init(ctx); err != nil {
			st.Close()
			return nil, err
		}
		a.store = st
		src = st
	}

	// 2) Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewReportMetrics(reg)

	// 3) Reporting pipeline
	resolver := service.NewDateResolver(service.SystemClock, cfg.Location, cfg.ReadMaxRangeDays)
	fetcher := service.NewFetcher(log, src, cfg.PageSize, cfg.MaxPages, cfg.FetchTimeout, m)
	reporter := service.NewReporter(log, resolver, fetcher, service.SystemClock, m)
	a.sessions = service.NewSessions(log, reporter, cfg.SessionShards, service.SystemClock, m)
	if cfg.RefreshEvery > 0 || cfg.SessionIdleTTL > 0 {
		a.refresher = service.NewRefresher(log, a.sessions, cfg.RefreshEvery, cfg.SessionIdleTTL)
	}

	// 4) HTTP server
	a.server = http_server.NewServer(log, cfg.ListenAddr, reporter, a.sessions,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.Info("app wired",
		zap.String("source", cfg.OrderSource),
		zap.String("timezone", cfg.Location.String()),
		zap.Int("page_size", cfg.PageSize),
		zap.Int("max_pages", cfg.MaxPages),
		zap.Duration("refresh_every", cfg.RefreshEvery),
		zap.Duration("session_idle_ttl", cfg.SessionIdleTTL),
	)
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.refresher != nil {
		go a.refresher.Run(bgCtx)
	}

	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- a.server.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ErrAppShutdownNormal
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server failed", zap.Error(err))
			runErr = ErrAppStartup
		} else {
			runErr = ErrAppShutdownNormal
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.cfg.ShutdownWait)
	defer cancelShutdown()
	if err := a.server.Shutdown(shutdownCtx); err != nil && runErr == ErrAppShutdownNormal {
		a.log.Error("http shutdown", zap.Error(err))
		runErr = ErrAppShutdownWithError
	}
	if a.refresher != nil {
		a.refresher.Stop(shutdownCtx)
	}
	a.log.Info("sessions dropped", zap.Int("count", a.sessions.Len()))
	if a.store != nil {
		a.store.Close()
	}
	return runErr
}
