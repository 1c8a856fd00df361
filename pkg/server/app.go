package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leemthai/zone-sniper-sub000/internal/engine"
	"github.com/leemthai/zone-sniper-sub000/internal/repository"
	"github.com/leemthai/zone-sniper-sub000/internal/service/binance"
	pkgch "github.com/leemthai/zone-sniper-sub000/pkg/clickhouse"
	"github.com/leemthai/zone-sniper-sub000/pkg/config"
	xhttp "github.com/leemthai/zone-sniper-sub000/pkg/http"
	applogger "github.com/leemthai/zone-sniper-sub000/pkg/logger"
)

// App encapsulates the application lifecycle: candle backfill, price stream,
// recompute engine and the HTTP surface.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	series     *repository.SeriesStore
	stream     *binance.Stream
	engine     *engine.Engine
	publisher  *repository.KafkaSignalPublisher
	chClient   *pkgch.Client
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates an App with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	series *repository.SeriesStore,
	stream *binance.Stream,
	eng *engine.Engine,
	publisher *repository.KafkaSignalPublisher,
	chClient *pkgch.Client,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:       cfg,
		logger:    log,
		series:    series,
		stream:    stream,
		engine:    eng,
		publisher: publisher,
		chClient:  chClient,
		handler:   handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Backfill before anything consumes the series
	a.logger.Info("loading candle series", applogger.Strings("symbols", a.cfg.Binance.Symbols))
	if err := a.series.LoadAll(ctx, a.cfg.Binance.Symbols); err != nil {
		a.logger.Error("series load failed", applogger.Error(err))
		return err
	}

	go a.stream.Run(ctx)
	go a.engine.Run(ctx)

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsLogger(a.logger),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("http shutdown error", applogger.Error(err))
		}
	}
	if err := a.stream.Close(); err != nil {
		a.logger.Warn("stream close error", applogger.Error(err))
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("kafka close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
