package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"OddsLens/internal/domain/repository"
	"OddsLens/internal/service/ticker"
	"OddsLens/pkg/cache"
	pkgch "OddsLens/pkg/clickhouse"
	"OddsLens/pkg/config"
	xhttp "OddsLens/pkg/http"
	xlogger "OddsLens/pkg/logger"
)

// App encapsulates the entire application lifecycle: the HTTP server, the
// websocket price feed and every backend that needs closing on shutdown.
type App struct {
	cfg      *config.Config
	log      *xlogger.Logger
	handler  xhttp.Handler
	hub      *ticker.Hub
	sink     repository.PredictionSink
	kv       cache.Service
	chClient *pkgch.Client

	httpServer *xhttp.Server
}

func New(
	cfg *config.Config,
	log *xlogger.Logger,
	handler xhttp.Handler,
	hub *ticker.Hub,
	sink repository.PredictionSink,
	kv cache.Service,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		handler:  handler,
		hub:      hub,
		sink:     sink,
		kv:       kv,
		chClient: chClient,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.hub != nil {
		go a.hub.Run(ctx)
		a.log.Info("price ticker started",
			xlogger.Duration("interval", a.cfg.Ticker.Interval),
			xlogger.Int("markets", a.cfg.Ticker.Markets),
		)
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start", xlogger.Error(err))
		return err
	}
	a.log.Info("http server started", xlogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// shutdown stops the HTTP server first so no request races a closing
// backend, then releases every backend.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown", xlogger.Error(err))
		firstErr = err
	}

	if a.sink != nil {
		if err := a.sink.Close(); err != nil {
			a.log.Warn("prediction sink close", xlogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.log.Warn("cache close", xlogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close", xlogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	a.log.Info("shutdown complete")
	return firstErr
}
