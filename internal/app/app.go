package app

import (
	"context"
	"errors"
	"harvest_slots/internal/config"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) initLogger() {
	setupLogger(log.StandardLogger(), s.ServiceProvider.LogCfg())
}

// setupLogger - текстовый вывод с полными метками времени
func setupLogger(logger *log.Logger, cfg config.LogConfig) {
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logger.SetLevel(cfg.Level())
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.WithError(err).Warn("error loading .env file")
	}
	s.initServiceProvider()
	s.initLogger()
	defer s.ServiceProvider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := s.ServiceProvider.Router(ctx)
	s.ServiceProvider.HarvestService(ctx).Start()

	srv := &http.Server{
		Addr:    s.ServiceProvider.HTTPCfg().Address(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
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

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ServiceProvider.HTTPCfg().ShutdownTimeout())
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
