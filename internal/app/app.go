package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/Filmorate/internal/config"
	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/usecase"
)

const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	Config       *config.Config
	logger       *slog.Logger
	router       http.Handler
	feedUseCase  usecase.FeedUseCase
	feedConsumer ports.FeedEventConsumer
	// closers закрываются в обратном порядке при завершении
	closers []io.Closer
}

// NewApp собирает приложение. feedConsumer равен nil, если RabbitMQ не настроен.
func NewApp(cfg *config.Config,
	logger *slog.Logger,
	router http.Handler,
	feedUseCase usecase.FeedUseCase,
	feedConsumer ports.FeedEventConsumer,
	closers ...io.Closer) *App {
	return &App{
		Config:       cfg,
		logger:       logger,
		router:       router,
		feedUseCase:  feedUseCase,
		feedConsumer: feedConsumer,
		closers:      closers,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до сигнала завершения.
func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = runServer(ctx, a.Config, a.router, a.logger)
	case ModeWorker:
		err = runWorker(ctx, a.feedUseCase, a.feedConsumer, a.logger)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
