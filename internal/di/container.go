package di

import (
	"context"
	"fmt"
	"io"

	"github.com/GoArmGo/Filmorate/internal/adapter/storage/minio"
	"github.com/GoArmGo/Filmorate/internal/app"
	"github.com/GoArmGo/Filmorate/internal/config"
	"github.com/GoArmGo/Filmorate/internal/core/ports"
	"github.com/GoArmGo/Filmorate/internal/database/client"
	"github.com/GoArmGo/Filmorate/internal/database/postgres"
	"github.com/GoArmGo/Filmorate/internal/database/storage"
	"github.com/GoArmGo/Filmorate/internal/handler"
	"github.com/GoArmGo/Filmorate/internal/logger"
	"github.com/GoArmGo/Filmorate/internal/messaging"
	"github.com/GoArmGo/Filmorate/internal/rabbitmq"
	"github.com/GoArmGo/Filmorate/internal/reference"
	"github.com/GoArmGo/Filmorate/internal/usecase"
)

// uploadConcurrency — сколько постеров можно загружать одновременно
const uploadConcurrency = 5

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента и миграций
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	closers := []io.Closer{dbClient}

	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
		return nil, err
	}

	// GORM работает поверх того же пула соединений
	gormDB, err := postgres.NewGormDB(dbClient.DB.DB, slogger)
	if err != nil {
		return fail(err)
	}

	// 3. Инициализация хранилищ
	filmStorage := storage.NewFilmStorage(dbClient.DB, slogger)
	directorStorage := storage.NewDirectorStorage(dbClient.DB, slogger)
	likeStorage := storage.NewLikeStorage(dbClient.DB, slogger)
	feedStorage := storage.NewFeedStorage(dbClient.DB, slogger)
	userStorage := postgres.NewGormUserStorage(gormDB, slogger)

	catalog, err := reference.Load(ctx, postgres.NewGormReferenceStorage(gormDB, slogger), slogger)
	if err != nil {
		return fail(err)
	}

	// 4. Лента событий: через RabbitMQ, если он настроен, иначе сразу в БД
	var (
		feedPublisher ports.FeedEventPublisher
		feedConsumer  ports.FeedEventConsumer
	)
	if cfg.RabbitMQEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, rabbitMQClient)
		feedPublisher = rabbitMQClient
		feedConsumer = rabbitMQClient
	} else {
		slogger.Warn("RABBITMQ_URL is not set, feed events are written directly")
		feedPublisher = messaging.NewDirectPublisher(feedStorage, slogger)
	}

	// 5. Хранилище постеров (S3 / MinIO); интерфейс остаётся nil, если оно не настроено
	var fileStorage ports.FileStorage
	if cfg.MinioEnabled() {
		minioClient, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			return fail(fmt.Errorf("init poster storage: %w", err))
		}
		fileStorage = minioClient
	} else {
		slogger.Warn("MINIO_ENDPOINT is not set, poster upload is disabled")
	}

	// 6. Инициализация бизнес-логики (usecases)
	filmUseCase := usecase.NewFilmUseCase(filmStorage, likeStorage, feedPublisher, fileStorage, slogger)
	directorUseCase := usecase.NewDirectorUseCase(directorStorage)
	userUseCase := usecase.NewUserUseCase(userStorage)
	feedUseCase := usecase.NewFeedUseCase(feedStorage, slogger)

	// 7. HTTP слой
	router := handler.NewRouter(handler.Handlers{
		Films:      handler.NewFilmHandler(filmUseCase, userUseCase, make(chan struct{}, uploadConcurrency), slogger),
		Directors:  handler.NewDirectorHandler(directorUseCase, slogger),
		References: handler.NewReferenceHandler(catalog, slogger),
		Users:      handler.NewUserHandler(userUseCase, filmUseCase, feedUseCase, slogger),
	}, cfg.RequestTimeout, slogger)

	// 8. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, router, feedUseCase, feedConsumer, closers...)

	slogger.Info("all dependencies initialized")
	return application, nil
}
