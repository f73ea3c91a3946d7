package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/svoikit-backend/internal/config"
	"github.com/rocketscienceinc/svoikit-backend/internal/monitor"
	"github.com/rocketscienceinc/svoikit-backend/internal/repository"
	"github.com/rocketscienceinc/svoikit-backend/internal/repository/storage"
	"github.com/rocketscienceinc/svoikit-backend/internal/scheduler"
	"github.com/rocketscienceinc/svoikit-backend/internal/service"
	"github.com/rocketscienceinc/svoikit-backend/internal/usecase"
	"github.com/rocketscienceinc/svoikit-backend/transport/rest"
	"github.com/rocketscienceinc/svoikit-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	roomRepo, inventoryRepo, closeRedis, err := openGameStorage(ctx, conf)
	if err != nil {
		return err
	}
	defer closeRedis()

	metrics := monitor.New()

	var matchRepo repository.MatchRepository

	if conf.PostgresDSN != "" {
		postgresStorage, pgErr := storage.NewPostgresStorage(conf.PostgresDSN)
		if pgErr != nil {
			return fmt.Errorf("could not connect to postgres storage: %w", pgErr)
		}

		defer func() {
			if closeErr := postgresStorage.Close(); closeErr != nil {
				log.Error("could not close postgres storage", "error", closeErr)
			}
		}()

		if err = repository.Migrate(postgresStorage.DB); err != nil {
			return fmt.Errorf("could not migrate postgres storage: %w", err)
		}

		matchRepo = repository.NewMatchRepository(postgresStorage.DB)
	} else {
		log.Warn("postgres-dsn is empty, match history is kept in memory")
		matchRepo = repository.NewMemoryMatchRepository()
	}

	userRepo := repository.NewUserRepository(sqliteStorage.Connection)
	userUseCase := usecase.NewUserUseCase(userRepo, conf.Admins)
	authService := service.NewAuthService(conf.JWTSecretKey)

	timers := scheduler.New(logger)
	timers.Start(ctx)
	defer timers.Stop()

	roomManager := usecase.NewRoomManager(
		logger,
		usecase.RoomSettings{
			BotJoinAfter:     conf.Game.BotJoinAfter,
			BotCheckInterval: conf.Game.BotCheckInterval,
			BotMoveDelay:     conf.Game.BotMoveDelay,
			BotName:          conf.Game.BotName,
			BotStakeItemID:   conf.Game.BotStakeItemID,
			BotStakeItemName: conf.Game.BotStakeItemName,
		},
		roomRepo,
		inventoryRepo,
		userRepo,
		timers,
		service.NewBotService(),
		usecase.WithMetrics(metrics),
		usecase.WithMatchRecorder(matchRepo),
	)

	hub := websocket.NewHub(logger, roomManager, metrics)
	defer hub.Close()
	roomManager.SetNotifier(hub)

	if err = roomManager.Start(ctx); err != nil {
		return fmt.Errorf("could not start room manager: %w", err)
	}
	defer roomManager.Stop()

	server := rest.New(logger, roomManager, userUseCase, authService, inventoryRepo, matchRepo, hub, metrics)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// openGameStorage returns the room and inventory repositories for the configured backend.
func openGameStorage(ctx context.Context, conf *config.Config) (
	repository.RoomRepository, repository.InventoryRepository, func(), error,
) {
	if conf.RoomStorage == config.RoomStorageMemory {
		return repository.NewMemoryRoomRepository(), repository.NewMemoryInventoryRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeRedis := func() {
		_ = redisStorage.Close()
	}

	return repository.NewRoomRepository(redisStorage.Connection),
		repository.NewInventoryRepository(redisStorage.Connection),
		closeRedis,
		nil
}
