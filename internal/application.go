package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/boardgames/internal/bot"
	"github.com/rocketscienceinc/boardgames/internal/config"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/repository"
	"github.com/rocketscienceinc/boardgames/internal/repository/storage"
	"github.com/rocketscienceinc/boardgames/internal/service"
	"github.com/rocketscienceinc/boardgames/internal/usecase"
	"github.com/rocketscienceinc/boardgames/transport/rest"
	"github.com/rocketscienceinc/boardgames/transport/websocket"
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

	playerRepo, gameRepo, closer, err := initStorage(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closer.Close(); err != nil {
			log.Error("could not close game storage", "error", err)
		}
	}()

	history, err := storage.NewSQLiteStorage(conf.History.SQLitePath)
	if err != nil {
		return fmt.Errorf("could not open history storage: %w", err)
	}

	defer func() {
		if err = history.Close(); err != nil {
			log.Error("could not close history storage", "error", err)
		}
	}()

	if err = history.Init(ctx); err != nil {
		return fmt.Errorf("could not init history storage: %w", err)
	}

	gameManager := usecase.NewGameManager(logger, playerRepo, gameRepo,
		repository.NewResultRepository(history.Connection), newSelectors(logger, conf.Bot))
	authService := service.NewAuthService(conf.Auth.JWTSecretKey, conf.Auth.TokenTTL)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameManager, authService)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager, authService)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func initStorage(ctx context.Context, conf *config.Config) (repository.PlayerRepository, repository.GameRepository, io.Closer, error) {
	if conf.Storage == config.StorageMemory {
		return repository.NewMemoryPlayerRepository(), repository.NewMemoryGameRepository(), nopCloser{}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewPlayerRepository(redisStorage.Connection, conf.Redis.TTL),
		repository.NewGameRepository(redisStorage.Connection, conf.Redis.TTL),
		redisStorage, nil
}

func newSelectors(logger *slog.Logger, conf config.Bot) usecase.Selectors {
	opts := []bot.Option{
		bot.WithLogger(logger),
		bot.WithParityAttempts(conf.ParityAttempts),
	}

	if conf.Seed != 0 {
		opts = append(opts, bot.WithSeed(conf.Seed))
	}

	return usecase.Selectors{
		entity.EasyDifficulty: bot.NewRandomSelector(opts...),
		entity.HardDifficulty: bot.NewSelector(opts...),
	}
}
