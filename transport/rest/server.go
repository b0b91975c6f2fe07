package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/boardgames/internal/bot"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

type gameManager interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	CreateGame(ctx context.Context, playerID, gameType, difficulty string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, move entity.Move) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)
	SuggestMove(board bot.BoardView, player entity.Cell, history bot.MoveLog) (entity.Move, error)
	RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type authService interface {
	GenerateToken(playerID string) (string, error)
	ParseToken(token string) (string, error)
}

type Server struct {
	logger *slog.Logger
	router chi.Router

	games gameManager
	auth  authService
}

func New(logger *slog.Logger, games gameManager, auth authService) *Server {
	that := &Server{
		logger: logger.With("component", "rest"),
		router: chi.NewRouter(),
		games:  games,
		auth:   auth,
	}

	that.router.Use(middleware.RequestID)
	that.router.Use(middleware.RealIP)
	that.router.Use(middleware.Recoverer)
	that.router.Use(middleware.Timeout(requestTimeout))
	that.router.Use(jsonContentType)

	that.router.Get("/ping", that.ping)
	that.router.Get("/game_name", that.gameName)
	that.router.Post("/bot/move", that.botMove)
	that.router.Post("/players", that.createPlayer)
	that.router.Get("/games/results", that.recentResults)

	that.router.Group(func(r chi.Router) {
		r.Use(that.requireAuth)

		r.Post("/games", that.createGame)
		r.Post("/games/join", that.joinGame)
		r.Get("/games/current", that.currentGame)
		r.Delete("/games/current", that.leaveGame)
		r.Post("/games/turn", that.makeTurn)
		r.Post("/games/reset", that.resetGame)
	})

	return that
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
