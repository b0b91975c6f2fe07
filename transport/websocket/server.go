package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

const (
	shutdownTimeout  = 5 * time.Second
	reconnectTimeout = 30 * time.Second
)

type gameManager interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	CreateGame(ctx context.Context, playerID, gameType, difficulty string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, move entity.Move) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, playerID string) (*entity.Game, error)
}

type authService interface {
	GenerateToken(playerID string) (string, error)
	ParseToken(token string) (string, error)
}

type handlerFunc func(ctx context.Context, msg *Message, c *client) error

type Server struct {
	logger   *slog.Logger
	games    gameManager
	auth     authService
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[string]*client

	disconnectedMutex  sync.Mutex
	disconnectedTimers map[string]*time.Timer
	reconnectTimeout   time.Duration
}

func New(logger *slog.Logger, games gameManager, auth authService) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		auth:   auth,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers:           make(map[string]handlerFunc),
		connections:        make(map[string]*client),
		disconnectedTimers: make(map[string]*time.Timer),
		reconnectTimeout:   reconnectTimeout,
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameJoin] = server.handleJoinGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionGameLeave] = server.handleGameLeave

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start serves websocket clients until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

func (that *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn)
	defer func() {
		that.handleDisconnect(c)
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established")

	that.handleMessages(context.WithoutCancel(r.Context()), c)
}

// handleMessages processes frames until the client goes away.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				log.Warn("malformed message", "error", err)
				continue
			}

			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("connection closed unexpectedly", "error", err)
			}

			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err := that.sendErrorResponse(c, message.Action, "unknown action"); err != nil {
				log.Error("failed to send error", "error", err)
			}

			continue
		}

		if err := handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// register binds the player to the connection; later actions act as this player only.
func (that *Server) register(playerID string, c *client) {
	that.connectionsMutex.Lock()
	if c.playerID != "" && c.playerID != playerID && that.connections[c.playerID] == c {
		delete(that.connections, c.playerID)
	}
	c.playerID = playerID
	that.connections[playerID] = c
	that.connectionsMutex.Unlock()

	that.disconnectedMutex.Lock()
	if timer, ok := that.disconnectedTimers[playerID]; ok {
		timer.Stop()
		delete(that.disconnectedTimers, playerID)
	}
	that.disconnectedMutex.Unlock()
}

func (that *Server) connection(playerID string) (*client, bool) {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	c, ok := that.connections[playerID]

	return c, ok
}

// handleDisconnect forgets the client and ends its game unless the player reconnects in time.
func (that *Server) handleDisconnect(c *client) {
	log := that.logger.With("method", "handleDisconnect")

	that.connectionsMutex.Lock()
	var playerID string
	for id, conn := range that.connections {
		if conn == c {
			playerID = id
			delete(that.connections, id)
			break
		}
	}
	that.connectionsMutex.Unlock()

	if playerID == "" {
		return
	}

	log.Info("player disconnected", "playerID", playerID)

	that.disconnectedMutex.Lock()
	that.disconnectedTimers[playerID] = time.AfterFunc(that.reconnectTimeout, func() {
		that.disconnectedMutex.Lock()
		delete(that.disconnectedTimers, playerID)
		that.disconnectedMutex.Unlock()

		that.handleOpponentOut(context.Background(), playerID)
	})
	that.disconnectedMutex.Unlock()
}
