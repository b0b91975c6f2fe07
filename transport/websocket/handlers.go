package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/usecase"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameJoin  = "game:join"
	actionGameTurn  = "game:turn"
	actionGameReset = "game:reset"
	actionGameLeave = "game:leave"
)

const (
	gameStatusOpponentOut = "opponent_out"
	gameStatusLeave       = "leave"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.Player != nil && payloadReq.Player.ID != "" && payloadReq.Token == "" {
		return that.sendErrorResponse(c, msg.Action, "Token is required")
	}

	var playerID string
	if payloadReq.Token != "" {
		playerID, err = that.auth.ParseToken(payloadReq.Token)
		if err != nil {
			log.Warn("rejected token", "error", err)
			return that.sendErrorResponse(c, msg.Action, "invalid token")
		}
	}

	player, err := that.games.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return that.sendErrorResponse(c, msg.Action, clientError(err))
	}

	token, err := that.auth.GenerateToken(player.ID)
	if err != nil {
		log.Error("failed to generate token", "playerID", player.ID, "error", err)
		return that.sendErrorResponse(c, msg.Action, "internal server error")
	}

	that.register(player.ID, c)

	payloadResp := Payload{Player: player, Token: token}

	if player.GameID != "" {
		game, err := that.games.GetGameByPlayerID(ctx, player.ID)
		if err != nil && !errors.Is(err, apperror.ErrNoActiveGames) {
			log.Error("failed to get game", "gameID", player.GameID, "error", err)
			return that.sendErrorResponse(c, msg.Action, "failed to get the game")
		}

		if game != nil {
			payloadResp.Game = maskGameDetails(game)
		}
	}

	if err = c.send(msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := that.requirePlayer(msg, c)
	if err != nil || payloadReq == nil {
		return err
	}

	if payloadReq.Game == nil {
		return that.sendErrorResponse(c, msg.Action, "Game is required")
	}

	game, err := that.games.CreateGame(ctx, payloadReq.Player.ID, payloadReq.Game.Type, payloadReq.Game.Difficulty)
	if err != nil {
		log.Error("failed to create game", "type", payloadReq.Game.Type, "error", err)
		return that.sendErrorResponse(c, msg.Action, clientError(err))
	}

	that.broadcast(msg.Action, game, "")

	log.Info("game created", "gameID", game.ID)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := that.requirePlayer(msg, c)
	if err != nil || payloadReq == nil {
		return err
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		return that.sendErrorResponse(c, msg.Action, "Game is required")
	}

	game, err := that.games.JoinGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "gameID", payloadReq.Game.ID, "error", err)
		return that.sendErrorResponse(c, msg.Action, clientError(err))
	}

	that.broadcast(msg.Action, game, "")

	log.Info("player joined game", "gameID", game.ID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := that.requirePlayer(msg, c)
	if err != nil || payloadReq == nil {
		return err
	}

	if payloadReq.Move == nil {
		return that.sendErrorResponse(c, msg.Action, "Move is required")
	}

	game, err := that.games.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Move)
	if err != nil {
		log.Warn("failed to make turn", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(c, msg.Action, clientError(err))
	}

	that.broadcast(msg.Action, game, "")

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameReset")

	payloadReq, err := that.requirePlayer(msg, c)
	if err != nil || payloadReq == nil {
		return err
	}

	game, err := that.games.ResetGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Warn("failed to reset game", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(c, msg.Action, clientError(err))
	}

	that.broadcast(msg.Action, game, "")

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := that.requirePlayer(msg, c)
	if err != nil || payloadReq == nil {
		return err
	}

	game, err := that.games.LeaveGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Warn("failed to leave game", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(c, msg.Action, clientError(err))
	}

	that.broadcast(msg.Action, game, gameStatusLeave)

	log.Info("player left", "gameID", game.ID)

	return nil
}

// handleOpponentOut ends the game of a player who did not come back and tells the others.
func (that *Server) handleOpponentOut(ctx context.Context, playerID string) {
	log := that.logger.With("method", "handleOpponentOut", "playerID", playerID)

	game, err := that.games.LeaveGame(ctx, playerID)
	if errors.Is(err, apperror.ErrNoActiveGames) || errors.Is(err, apperror.ErrNotFound) {
		return
	}

	if err != nil {
		log.Error("failed to end game", "error", err)
		return
	}

	that.broadcast(actionGameLeave, game, gameStatusOpponentOut)

	log.Info("handled opponent out", "gameID", game.ID)
}

// broadcast sends the game to every connected human player, overriding the status when set.
func (that *Server) broadcast(action string, game *entity.Game, status string) {
	log := that.logger.With("method", "broadcast", "gameID", game.ID)

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		conn, ok := that.connection(player.ID)
		if !ok {
			log.Info("no connection for player", "playerID", player.ID)
			continue
		}

		masked := maskGameDetails(game)
		if status != "" {
			masked.Status = status
		}

		if err := conn.send(action, Payload{Player: player, Game: masked}); err != nil {
			log.Error("failed to send game update", "playerID", player.ID, "error", err)
		}
	}
}

// requirePlayer decodes the payload and fills in the player bound by connect;
// a nil payload means an error was already sent.
func (that *Server) requirePlayer(msg *Message, c *client) (*Payload, error) {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return nil, that.sendErrorResponse(c, msg.Action, err.Error())
	}

	that.connectionsMutex.RLock()
	playerID := c.playerID
	that.connectionsMutex.RUnlock()

	if playerID == "" {
		return nil, that.sendErrorResponse(c, msg.Action, "Player is required")
	}

	if payloadReq.Player != nil && payloadReq.Player.ID != "" && payloadReq.Player.ID != playerID {
		that.logger.Warn("player mismatch", "method", "requirePlayer", "playerID", playerID, "claimed", payloadReq.Player.ID)
		return nil, that.sendErrorResponse(c, msg.Action, "Player does not match the connection")
	}

	payloadReq.Player = &entity.Player{ID: playerID}

	return payloadReq, nil
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string) error {
	if err := c.send(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func decodePayload(msg *Message) (*Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}

	return &payload, nil
}

// clientError hides unexpected failures from the client.
func clientError(err error) string {
	for _, known := range []error{
		apperror.ErrNotFound,
		apperror.ErrNoActiveGames,
		apperror.ErrNotYourTurn,
		apperror.ErrCellOccupied,
		apperror.ErrInvalidCell,
		apperror.ErrGameFinished,
		apperror.ErrGameIsNotStarted,
		apperror.ErrGameIsFull,
		apperror.ErrPreconditionViolation,
		usecase.ErrUnknownGameType,
		usecase.ErrUnknownDifficulty,
	} {
		if errors.Is(err, known) {
			return err.Error()
		}
	}

	return "internal server error"
}
