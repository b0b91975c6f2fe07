package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/tictactoe"
)

type botMoveRequest struct {
	Board   entity.Board   `json:"board"`
	Player  entity.Cell    `json:"player"`
	History entity.History `json:"history"`
}

type playerResponse struct {
	Player *entity.Player `json:"player"`
	Token  string         `json:"token"`
}

type createGameRequest struct {
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
}

type joinGameRequest struct {
	GameID string `json:"game_id"`
}

func (that *Server) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Server) gameName(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"name": tictactoe.GameName()})
}

// botMove answers with the bot's move for the posted position without touching stored games.
func (that *Server) botMove(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "botMove")

	var req botMoveRequest
	if err := decode(r, &req); err != nil {
		that.sendError(w, log, err)
		return
	}

	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			if value := req.Board[row][col]; !value.Valid() {
				that.sendError(w, log, fmt.Errorf("%w: %q at (%d, %d)", apperror.ErrInvalidCellValue, value, row, col))
				return
			}
		}
	}

	move, err := that.games.SuggestMove(&req.Board, req.Player, req.History)
	if err != nil {
		that.sendError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, move)
}

func (that *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "createPlayer")

	player, err := that.games.GetOrCreatePlayer(r.Context(), "")
	if err != nil {
		that.sendError(w, log, err)
		return
	}

	token, err := that.auth.GenerateToken(player.ID)
	if err != nil {
		that.sendError(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, playerResponse{Player: player, Token: token})
}

func (that *Server) createGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "createGame")

	var req createGameRequest
	if err := decode(r, &req); err != nil {
		that.sendError(w, log, err)
		return
	}

	game, err := that.games.CreateGame(r.Context(), currentPlayerID(r), req.Type, req.Difficulty)
	if err != nil {
		that.sendError(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *Server) joinGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "joinGame")

	var req joinGameRequest
	if err := decode(r, &req); err != nil {
		that.sendError(w, log, err)
		return
	}

	game, err := that.games.JoinGame(r.Context(), req.GameID, currentPlayerID(r))
	if err != nil {
		that.sendError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) currentGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGameByPlayerID(r.Context(), currentPlayerID(r))
	if err != nil {
		that.sendError(w, that.logger.With("method", "currentGame"), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) leaveGame(w http.ResponseWriter, r *http.Request) {
	if _, err := that.games.LeaveGame(r.Context(), currentPlayerID(r)); err != nil {
		that.sendError(w, that.logger.With("method", "leaveGame"), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) makeTurn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "makeTurn")

	var move entity.Move
	if err := decode(r, &move); err != nil {
		that.sendError(w, log, err)
		return
	}

	game, err := that.games.MakeTurn(r.Context(), currentPlayerID(r), move)
	if err != nil {
		that.sendError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) resetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.ResetGame(r.Context(), currentPlayerID(r))
	if err != nil {
		that.sendError(w, that.logger.With("method", "resetGame"), err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) recentResults(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "recentResults")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			that.sendError(w, log, fmt.Errorf("%w: limit %q", errBadRequestBody, raw))
			return
		}
		limit = parsed
	}

	results, err := that.games.RecentResults(r.Context(), limit)
	if err != nil {
		that.sendError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func decode(r *http.Request, target any) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: %w", errBadRequestBody, err)
	}

	return nil
}
