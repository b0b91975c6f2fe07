package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames/internal/bot"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/repository"
	"github.com/rocketscienceinc/boardgames/internal/service"
	"github.com/rocketscienceinc/boardgames/internal/usecase"
	"github.com/rocketscienceinc/boardgames/testing/suite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	_, history := suite.NewSQLite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manager := usecase.NewGameManager(logger,
		repository.NewMemoryPlayerRepository(),
		repository.NewMemoryGameRepository(),
		repository.NewResultRepository(history.Connection),
		usecase.Selectors{
			entity.EasyDifficulty: bot.NewRandomSelector(bot.WithSeed(1)),
			entity.HardDifficulty: bot.NewSelector(bot.WithSeed(1)),
		},
	)

	srv := httptest.NewServer(New(logger, manager, service.NewAuthService("secret", time.Hour)).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, payload)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var body T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body
}

func newPlayer(t *testing.T, srv *httptest.Server) playerResponse {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/players", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return decodeBody[playerResponse](t, resp)
}

func TestPingAndGameName(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/ping", "", nil)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))

	resp = doJSON(t, http.MethodGet, srv.URL+"/game_name", "", nil)
	assert.Equal(t, map[string]string{"name": "Tic-Tac-Toe"}, decodeBody[map[string]string](t, resp))
}

func TestBotMove(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Returns the winning cell", func(t *testing.T) {
		// Given: O holds two cells of the middle row
		req := botMoveRequest{
			Board: entity.Board{
				{entity.PlayerX, entity.PlayerX, entity.EmptyCell},
				{entity.PlayerO, entity.PlayerO, entity.EmptyCell},
				{entity.PlayerX, entity.EmptyCell, entity.EmptyCell},
			},
			Player: entity.PlayerO,
			History: entity.History{
				{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 0},
			},
		}

		// When: asking the bot
		resp := doJSON(t, http.MethodPost, srv.URL+"/bot/move", "", req)

		// Then: it completes the row
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, decodeBody[entity.Move](t, resp))
	})

	t.Run("Rejects illegal cell values", func(t *testing.T) {
		req := map[string]any{
			"board":  [][]string{{"Z", "", ""}, {"", "", ""}, {"", "", ""}},
			"player": "O",
		}

		resp := doJSON(t, http.MethodPost, srv.URL+"/bot/move", "", req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Rejects a terminal board", func(t *testing.T) {
		req := botMoveRequest{
			Board: entity.Board{
				{entity.PlayerX, entity.PlayerX, entity.PlayerX},
				{entity.PlayerO, entity.PlayerO, entity.EmptyCell},
				{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
			},
			Player: entity.PlayerO,
		}

		resp := doJSON(t, http.MethodPost, srv.URL+"/bot/move", "", req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestGames_RequireAuth(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/games/current", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/games/current", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGames_PrivateGameFlow(t *testing.T) {
	srv := newTestServer(t)

	// Given: two players
	host := newPlayer(t, srv)
	guest := newPlayer(t, srv)

	// When: the host opens a private game and the guest joins it
	resp := doJSON(t, http.MethodPost, srv.URL+"/games", host.Token, createGameRequest{Type: entity.PrivateType})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	game := decodeBody[entity.Game](t, resp)
	assert.Equal(t, entity.StatusWaiting, game.Status)

	resp = doJSON(t, http.MethodPost, srv.URL+"/games/join", guest.Token, joinGameRequest{GameID: game.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Then: the guest cannot move first
	resp = doJSON(t, http.MethodPost, srv.URL+"/games/turn", guest.Token, entity.Center)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Then: the host can, and the move is visible to the guest
	resp = doJSON(t, http.MethodPost, srv.URL+"/games/turn", host.Token, entity.Center)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/games/current", guest.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current := decodeBody[entity.Game](t, resp)
	assert.Equal(t, entity.PlayerX, current.Board.CellValue(1, 1))
	assert.Equal(t, entity.PlayerO, current.Turn)

	// Then: out of range coordinates are a bad request
	resp = doJSON(t, http.MethodPost, srv.URL+"/games/turn", guest.Token, entity.Move{Row: 5, Col: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// When: the host leaves
	resp = doJSON(t, http.MethodDelete, srv.URL+"/games/current", host.Token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Then: nobody has a game any more
	resp = doJSON(t, http.MethodGet, srv.URL+"/games/current", guest.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGames_BotGameIsRecorded(t *testing.T) {
	srv := newTestServer(t)
	player := newPlayer(t, srv)

	// Given: a game against the easy bot
	resp := doJSON(t, http.MethodPost, srv.URL+"/games", player.Token,
		createGameRequest{Type: entity.WithBotType, Difficulty: entity.EasyDifficulty})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	game := decodeBody[entity.Game](t, resp)

	// When: the player keeps taking the first free cell until the game ends
	for !game.IsFinished() {
		move := game.Board.EmptyCells()[0]

		resp = doJSON(t, http.MethodPost, srv.URL+"/games/turn", player.Token, move)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		game = decodeBody[entity.Game](t, resp)
	}

	// Then: the result is listed
	resp = doJSON(t, http.MethodGet, srv.URL+"/games/results?limit=5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	results := decodeBody[[]*entity.GameResult](t, resp)
	require.Len(t, results, 1)
	assert.Equal(t, game.ID, results[0].GameID)
	assert.Equal(t, game.Winner, results[0].Winner)

	// Then: the game can be reset for another round
	resp = doJSON(t, http.MethodPost, srv.URL+"/games/reset", player.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reset := decodeBody[entity.Game](t, resp)
	assert.True(t, reset.IsOngoing())
}

func TestGames_UnknownType(t *testing.T) {
	srv := newTestServer(t)
	player := newPlayer(t, srv)

	resp := doJSON(t, http.MethodPost, srv.URL+"/games", player.Token, createGameRequest{Type: "league"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
