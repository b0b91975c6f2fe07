package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/bot"
	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/internal/pkg"
	"github.com/rocketscienceinc/boardgames/internal/tictactoe"
)

var (
	ErrBotNotFound       = errors.New("bot player not found")
	ErrUnknownGameType   = errors.New("unknown game type")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	Recent(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type moveSelector interface {
	SelectMove(board bot.BoardView, player entity.Cell, history bot.MoveLog) (entity.Move, error)
}

// Selectors maps a difficulty to the bot that plays it.
type Selectors map[string]moveSelector

type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	resultRepo resultRepo
	selectors  Selectors

	// serialises read-modify-write cycles on stored games
	mu  sync.Mutex
	now func() time.Time
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, resultRepo resultRepo, selectors Selectors) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		resultRepo: resultRepo,
		selectors:  selectors,

		now: time.Now,
	}
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// CreateGame seats the player in a new game, or returns the game they are already in.
func (that *GameManager) CreateGame(ctx context.Context, playerID, gameType, difficulty string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		game, err := that.getGameByID(ctx, player.GameID)
		if err == nil {
			return game, nil
		}

		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
	}

	switch gameType {
	case entity.PublicType, entity.PrivateType:
		difficulty = ""
	case entity.WithBotType:
		if difficulty == "" {
			difficulty = entity.HardDifficulty
		}

		if _, ok := that.selectors[difficulty]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameType, gameType)
	}

	game := entity.NewGame(pkg.GenerateGameID(), gameType, difficulty)

	player.GameID = game.ID
	player.Mark = entity.FirstMover
	game.Players = []*entity.Player{player}

	if game.IsWithBot() {
		if err = that.addBotToGame(game, player); err != nil {
			return nil, fmt.Errorf("failed to add bot to game: %w", err)
		}
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "gameID", game.ID, "type", game.Type, "difficulty", game.Difficulty)

	return game, nil
}

func (that *GameManager) JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == game.ID {
		return game, nil
	}

	if len(game.Players) >= 2 {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameIsFull, gameID)
	}

	player.GameID = game.ID
	player.Mark = entity.SecondMover
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	game.Status = entity.StatusOngoing
	game.Players = append(game.Players, player)
	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	return that.getGameByID(ctx, player.GameID)
}

// MakeTurn applies the player's move and, in bot games, the bot's reply.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, move entity.Move) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if err = tictactoe.MakeTurn(game, player.Mark, move); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsWithBot() && game.IsOngoing() {
		if err = that.botTurn(game); err != nil {
			return nil, err
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		that.recordResult(ctx, game)
	}

	return game, nil
}

// ResetGame starts a new round in the player's current game.
func (that *GameManager) ResetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, err
	}

	if game.IsWaiting() {
		return game, apperror.ErrGameIsNotStarted
	}

	tictactoe.Reset(game)

	if game.IsWithBot() {
		if err = that.botTurn(game); err != nil {
			return nil, err
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// LeaveGame ends the game the player is seated in.
func (that *GameManager) LeaveGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.GetGameByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	that.EndGame(ctx, game)

	return game, nil
}

// EndGame deletes the game and frees every human player seated in it.
func (that *GameManager) EndGame(ctx context.Context, game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "EndGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		released := *player
		released.GameID = ""
		released.Mark = entity.EmptyCell
		if err := that.playerRepo.CreateOrUpdate(ctx, &released); err != nil {
			log.Error("failed to update", "player", player.ID, "error", err)
		}
	}

	log.Info("game deleted")
}

// SuggestMove asks the hard bot for a move on an arbitrary board.
func (that *GameManager) SuggestMove(board bot.BoardView, player entity.Cell, history bot.MoveLog) (entity.Move, error) {
	selector, ok := that.selectors[entity.HardDifficulty]
	if !ok {
		return entity.Move{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, entity.HardDifficulty)
	}

	move, err := selector.SelectMove(board, player, history)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to select move: %w", err)
	}

	return move, nil
}

func (that *GameManager) RecentResults(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	results, err := that.resultRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	return results, nil
}

func (that *GameManager) addBotToGame(game *entity.Game, player *entity.Player) error {
	botPlayer := entity.NewBotPlayer(game.ID, entity.EmptyCell)

	player.Mark, botPlayer.Mark = game.GetRandomMarks()
	game.Players = append(game.Players, botPlayer)
	game.Status = entity.StatusOngoing

	return that.botTurn(game)
}

// botTurn lets the bot move when it holds the turn; otherwise it is a no-op.
func (that *GameManager) botTurn(game *entity.Game) error {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	if !game.IsOngoing() || game.Turn != botPlayer.Mark {
		return nil
	}

	selector, ok := that.selectors[game.Difficulty]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, game.Difficulty)
	}

	move, err := selector.SelectMove(&game.Board, botPlayer.Mark, game.History)
	if err != nil {
		return fmt.Errorf("bot failed to select move: %w", err)
	}

	if err = tictactoe.MakeTurn(game, botPlayer.Mark, move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *GameManager) recordResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResult", "gameID", game.ID)

	if err := that.resultRepo.Save(ctx, entity.NewGameResult(game, that.now())); err != nil {
		log.Error("failed to save game result", "error", err)
		return
	}

	log.Info("game finished", "winner", game.Winner, "moves", game.History.MoveCount())
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
