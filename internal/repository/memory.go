package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// memoryGame keeps games in process; state is lost on restart.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{games: make(map[string]entity.Game)}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = cloneGame(game)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}

	clone := cloneGame(&game)

	return &clone, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)

	return nil
}

// cloneGame copies the slices so callers never share state with the store.
func cloneGame(game *entity.Game) entity.Game {
	clone := *game
	clone.History = append(entity.History{}, game.History...)

	clone.Players = make([]*entity.Player, 0, len(game.Players))
	for _, player := range game.Players {
		p := *player
		clone.Players = append(clone.Players, &p)
	}

	return clone
}

type memoryPlayer struct {
	mu      sync.RWMutex
	players map[string]entity.Player
}

func NewMemoryPlayerRepository() PlayerRepository {
	return &memoryPlayer{players: make(map[string]entity.Player)}
}

func (that *memoryPlayer) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = *player

	return nil
}

func (that *memoryPlayer) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	player, ok := that.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	return &player, nil
}
