package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores copies", func(t *testing.T) {
		// Given: a stored game
		gameRepo := NewMemoryGameRepository()
		game := newStoredGame()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps mutating its own instance
		game.History = append(game.History, entity.Move{Row: 0, Col: 0})
		game.Players[0].Mark = entity.PlayerO

		// Then: the stored game is unchanged
		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Len(t, stored.History, 1)
		assert.Equal(t, entity.PlayerX, stored.Players[0].Mark)
	})

	t.Run("Returns ErrGameNotFound after delete", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, newStoredGame()))

		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))

		_, err := gameRepo.GetByID(ctx, "123")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Is safe for concurrent use", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = gameRepo.CreateOrUpdate(ctx, newStoredGame())
				_, _ = gameRepo.GetByID(ctx, "123")
			}()
		}
		wg.Wait()

		_, err := gameRepo.GetByID(ctx, "123")
		assert.NoError(t, err)
	})
}

func TestMemoryPlayerRepository(t *testing.T) {
	ctx := context.Background()
	playerRepo := NewMemoryPlayerRepository()

	_, err := playerRepo.GetByID(ctx, "p1")
	require.ErrorIs(t, err, ErrPlayerNotFound)

	require.NoError(t, playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: "p1", Mark: entity.PlayerX}))

	player, err := playerRepo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlayerX, player.Mark)
}
