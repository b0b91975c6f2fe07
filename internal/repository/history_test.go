package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/boardgames/internal/entity"
	"github.com/rocketscienceinc/boardgames/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultRepository(t *testing.T) {
	t.Run("Recent returns newest first", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)
		resultRepo := NewResultRepository(db.Connection)

		// Given: three finished games
		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		for i, winner := range []entity.Cell{entity.PlayerX, entity.PlayerTie, entity.PlayerO} {
			result := &entity.GameResult{
				GameID:     string(rune('a' + i)),
				Type:       entity.WithBotType,
				Difficulty: entity.HardDifficulty,
				Winner:     winner,
				Moves:      5 + i,
				FinishedAt: start.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, resultRepo.Save(ctx, result))
		}

		// When: asking for the two latest
		results, err := resultRepo.Recent(ctx, 2)

		// Then: the last two are returned in reverse order
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "c", results[0].GameID)
		assert.Equal(t, entity.PlayerO, results[0].Winner)
		assert.Equal(t, 7, results[0].Moves)
		assert.True(t, results[0].FinishedAt.Equal(start.Add(2*time.Minute)))
		assert.Equal(t, "b", results[1].GameID)
		assert.Equal(t, entity.PlayerTie, results[1].Winner)
	})

	t.Run("Recent on an empty table", func(t *testing.T) {
		ctx, db := suite.NewSQLite(t)
		resultRepo := NewResultRepository(db.Connection)

		results, err := resultRepo.Recent(ctx, 0)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
