package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/boardgames/internal/entity"
)

const defaultResultsLimit = 20

type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	Recent(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type dbResult struct {
	conn *sql.DB
}

// NewResultRepository expects the schema created by storage.SQLiteStorage.Init.
func NewResultRepository(conn *sql.DB) ResultRepository {
	return &dbResult{conn: conn}
}

func (that *dbResult) Save(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT INTO game_results (game_id, type, difficulty, winner, moves, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.GameID, result.Type, result.Difficulty, string(result.Winner), result.Moves, result.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save game result: %w", err)
	}

	return nil
}

// Recent returns the latest results, newest first.
func (that *dbResult) Recent(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	if limit <= 0 {
		limit = defaultResultsLimit
	}

	query := `SELECT game_id, type, difficulty, winner, moves, finished_at
		FROM game_results ORDER BY finished_at DESC, id DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer rows.Close()

	results := make([]*entity.GameResult, 0, limit)
	for rows.Next() {
		var (
			result     entity.GameResult
			winner     string
			finishedAt time.Time
		)

		if err = rows.Scan(&result.GameID, &result.Type, &result.Difficulty, &winner, &result.Moves, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}

		result.Winner = entity.Cell(winner)
		result.FinishedAt = finishedAt
		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game results: %w", err)
	}

	return results, nil
}
