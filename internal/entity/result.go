package entity

import "time"

// GameResult is the summary kept for a finished round.
type GameResult struct {
	GameID     string    `json:"game_id"`
	Type       string    `json:"type"`
	Difficulty string    `json:"difficulty,omitempty"`
	Winner     Cell      `json:"winner"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewGameResult(game *Game, finishedAt time.Time) *GameResult {
	return &GameResult{
		GameID:     game.ID,
		Type:       game.Type,
		Difficulty: game.Difficulty,
		Winner:     game.Winner,
		Moves:      game.History.MoveCount(),
		FinishedAt: finishedAt,
	}
}
