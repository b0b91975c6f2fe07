package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

const (
	EasyDifficulty = "easy"
	HardDifficulty = "hard"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID         string    `json:"id"`
	Board      Board     `json:"board"`
	History    History   `json:"history"`
	Winner     Cell      `json:"winner"`
	Status     string    `json:"status"`
	Turn       Cell      `json:"player_turn"`
	Players    []*Player `json:"players,omitempty"`
	Type       string    `json:"type,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
}

func NewGame(id, gameType, difficulty string) *Game {
	return &Game{
		ID:         id,
		History:    History{},
		Turn:       FirstMover,
		Status:     StatusWaiting,
		Type:       gameType,
		Difficulty: difficulty,
	}
}

// DetermineGameResult returns the winning mark, PlayerTie for a full board, or EmptyCell.
func (that *Game) DetermineGameResult() Cell {
	if winner := that.Board.Winner(); winner != EmptyCell {
		return winner
	}

	// the game will continue until all the squares are full
	if !that.Board.IsFull() {
		return EmptyCell
	}

	return PlayerTie
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// BotPlayer returns the bot seated in the game, if any.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

func (that *Game) GetRandomMarks() (Cell, Cell) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
