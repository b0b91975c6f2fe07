// Package bot picks the next tic-tac-toe move for a computer player.
//
// Selector runs an ordered cascade of strategies (win, block, opening traps,
// parity fallback); the first strategy that yields an empty cell decides the move.
// RandomSelector plays any empty cell and backs the easy difficulty.
package bot

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// DefaultParityAttempts bounds the parity draws, one per cell.
const DefaultParityAttempts = entity.BoardSize * entity.BoardSize

// BoardView is the read-only board access the bot needs.
type BoardView interface {
	CellValue(row, col int) entity.Cell
	IsEmptyCell(row, col int) bool
}

// MoveLog exposes the parts of the move history the bot reads.
type MoveLog interface {
	MoveCount() int
	LastMove() (entity.Move, bool)
}

type settings struct {
	logger         *slog.Logger
	seed           int64
	parityAttempts int
}

// Option configures a Selector or RandomSelector.
type Option func(*settings)

// WithSeed makes the random draws reproducible.
func WithSeed(seed int64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// WithParityAttempts sets how many row-first draws the parity stage tries; non-positive values are ignored.
func WithParityAttempts(attempts int) Option {
	return func(s *settings) {
		if attempts > 0 {
			s.parityAttempts = attempts
		}
	}
}

// WithLogger sets the logger used for stage debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		seed:           time.Now().UnixNano(),
		parityAttempts: DefaultParityAttempts,
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// randomSource serialises access to a non thread-safe *rand.Rand.
type randomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newRandomSource(seed int64) *randomSource {
	return &randomSource{rng: rand.New(rand.NewSource(seed))} //nolint: gosec // game randomness
}

func (that *randomSource) intn(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rng.Intn(n)
}

// pick draws uniformly from cells; false when cells is empty.
func (that *randomSource) pick(cells []entity.Move) (entity.Move, bool) {
	if len(cells) == 0 {
		return entity.Move{}, false
	}

	return cells[that.intn(len(cells))], true
}

type strategy struct {
	name string
	pick func(pos *position) (entity.Move, bool)
}

// Selector is the heuristic bot.
type Selector struct {
	logger         *slog.Logger
	parityAttempts int
	random         *randomSource
	strategies     []strategy
}

// NewSelector builds the heuristic bot with its stages in cascade order.
func NewSelector(opts ...Option) *Selector {
	s := newSettings(opts)

	selector := &Selector{
		logger:         s.logger.With("component", "bot"),
		parityAttempts: s.parityAttempts,
		random:         newRandomSource(s.seed),
	}

	selector.strategies = []strategy{
		{name: "win", pick: selector.takeWin},
		{name: "block", pick: selector.blockOpponent},
		{name: "opening-trap", pick: selector.avoidOpeningTraps},
		{name: "parity", pick: selector.parityFallback},
	}

	return selector
}

// SelectMove returns an empty cell for player to play next.
// The board must not be terminal: a full board or one with a completed line
// yields ErrPreconditionViolation.
func (that *Selector) SelectMove(board BoardView, player entity.Cell, history MoveLog) (entity.Move, error) {
	pos, err := newPosition(board, player, history)
	if err != nil {
		return entity.Move{}, err
	}

	for _, s := range that.strategies {
		if move, ok := s.pick(pos); ok {
			that.logger.Debug("move selected", "stage", s.name, "player", player, "row", move.Row, "col", move.Col)
			return move, nil
		}
	}

	// the parity fallback always finds a cell on a playable board
	return entity.Move{}, fmt.Errorf("%w: no strategy produced a move", apperror.ErrPreconditionViolation)
}

// RandomSelector plays a uniformly random empty cell.
type RandomSelector struct {
	random *randomSource
}

// NewRandomSelector builds the easy bot.
func NewRandomSelector(opts ...Option) *RandomSelector {
	s := newSettings(opts)

	return &RandomSelector{random: newRandomSource(s.seed)}
}

func (that *RandomSelector) SelectMove(board BoardView, player entity.Cell, history MoveLog) (entity.Move, error) {
	pos, err := newPosition(board, player, history)
	if err != nil {
		return entity.Move{}, err
	}

	move, _ := that.random.pick(pos.emptyCells())

	return move, nil
}
