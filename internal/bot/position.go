package bot

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// position is the board as seen by the acting player.
type position struct {
	board    BoardView
	player   entity.Cell
	opponent entity.Cell
	history  MoveLog
}

func newPosition(board BoardView, player entity.Cell, history MoveLog) (*position, error) {
	if !player.IsPlayer() {
		return nil, fmt.Errorf("%w: acting player %q", apperror.ErrInvalidCellValue, player)
	}

	if history == nil {
		history = entity.History{}
	}

	pos := &position{
		board:    board,
		player:   player,
		opponent: player.Opponent(),
		history:  history,
	}

	if len(pos.emptyCells()) == 0 {
		return nil, fmt.Errorf("%w: board is full", apperror.ErrPreconditionViolation)
	}

	for _, line := range entity.WinLines {
		if owner := pos.cell(line[0]); owner != entity.EmptyCell && owner == pos.cell(line[1]) && owner == pos.cell(line[2]) {
			return nil, fmt.Errorf("%w: %s already completed a line", apperror.ErrPreconditionViolation, owner)
		}
	}

	return pos, nil
}

func (that *position) cell(move entity.Move) entity.Cell {
	return that.board.CellValue(move.Row, move.Col)
}

func (that *position) isEmpty(move entity.Move) bool {
	return that.board.IsEmptyCell(move.Row, move.Col)
}

func (that *position) emptyCells() []entity.Move {
	cells := make([]entity.Move, 0, entity.BoardSize*entity.BoardSize)
	for index := range entity.BoardSize * entity.BoardSize {
		if move := entity.MoveFromIndex(index); that.isEmpty(move) {
			cells = append(cells, move)
		}
	}

	return cells
}

// emptyAmong keeps the empty cells of candidates, preserving order.
func (that *position) emptyAmong(candidates []entity.Move) []entity.Move {
	cells := make([]entity.Move, 0, len(candidates))
	for _, move := range candidates {
		if that.isEmpty(move) {
			cells = append(cells, move)
		}
	}

	return cells
}

// emptyExcept returns the empty cells that are not listed in excluded.
func (that *position) emptyExcept(excluded ...entity.Move) []entity.Move {
	cells := make([]entity.Move, 0, entity.BoardSize*entity.BoardSize)
	for _, move := range that.emptyCells() {
		if !slices.Contains(excluded, move) {
			cells = append(cells, move)
		}
	}

	return cells
}

// isSplit reports whether both cells are taken by different marks.
func (that *position) isSplit(a, b entity.Move) bool {
	first, second := that.cell(a), that.cell(b)

	return first != entity.EmptyCell && second != entity.EmptyCell && first != second
}

// allDistinct reports whether the three cells hold pairwise different values.
func (that *position) allDistinct(a, b, c entity.Move) bool {
	first, second, third := that.cell(a), that.cell(b), that.cell(c)

	return first != second && second != third && third != first
}

// completingCell finds the first line, in declaration order, where mark
// holds two cells and the third is empty.
func (that *position) completingCell(mark entity.Cell) (entity.Move, bool) {
	for _, line := range entity.WinLines {
		var (
			owned int
			empty []entity.Move
		)

		for _, move := range line {
			switch that.cell(move) {
			case mark:
				owned++
			case entity.EmptyCell:
				empty = append(empty, move)
			}
		}

		if owned == 2 && len(empty) == 1 {
			return empty[0], true
		}
	}

	return entity.Move{}, false
}
