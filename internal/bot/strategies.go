package bot

import (
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

var (
	middleColumn = [3]entity.Move{{Row: 0, Col: 1}, entity.Center, {Row: 2, Col: 1}}
	middleRow    = [3]entity.Move{{Row: 1, Col: 0}, entity.Center, {Row: 1, Col: 2}}
)

func (that *Selector) takeWin(pos *position) (entity.Move, bool) {
	return pos.completingCell(pos.player)
}

func (that *Selector) blockOpponent(pos *position) (entity.Move, bool) {
	return pos.completingCell(pos.opponent)
}

// avoidOpeningTraps answers the known forcing openings when the bot moves second.
func (that *Selector) avoidOpeningTraps(pos *position) (entity.Move, bool) {
	if pos.player != entity.SecondMover {
		return entity.Move{}, false
	}

	switch pos.history.MoveCount() {
	case 1:
		return that.answerCenterOpening(pos)
	case 3:
		return that.answerThirdMove(pos)
	default:
		return entity.Move{}, false
	}
}

// answerCenterOpening takes a corner against a center opening; an edge loses.
func (that *Selector) answerCenterOpening(pos *position) (entity.Move, bool) {
	if pos.cell(entity.Center) != pos.opponent {
		return entity.Move{}, false
	}

	return that.random.pick(pos.emptyAmong(entity.Corners[:]))
}

func (that *Selector) answerThirdMove(pos *position) (entity.Move, bool) {
	switch pos.cell(entity.Center) {
	case pos.opponent:
		// opponent holds the center and one end of a diagonal we hold the other end of
		if pos.isSplit(entity.Move{Row: 0, Col: 0}, entity.Move{Row: 2, Col: 2}) ||
			pos.isSplit(entity.Move{Row: 0, Col: 2}, entity.Move{Row: 2, Col: 0}) {
			return that.random.pick(pos.emptyAmong(entity.Corners[:]))
		}
	case pos.player:
		return that.escapeSplitAxis(pos)
	}

	return entity.Move{}, false
}

// escapeSplitAxis handles the bot holding the center while the middle column
// or middle row is split three ways: the axis ends are the cells that set up
// the opponent's fork.
func (that *Selector) escapeSplitAxis(pos *position) (entity.Move, bool) {
	var traps []entity.Move

	switch {
	case pos.allDistinct(middleColumn[0], middleColumn[1], middleColumn[2]):
		traps = []entity.Move{middleColumn[0], middleColumn[2]}
	case pos.allDistinct(middleRow[0], middleRow[1], middleRow[2]):
		traps = []entity.Move{middleRow[0], middleRow[2]}
	default:
		return entity.Move{}, false
	}

	// two adjacent edges around a shared corner: the far corner and the free
	// edges all lose, only the remaining corners hold
	if pivot, ok := opponentPivot(pos); ok {
		opposite := entity.Move{Row: entity.BoardSize - 1 - pivot.Row, Col: entity.BoardSize - 1 - pivot.Col}

		corners := make([]entity.Move, 0, len(entity.Corners))
		for _, corner := range pos.emptyAmong(entity.Corners[:]) {
			if corner != opposite {
				corners = append(corners, corner)
			}
		}

		if move, ok := that.random.pick(corners); ok {
			return move, true
		}
	}

	return that.random.pick(pos.emptyExcept(traps...))
}

// opponentPivot returns the corner shared by the opponent's two edge
// midpoints when it holds exactly one top/bottom edge and one side edge.
func opponentPivot(pos *position) (entity.Move, bool) {
	var topBottom, sides []entity.Move

	for _, edge := range entity.Edges {
		if pos.cell(edge) != pos.opponent {
			continue
		}

		if edge.Col == 1 {
			topBottom = append(topBottom, edge)
		} else {
			sides = append(sides, edge)
		}
	}

	if len(topBottom) != 1 || len(sides) != 1 {
		return entity.Move{}, false
	}

	return entity.Move{Row: topBottom[0].Row, Col: sides[0].Col}, true
}

// parityFallback mirrors the opponent's last move class: after a corner or
// the center it prefers edge midpoints, after an edge it prefers corners and
// the center.
func (that *Selector) parityFallback(pos *position) (entity.Move, bool) {
	if pos.history.MoveCount() == 1 && pos.isEmpty(entity.Center) {
		return entity.Center, true
	}

	if last, ok := pos.history.LastMove(); ok {
		for range that.parityAttempts {
			if candidate := that.drawParityCell(last); pos.isEmpty(candidate) {
				return candidate, true
			}
		}
	}

	return that.random.pick(pos.emptyCells())
}

func (that *Selector) drawParityCell(last entity.Move) entity.Move {
	row := that.random.intn(entity.BoardSize)
	side := 2 * that.random.intn(2)

	if last.Parity() == 0 {
		if row != 1 {
			return entity.Move{Row: row, Col: 1}
		}

		return entity.Move{Row: row, Col: side}
	}

	if row == 1 {
		return entity.Center
	}

	return entity.Move{Row: row, Col: side}
}
