package checkers

import (
	"fmt"
	"strings"
)

// ParseSquare converts input like "g3" (column letter, row number) into a position.
func ParseSquare(input string) (Position, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if len(input) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, input)
	}

	col, row := input[0], input[1]
	if col < 'a' || col > 'h' || row < '1' || row > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, input)
	}

	return Position{Row: BoardSize - int(row-'0'), Col: int(col - 'a')}, nil
}

// ParseMove converts a full move like "g3 h4".
func ParseMove(input string) (Position, Position, error) {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		return Position{}, Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, input)
	}

	from, err := ParseSquare(fields[0])
	if err != nil {
		return Position{}, Position{}, err
	}

	to, err := ParseSquare(fields[1])
	if err != nil {
		return Position{}, Position{}, err
	}

	return from, to, nil
}
