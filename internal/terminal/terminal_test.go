package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/boardgames/internal/bot"
	"github.com/rocketscienceinc/boardgames/internal/checkers"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewConsole(strings.NewReader(input), out, false), out
}

func lines(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}

type fakeGame struct {
	plays int
}

func (that *fakeGame) GameName() string { return "Fake" }

func (that *fakeGame) Play() error {
	that.plays++
	return nil
}

func TestConsole_ReadLine(t *testing.T) {
	console, out := newTestConsole("  hello \nlast")

	answer, err := console.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", answer)

	answer, err = console.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", answer)

	_, err = console.ReadLine("> ")
	require.ErrorIs(t, err, ErrInputClosed)

	assert.Equal(t, "> > > ", out.String())
}

func TestMenu_Run(t *testing.T) {
	// Given: a menu with one game
	console, out := newTestConsole(lines("5", "zero", "0", "exit"))
	game := &fakeGame{}

	// When: the user picks an unknown index, garbage, the game and then exits
	err := NewMenu(console, game).Run()

	// Then: the game is played once and the listing is shown
	require.NoError(t, err)
	assert.Equal(t, 1, game.plays)
	assert.Contains(t, out.String(), "There are 1 games...")
	assert.Contains(t, out.String(), "0: Fake")
	assert.Contains(t, out.String(), "To exit type 'exit'")
}

func TestTicTacToe_TwoPlayers(t *testing.T) {
	t.Run("Top row wins", func(t *testing.T) {
		// Given: two players
		console, out := newTestConsole(lines("2", "1", "4", "2", "5", "3"))
		game := NewTicTacToe(console, bot.NewSelector(bot.WithSeed(1)))

		// When: X fills the top row
		require.NoError(t, game.Play())

		// Then: X wins and the board is reset for the next game
		assert.Contains(t, out.String(), "X won the game!")
		assert.Contains(t, out.String(), "Second player's turn.")
		assert.Equal(t, entity.Board{}, game.game.Board)
		assert.True(t, game.game.IsOngoing())
	})

	t.Run("Occupied cell is asked again", func(t *testing.T) {
		console, out := newTestConsole(lines("2", "5", "5", "0", "x", "1", "exit"))
		game := NewTicTacToe(console, bot.NewSelector(bot.WithSeed(1)))

		require.NoError(t, game.Play())

		assert.Contains(t, out.String(), "That space is already taken")
		assert.NotContains(t, out.String(), "won the game")
	})

	t.Run("Draw", func(t *testing.T) {
		console, out := newTestConsole(lines("2", "1", "5", "9", "2", "8", "7", "3", "6", "4"))
		game := NewTicTacToe(console, bot.NewSelector(bot.WithSeed(1)))

		require.NoError(t, game.Play())

		assert.Contains(t, out.String(), "The game ended in a draw")
	})
}

func TestTicTacToe_AgainstBot(t *testing.T) {
	for _, icon := range []string{"X", "O"} {
		t.Run("Human plays "+icon, func(t *testing.T) {
			// Given: one player trying every cell in order
			answers := []string{"1", "x", icon}
			for cell := 1; cell <= 9; cell++ {
				answers = append(answers, string(rune('0'+cell)))
			}

			console, out := newTestConsole(lines(answers...))
			game := NewTicTacToe(console, bot.NewSelector(bot.WithSeed(7)))

			// When: the game is played out
			require.NoError(t, game.Play())

			// Then: it ends with a result
			output := out.String()
			assert.Contains(t, output, "That is not a valid option")
			assert.True(t, strings.Contains(output, "won the game!") || strings.Contains(output, "The game ended in a draw"))
		})
	}
}

func TestTicTacToe_Settings(t *testing.T) {
	t.Run("Icons changed through settings", func(t *testing.T) {
		// Given: the user renames the icons before choosing players
		console, out := newTestConsole(lines(
			"settings", "settings", "colors", "change icons", "AB", "A", "A", "B",
			"2", "1", "4", "2", "5", "3",
		))
		game := NewTicTacToe(console, bot.NewSelector(bot.WithSeed(1)))

		// When: the first player fills the top row
		require.NoError(t, game.Play())

		// Then: the new icons are used everywhere
		output := out.String()
		assert.Contains(t, output, "You can not do that right now.")
		assert.Contains(t, output, `There is no setting "colors"`)
		assert.Contains(t, output, "Please enter a single character for the player icon")
		assert.Contains(t, output, "The players need different icons")
		assert.Contains(t, output, "As plays first")
		assert.Contains(t, output, " A ║ A ║ A")
		assert.Contains(t, output, "A won the game!")
	})

	t.Run("Change icons from the players prompt", func(t *testing.T) {
		console, out := newTestConsole(lines("change icons", "#", "@", "1", "@", "exit"))
		game := NewTicTacToe(console, bot.NewSelector(bot.WithSeed(1)))

		require.NoError(t, game.Play())

		assert.Contains(t, out.String(), "#s plays first, do you want to be # or @?")
	})
}

func TestTicTacToe_InputClosed(t *testing.T) {
	console, _ := newTestConsole(lines("2", "1"))
	game := NewTicTacToe(console, bot.NewSelector(bot.WithSeed(1)))

	err := game.Play()

	assert.ErrorIs(t, err, ErrInputClosed)
	assert.Equal(t, entity.Board{}, game.game.Board)
}

func TestTicTacToe_BoardLabels(t *testing.T) {
	out := &bytes.Buffer{}
	game := NewTicTacToe(NewConsole(strings.NewReader(""), out, true), bot.NewSelector(bot.WithSeed(1)))
	game.game.Board[1][1] = entity.PlayerX

	game.displayBoard()

	assert.Contains(t, out.String(), colorGreen+" 1 "+colorReset)
	assert.Contains(t, out.String(), " X ")
	assert.NotContains(t, out.String(), " 5 ")
	assert.Contains(t, out.String(), "═══╬═══╬═══")
}

func TestCheckers_Play(t *testing.T) {
	t.Run("Moves in one or two answers", func(t *testing.T) {
		// Given: a fresh checkers game
		console, out := newTestConsole(lines("g3 h4", "b6", "a5", "exit"))
		game := NewCheckers(console)

		// When: both players move once and then quit
		require.NoError(t, game.Play())

		// Then: the board with guides was shown and the game was reset
		output := out.String()
		assert.Contains(t, output, "   a    b    c    d    e    f    g    h")
		assert.Contains(t, output, "8║")
		assert.Contains(t, output, "First player's turn.")
		assert.Contains(t, output, "Second player's turn.")
		assert.Equal(t, checkers.NewBoard(), game.game.Board)
	})

	t.Run("Invalid entries are explained", func(t *testing.T) {
		console, out := newTestConsole(lines("z9", "g3 h5", "a3 a4 a5", "b6 a5", "exit"))
		game := NewCheckers(console)

		require.NoError(t, game.Play())

		output := out.String()
		assert.Contains(t, output, "Invalid entry")
		assert.Contains(t, output, "That space is out of bounds!")
		assert.Contains(t, output, "You do not have a piece there!")
	})

	t.Run("Capturing the last piece ends the game", func(t *testing.T) {
		// Given: one piece each, player one can jump
		console, out := newTestConsole(lines("a3 c5"))
		game := NewCheckers(console)

		var board checkers.Board
		board[5][0] = checkers.PlayerOne
		board[4][1] = checkers.PlayerTwo
		game.game.Board = board

		// When: player one jumps
		require.NoError(t, game.Play())

		// Then: the game is over
		assert.Contains(t, out.String(), "Game over!")
	})
}
