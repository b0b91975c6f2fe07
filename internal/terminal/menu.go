package terminal

import (
	"errors"
	"strconv"
	"strings"
)

// Game is a game playable from the menu.
type Game interface {
	GameName() string
	Play() error
}

type Menu struct {
	console *Console
	games   []Game
}

func NewMenu(console *Console, games ...Game) *Menu {
	return &Menu{console: console, games: games}
}

// Run lists the games and plays the selected one until the user types exit.
func (that *Menu) Run() error {
	for {
		that.console.Printf("There are %d games...\n", len(that.games))
		for idx, game := range that.games {
			that.console.Printf("%d: %s\n", idx, game.GameName())
		}

		game, err := that.selectGame()
		if errors.Is(err, errExit) {
			return nil
		}

		if err != nil {
			return err
		}

		if err = game.Play(); err != nil {
			return err
		}
	}
}

var errExit = errors.New("exit")

func (that *Menu) selectGame() (Game, error) {
	for {
		that.console.Println("To exit type 'exit'")

		answer, err := that.console.ReadLine("Which do you want to play? ")
		if err != nil {
			return nil, err
		}

		if strings.EqualFold(answer, "exit") {
			return nil, errExit
		}

		idx, err := strconv.Atoi(answer)
		if err == nil && idx >= 0 && idx < len(that.games) {
			return that.games[idx], nil
		}
	}
}
