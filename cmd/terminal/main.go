package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rocketscienceinc/boardgames/internal/bot"
	"github.com/rocketscienceinc/boardgames/internal/config"
	"github.com/rocketscienceinc/boardgames/internal/terminal"
)

func main() {
	conf, err := config.LoadTerminal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := []bot.Option{bot.WithParityAttempts(conf.ParityAttempts)}
	if conf.BotSeed != 0 {
		opts = append(opts, bot.WithSeed(conf.BotSeed))
	}

	console := terminal.NewConsole(os.Stdin, os.Stdout, !conf.NoColor)
	menu := terminal.NewMenu(console,
		terminal.NewTicTacToe(console, bot.NewSelector(opts...)),
		terminal.NewCheckers(console),
	)

	if err = menu.Run(); err != nil && !errors.Is(err, terminal.ErrInputClosed) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
