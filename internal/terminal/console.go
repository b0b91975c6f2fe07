// Package terminal runs the games interactively on a text console.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	colorBlue  = "\033[1;34m"
	colorGreen = "\033[1;32m"
	colorReset = "\033[0m"
)

var ErrInputClosed = errors.New("input closed")

// Console reads answers line by line and writes prompts and boards.
type Console struct {
	reader *bufio.Reader
	out    io.Writer
	color  bool
}

func NewConsole(in io.Reader, out io.Writer, color bool) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
		color:  color,
	}
}

func (that *Console) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.out, format, args...)
}

func (that *Console) Println(args ...any) {
	_, _ = fmt.Fprintln(that.out, args...)
}

// ReadLine prints the prompt and returns the trimmed answer.
func (that *Console) ReadLine(prompt string) (string, error) {
	that.Printf("%s", prompt)

	line, err := that.reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		return "", ErrInputClosed
	default:
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (that *Console) paint(color, text string) string {
	if !that.color {
		return text
	}

	return color + text + colorReset
}
