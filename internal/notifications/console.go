package notifications

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Console writes notifications to a terminal-style writer, coloured when the
// destination is a tty.
type Console struct {
	mu     sync.Mutex
	writer io.Writer
	colour bool
}

// NewConsole builds a Console writing to stderr.
func NewConsole() *Console {
	return &Console{
		writer: os.Stderr,
		colour: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// NewConsoleWriter builds a Console writing to w without colour. Used in
// tests and when output is redirected.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{writer: w}
}

func (c *Console) Success(_ context.Context, title, message string) error {
	return c.write(text.FgGreen, "✓", title, message)
}

func (c *Console) Info(_ context.Context, title, message string) error {
	return c.write(text.FgCyan, "•", title, message)
}

func (c *Console) Error(_ context.Context, title, message string) error {
	return c.write(text.FgRed, "✗", title, message)
}

func (c *Console) write(colour text.Color, marker, title, message string) error {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)

	line := marker
	if title != "" {
		line += " " + title
	}
	if message != "" {
		line += ": " + message
	}
	if c.colour {
		line = colour.Sprint(line)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.writer, line)
	return err
}
