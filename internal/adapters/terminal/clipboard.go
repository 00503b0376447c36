package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/bnema/contentkit-cli/internal/ports"
)

// Clipboard copies text through the OSC 52 escape sequence, which most terminal emulators
// forward to the system clipboard, including over SSH.
type Clipboard struct {
	out    io.Writer
	getenv func(string) string
}

var _ ports.Clipboard = (*Clipboard)(nil)

func NewClipboard(out io.Writer) *Clipboard {
	return &Clipboard{out: out, getenv: os.Getenv}
}

func (c *Clipboard) Copy(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.out == nil {
		return errors.New("clipboard output is not configured")
	}

	sequence := osc52.New(text)
	switch {
	case c.getenv("TMUX") != "":
		sequence = sequence.Tmux()
	case strings.HasPrefix(c.getenv("TERM"), "screen"):
		sequence = sequence.Screen()
	}

	if _, err := sequence.WriteTo(c.out); err != nil {
		return fmt.Errorf("write clipboard sequence: %w", err)
	}

	return nil
}
