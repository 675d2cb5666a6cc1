package view

import (
	"bufio"
	"context"

	"github.com/logrusorgru/aurora"

	"lifeterm/src/terminal"
)

// ANSI draws with raw escape sequences on the process terminal.
type ANSI struct {
	t      *terminal.Terminal
	width  int
	height int
	bold   bool
}

// OpenANSI enters raw mode and samples the terminal size.
func OpenANSI() (Surface, error) {
	t, err := terminal.Open()
	if err != nil {
		return nil, fatal("open", err)
	}
	w, h, err := t.Size()
	if err != nil {
		t.Close()
		return nil, fatal("size", err)
	}
	return &ANSI{t: t, width: w, height: h}, nil
}

func (a *ANSI) Size() (int, int) {
	return a.width, a.height
}

func (a *ANSI) Draw(ins []Instruction) error {
	a.bold = encode(a.t.Writer(), ins, a.bold)
	return fatal("write", a.t.Flush())
}

func (a *ANSI) ReadKey(ctx context.Context) (byte, error) {
	b, err := a.t.ReadKey(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fatal("read", err)
	}
	return b, nil
}

func (a *ANSI) Close() error {
	return fatal("restore", a.t.Close())
}

// encode translates the instructions to escape sequences and returns the
// bold state left after the last one.
func encode(w *bufio.Writer, ins []Instruction, bold bool) bool {
	for _, in := range ins {
		switch in.Op {
		case OpClear:
			terminal.WriteClear(w)
		case OpMoveTo:
			terminal.WriteCursorPos(w, in.Col, in.Row)
		case OpWrite:
			if bold {
				w.WriteString(aurora.Bold(in.Text).String())
			} else {
				w.WriteString(in.Text)
			}
		case OpBold:
			bold = true
		case OpReset:
			bold = false
			terminal.WriteReset(w)
		case OpHideCursor:
			terminal.WriteCursorHide(w)
		}
	}
	return bold
}
