package view

import (
	"context"
	"io"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Tcell draws on a tcell screen. Key events are pumped into a channel by a
// goroutine started on open.
type Tcell struct {
	screen tcell.Screen
	width  int
	height int

	// cursor and style, touched by Draw only
	col   int
	row   int
	style tcell.Style

	keys   chan byte
	stopCh chan struct{}
	doneCh chan struct{}
}

func OpenTcell() (Surface, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fatal("open", err)
	}
	if err := s.Init(); err != nil {
		return nil, fatal("open", err)
	}
	return newTcell(s), nil
}

// newTcell wraps the initialized screen and starts the key pump.
func newTcell(s tcell.Screen) *Tcell {
	w, h := s.Size()
	t := &Tcell{
		screen: s,
		width:  w,
		height: h,
		style:  tcell.StyleDefault,
		keys:   make(chan byte, 64),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go t.pollLoop()
	return t
}

func (t *Tcell) pollLoop() {
	defer close(t.doneCh)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		k, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		b, ok := keyByte(k)
		if !ok {
			continue
		}
		select {
		case t.keys <- b:
		case <-t.stopCh:
			return
		}
	}
}

// keyByte maps the event to the byte a raw terminal would have sent.
// Ctrl chords are folded to their control byte whether tcell reports them as
// a rune or as the plain key with ModCtrl.
// Runes outside ASCII and keys without a single byte encoding are dropped.
func keyByte(ev *tcell.EventKey) (byte, bool) {
	r := rune(ev.Key())
	if ev.Key() == tcell.KeyRune {
		r = ev.Rune()
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 && r >= '@' && r < 0x7f {
		return byte(r) & 0x1f, true
	}
	if r >= 0 && r < utf8.RuneSelf {
		return byte(r), true
	}
	return 0, false
}

func (t *Tcell) Size() (int, int) {
	return t.width, t.height
}

func (t *Tcell) Draw(ins []Instruction) error {
	for _, in := range ins {
		switch in.Op {
		case OpClear:
			t.screen.Clear()
		case OpMoveTo:
			t.col, t.row = in.Col-1, in.Row-1
		case OpWrite:
			for _, r := range in.Text {
				t.screen.SetContent(t.col, t.row, r, nil, t.style)
				t.col++
			}
		case OpBold:
			t.style = t.style.Bold(true)
		case OpReset:
			t.style = tcell.StyleDefault
		case OpHideCursor:
			t.screen.HideCursor()
		}
	}
	t.screen.Show()
	return nil
}

func (t *Tcell) ReadKey(ctx context.Context) (byte, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case b := <-t.keys:
		return b, nil
	case <-t.doneCh:
		return 0, fatal("read", io.EOF)
	}
}

func (t *Tcell) Close() error {
	select {
	case <-t.stopCh:
		return nil
	default:
	}
	close(t.stopCh)
	t.screen.Fini()
	<-t.doneCh
	return nil
}
