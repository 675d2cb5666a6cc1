package view

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

const fieldView = "field"

type gocuiCell struct {
	r    rune
	bold bool
}

// Gocui draws into one frameless full screen gocui view.
// The gocui main loop runs in its own goroutine, every Draw renders the
// screen buffer to a string and posts it as the latest frame. Gui.Update
// delivers in no particular order, so the update callback always prints the
// latest frame and at most one update is in flight.
type Gocui struct {
	g      *gocui.Gui
	width  int
	height int

	// screen buffer, touched by Draw only
	cells [][]gocuiCell
	col   int
	row   int
	bold  bool

	// latest rendered frame, shared with the main loop
	mu      sync.Mutex
	frame   string
	pending bool

	keys     chan byte
	loopErr  error
	loopDone chan struct{}
}

func OpenGocui() (Surface, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fatal("open", err)
	}
	w, h := g.Size()
	s := &Gocui{
		g:        g,
		width:    w,
		height:   h,
		keys:     make(chan byte, 64),
		loopDone: make(chan struct{}),
	}
	s.cells = newGocuiCells(w, h)

	g.SetManagerFunc(s.layout)
	if err := s.initKeyBindings(); err != nil {
		g.Close()
		return nil, fatal("open", err)
	}

	go func() {
		s.loopErr = g.MainLoop()
		close(s.loopDone)
	}()
	return s, nil
}

// initKeyBindings forwards every printable key plus a few control keys.
// gocui reports the space bar as a key, not a rune.
func (s *Gocui) initKeyBindings() error {
	bindings := map[interface{}]byte{
		gocui.KeySpace: ' ',
		gocui.KeyCtrlC: 0x03,
		gocui.KeyEnter: '\r',
		gocui.KeyEsc:   0x1b,
	}
	for r := '!'; r <= '~'; r++ {
		bindings[r] = byte(r)
	}
	for key, b := range bindings {
		if err := s.g.SetKeybinding("", key, gocui.ModNone, s.forward(b)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Gocui) forward(b byte) func(*gocui.Gui, *gocui.View) error {
	return func(_ *gocui.Gui, _ *gocui.View) error {
		select {
		case s.keys <- b:
		default:
			// reader is behind, drop the key
		}
		return nil
	}
}

func (s *Gocui) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if v, err := g.SetView(fieldView, -1, -1, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
	}
	return nil
}

func (s *Gocui) Size() (int, int) {
	return s.width, s.height
}

func (s *Gocui) Draw(ins []Instruction) error {
	s.apply(ins)
	select {
	case <-s.loopDone:
		return fatal("write", s.exitErr())
	default:
	}
	if s.post(s.render()) {
		s.g.Update(s.flush)
	}
	return nil
}

// post stores frame as the latest one and reports whether an update has to
// be scheduled to show it.
func (s *Gocui) post(frame string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

// take returns the latest frame, the next post schedules a new update.
func (s *Gocui) take() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	return s.frame
}

func (s *Gocui) flush(g *gocui.Gui) error {
	frame := s.take()
	v, err := g.View(fieldView)
	if err != nil {
		// not laid out yet, the next frame will do
		return nil
	}
	v.Clear()
	_, err = fmt.Fprint(v, frame)
	return err
}

// apply draws into the screen buffer.
func (s *Gocui) apply(ins []Instruction) {
	for _, in := range ins {
		switch in.Op {
		case OpClear:
			s.clear()
		case OpMoveTo:
			s.col, s.row = in.Col-1, in.Row-1
		case OpWrite:
			for _, r := range in.Text {
				s.put(r)
			}
		case OpBold:
			s.bold = true
		case OpReset:
			s.bold = false
		case OpHideCursor:
			// gocui keeps the cursor hidden unless Gui.Cursor is set
		}
	}
}

func (s *Gocui) ReadKey(ctx context.Context) (byte, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case b := <-s.keys:
		return b, nil
	case <-s.loopDone:
		return 0, fatal("read", s.exitErr())
	}
}

func (s *Gocui) Close() error {
	select {
	case <-s.loopDone:
	default:
		s.g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
		<-s.loopDone
	}
	s.g.Close()
	return nil
}

// exitErr is the reason the main loop ended, io.EOF if it was asked to quit.
func (s *Gocui) exitErr() error {
	if s.loopErr == nil || s.loopErr == gocui.ErrQuit {
		return io.EOF
	}
	return s.loopErr
}

func newGocuiCells(w, h int) [][]gocuiCell {
	cells := make([][]gocuiCell, h)
	for i := range cells {
		cells[i] = make([]gocuiCell, w)
		for j := range cells[i] {
			cells[i][j] = gocuiCell{r: ' '}
		}
	}
	return cells
}

func (s *Gocui) clear() {
	for _, row := range s.cells {
		for i := range row {
			row[i] = gocuiCell{r: ' '}
		}
	}
}

func (s *Gocui) put(r rune) {
	if s.row >= 0 && s.row < s.height && s.col >= 0 && s.col < s.width {
		if r < ' ' {
			r = ' '
		}
		s.cells[s.row][s.col] = gocuiCell{r: r, bold: s.bold}
	}
	s.col++
}

// render builds the view content, bold runs are wrapped in escape sequences
// which gocui interprets.
func (s *Gocui) render() string {
	var b strings.Builder
	var run strings.Builder
	for i, row := range s.cells {
		if i != 0 {
			b.WriteByte('\n')
		}
		for j := 0; j < len(row); {
			run.Reset()
			bold := row[j].bold
			for ; j < len(row) && row[j].bold == bold; j++ {
				run.WriteRune(row[j].r)
			}
			if bold {
				b.WriteString(aurora.Bold(run.String()).String())
			} else {
				b.WriteString(run.String())
			}
		}
	}
	return b.String()
}
