package engine

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"lifeterm/src/universe"
	"lifeterm/src/view"
)

//ErrQuit ends the session normally
var ErrQuit = errors.New("quit")

//The session running status at the concrete moment
type RunningState int

const (
	RunningStateStopped RunningState = iota
	RunningStateRunning
)

func (s RunningState) String() string {
	if s == RunningStateRunning {
		return "running"
	}
	return "stopped"
}

//Status represents the status of the session at concrete moment
type Status struct {
	Generation  int
	RunningMode RunningState
	LiveCells   int
	EvolveTime  time.Duration
}

//Loop drives the interactive session
//the grid and the playback state are owned by the animation task, see Run
type Loop struct {
	options Options
	surface view.Surface
	clock   Clock
	log     *log.Logger
	rng     *rand.Rand

	grid        *universe.Grid
	lastStep    time.Duration
	showingGrid bool
	state       struct {
		Status
		sync.Mutex
	}
}

//New creates the loop for the grid
//nil clock, logger or rng are replaced with the monotonic clock, a discarding logger and a random source
func New(o Options, s view.Surface, g *universe.Grid, rng *rand.Rand, clock Clock, logger *log.Logger) *Loop {
	if clock == nil {
		clock = NewClock()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if rng == nil {
		rng = universe.NewRNG(rand.Uint64())
	}
	l := &Loop{
		options: o.withDefaults(),
		surface: s,
		clock:   clock,
		log:     logger,
		rng:     rng,
		grid:    g,
	}
	l.state.LiveCells = g.LiveCells()
	return l
}

//Status returns current session status
func (l *Loop) Status() Status {
	l.state.Lock()
	defer l.state.Unlock()
	return l.state.Status
}

//Grid returns the current generation
func (l *Loop) Grid() *universe.Grid {
	return l.grid
}

//Run shows the banner and serves the session until quit, ctx cancellation or a terminal failure
//quit returns nil
func (l *Loop) Run(ctx context.Context) error {
	if err := l.draw(view.Banner(l.surface.Size())...); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	keys := make(chan byte, 16)
	eg.Go(func() error {
		return l.readInput(ctx, keys)
	})
	eg.Go(func() error {
		return l.animate(ctx, keys)
	})

	err := eg.Wait()
	if errors.Is(err, ErrQuit) {
		l.log.Printf("quit at generation %d", l.Status().Generation)
		return nil
	}
	return err
}

//readInput forwards the raw input bytes until ctx is done
func (l *Loop) readInput(ctx context.Context, keys chan<- byte) error {
	for {
		b, err := l.surface.ReadKey(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "input")
		}
		select {
		case keys <- b:
		case <-ctx.Done():
			return nil
		}
	}
}

//animate is the only goroutine touching the grid and the playback state
func (l *Loop) animate(ctx context.Context, keys <-chan byte) error {
	tick := time.NewTicker(l.options.TickResolution)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b := <-keys:
			if err := l.Dispatch(b); err != nil {
				return err
			}
		case <-tick.C:
			if _, err := l.Tick(); err != nil {
				return err
			}
		}
	}
}

//Dispatch executes the command bound to the input byte
func (l *Loop) Dispatch(b byte) error {
	cmd := l.options.Keys.Decode(b)
	l.log.Printf("key %q: %v", b, cmd)

	switch cmd {
	case CommandQuit:
		return ErrQuit
	case CommandClear:
		l.showingGrid = false
		return l.draw(view.Clear())
	case CommandStart:
		return l.start()
	case CommandPaint:
		return l.paint()
	case CommandBanner:
		l.stop()
		l.showingGrid = false
		return l.draw(view.Banner(l.surface.Size())...)
	case CommandPause:
		l.stop()
		return nil
	case CommandReseed:
		return l.reseed()
	}

	if l.options.Echo {
		return l.draw(view.Write(string([]byte{b})))
	}
	return nil
}

//Tick evolves and repaints the grid once the frame interval has elapsed since the last step
//at most one generation is produced per call
func (l *Loop) Tick() (bool, error) {
	if l.Status().RunningMode != RunningStateRunning {
		return false, nil
	}
	now := l.clock.Now()
	if now-l.lastStep < l.options.Interval {
		return false, nil
	}

	l.step()
	l.lastStep += l.options.Interval
	if now-l.lastStep >= l.options.Interval {
		//too far behind (slow terminal, suspended process), drop the backlog
		l.lastStep = now
	}
	return true, l.paint()
}

//start switches to autoplay, the first generation is painted immediately
func (l *Loop) start() error {
	if l.Status().RunningMode == RunningStateRunning {
		return nil
	}
	l.switchRunningState(RunningStateRunning)
	l.lastStep = l.clock.Now()
	return l.paint()
}

func (l *Loop) stop() {
	if l.Status().RunningMode == RunningStateRunning {
		l.switchRunningState(RunningStateStopped)
	}
}

func (l *Loop) switchRunningState(to RunningState) {
	l.state.Lock()
	l.state.RunningMode = to
	l.state.Unlock()
	l.log.Printf("playback %v", to)
}

//step replaces the grid with the next generation
func (l *Loop) step() {
	start := time.Now()
	next := l.options.Evolve(l.grid)
	elapsed := time.Since(start)
	liveCells := next.LiveCells()

	l.grid = next
	l.state.Lock()
	l.state.Generation++
	l.state.LiveCells = liveCells
	l.state.EvolveTime = elapsed
	l.state.Unlock()
}

//reseed replaces the grid with the fresh one of the same size
func (l *Loop) reseed() error {
	l.grid = universe.NewGrid(l.grid.Width, l.grid.Height, l.options.Seed, l.rng)
	l.state.Lock()
	l.state.Generation = 0
	l.state.LiveCells = l.grid.LiveCells()
	l.state.Unlock()
	l.log.Printf("reseeded with %v, %d live cells", l.options.Seed, l.grid.LiveCells())
	if l.showingGrid {
		return l.paint()
	}
	return nil
}

func (l *Loop) paint() error {
	l.showingGrid = true
	return l.draw(view.Paint(l.grid, l.options.Glyph)...)
}

func (l *Loop) draw(ins ...view.Instruction) error {
	return errors.Wrap(l.surface.Draw(ins), "draw")
}
