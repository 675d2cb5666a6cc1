package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"lifeterm/src/engine"
	"lifeterm/src/universe"
	"lifeterm/src/view"
)

var (
	engines = map[string]universe.Evolver{
		"serial":   universe.Serial,
		"parallel": universe.Parallel(0),
	}
)

type EnvOptions struct {
	width   int
	height  int
	seed    string
	rngSeed uint64
	engine  string
	backend string
	logFile string
	summary bool
}

func main() {
	eo, o := initOptions()
	os.Exit(run(eo, o))
}

func run(eo *EnvOptions, o *engine.Options) (code int) {
	logger, closeLog, err := openLog(eo.logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeLog()

	s, err := view.Backends[eo.backend]()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	//the terminal is restored on every way out, panics included
	var closeOnce sync.Once
	closeSurface := func() {
		closeOnce.Do(func() {
			if err := s.Close(); err != nil {
				logger.Printf("close: %v", err)
			}
		})
	}
	defer func() {
		if r := recover(); r != nil {
			closeSurface()
			panic(r)
		}
	}()

	w, h := s.Size()
	if eo.width > 0 {
		w = eo.width
	}
	if eo.height > 0 {
		h = eo.height
	}
	rng := universe.NewRNG(eo.rngSeed)
	grid := universe.NewGrid(w, h, o.Seed, rng)
	logger.Printf("grid %dx%d, seed %v, %d live cells, engine %s, backend %s", w, h, o.Seed, grid.LiveCells(), eo.engine, eo.backend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	start := time.Now()
	l := engine.New(*o, s, grid, rng, engine.NewClock(), logger)
	err = l.Run(ctx)
	closeSurface()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "lifeterm: %v\n", err)
		code = 1
	}

	if eo.summary {
		st := l.Status()
		view.WriteSummary(os.Stdout, "Session summary:", map[string]interface{}{
			"Dimension":   fmt.Sprintf("%v x %v", w, h),
			"Generations": st.Generation,
			"Live cells":  st.LiveCells,
			"Last evolve": st.EvolveTime.Round(time.Microsecond),
			"Total time":  time.Since(start).Round(time.Millisecond),
			"Engine":      eo.engine,
		})
	}
	return code
}

//openLog returns the logger writing to path, or discarding everything when path is empty
//the terminal belongs to the renderer, so nothing is ever logged to stdout/stderr while running
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log")
	}
	return log.New(f, "lifeterm ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

func initOptions() (eo *EnvOptions, o *engine.Options) {
	opts := engine.DefaultOptions
	o = &opts
	eo = &EnvOptions{
		seed:    "random",
		rngSeed: uint64(time.Now().UnixNano()),
		engine:  "serial",
		backend: "ansi",
	}

	flaggy.SetName("lifeterm")
	flaggy.SetDescription("Conway's game of life on a toroidal grid the size of the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&eo.width, "x", "width", "Width of the grid, the terminal width if 0")
	flaggy.Int(&eo.height, "y", "height", "Height of the grid, the terminal height if 0")
	flaggy.Duration(&o.Interval, "i", "interval", "Time between the generations, for example 150ms")
	flaggy.String(&eo.seed, "d", "seed", "Initial grid [dead|alive|random|random:<density>]")
	flaggy.UInt64(&eo.rngSeed, "", "rng", "Random source seed, the same seed gives the same grid")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(names(engines), "|")+"]")
	flaggy.String(&eo.backend, "b", "backend", "Terminal backend ["+strings.Join(names(view.Backends), "|")+"]")
	flaggy.String(&o.Glyph, "g", "glyph", "Text painted for a live cell")
	flaggy.Bool(&o.Echo, "", "echo", "Write unrecognised keys back to the terminal")
	flaggy.String(&eo.logFile, "l", "log", "Append the session log to this file")
	flaggy.Bool(&eo.summary, "", "summary", "Print the session summary on exit")

	flaggy.Parse()

	evolve, ok := engines[eo.engine]
	if !ok {
		flaggy.ShowHelpAndExit("unknown engine")
	}
	o.Evolve = evolve
	if _, ok := view.Backends[eo.backend]; !ok {
		flaggy.ShowHelpAndExit("unknown backend")
	}
	seed, err := universe.ParseSeed(eo.seed)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	o.Seed = seed
	if o.Interval <= 0 {
		flaggy.ShowHelpAndExit("interval must be positive")
	}

	return
}

func names[V any](m map[string]V) []string {
	n := make([]string, 0, len(m))
	for k := range m {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
