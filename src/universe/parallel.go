package universe

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

/*
	Parallel evolution
	the grid is split into horizontal bands each of which is computed by individual goroutine
	every band reads the previous generation only and writes its own rows of the new grid
*/

const (
	DefMinRowsPerWorker = 3 //minimum rows for one worker
)

//Evolver calculates the next generation of the grid without modifying it
type Evolver func(g *Grid) *Grid

//Serial is the single goroutine engine
func Serial(g *Grid) *Grid {
	return g.Evolve()
}

//Parallel returns the engine computing the bands with the given workers count
//workers <= 0 means runtime.NumCPU()
func Parallel(workers int) Evolver {
	return func(g *Grid) *Grid {
		return g.EvolveParallel(workers)
	}
}

//band describes the rows [y1, y2] computed by one worker
type band struct {
	y1 int
	y2 int
}

//bands splits the height into the work bands
func bands(height int, workers int) []band {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	linesPerWorker := height / workers
	if linesPerWorker < DefMinRowsPerWorker {
		linesPerWorker = DefMinRowsPerWorker
	} else if linesPerWorker*workers < height {
		linesPerWorker++
	}
	bb := make([]band, 0, workers)
	for y1 := 0; y1 < height; y1 += linesPerWorker {
		bb = append(bb, band{y1: y1, y2: min(y1+linesPerWorker, height) - 1})
	}
	return bb
}

//EvolveParallel gives the same result as Evolve computing the rows concurrently
func (g *Grid) EvolveParallel(workers int) *Grid {
	next := createGrid(g.Width, g.Height)
	var eg errgroup.Group
	for _, b := range bands(g.Height, workers) {
		eg.Go(func() error {
			g.calcBand(b, next)
			return nil
		})
	}
	//the workers never fail
	_ = eg.Wait()
	return next
}

//calcBand calculates new states for the cells inside the band
func (g *Grid) calcBand(b band, next *Grid) {
	for row := b.y1; row <= b.y2; row++ {
		for col := 0; col < g.Width; col++ {
			next.Cells[row][col] = Cell(nextState(bool(g.Cells[row][col]), g.CountLiveNeighbors(row, col)))
		}
	}
}
