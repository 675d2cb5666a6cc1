package universe

import (
	"math/rand/v2"
	"strings"
)

type Cell bool

//Grid is the toroidal field where the cells are living
//the dimensions are fixed at creation time, every row has exactly Width cells
type Grid struct {
	Width  int
	Height int
	Cells  [][]Cell
}

//NewGrid creates the grid with width x height cells populated according to the seed policy
//rng is used by the random policy only and may be nil for the others
func NewGrid(width int, height int, seed Seed, rng *rand.Rand) *Grid {
	g := createGrid(width, height)
	seed.populate(g, rng)
	return g
}

//Alive reports the state of the cell at row, col (both wrapped)
func (g *Grid) Alive(row int, col int) bool {
	return bool(g.Cells[wrap(row, g.Height)][wrap(col, g.Width)])
}

//Settle makes the cells alive
//rc - array of [row, col] coordinates, coordinates outside the grid are skipped
func (g *Grid) Settle(rc [][2]int) {
	for _, v := range rc {
		if v[0] < 0 || v[1] < 0 || v[0] >= g.Height || v[1] >= g.Width {
			continue
		}
		g.Cells[v[0]][v[1]] = true
	}
}

//LiveCells calculates the count of live cells
func (g *Grid) LiveCells() int {
	liveCells := 0
	g.walk(func(_ int, _ int, c Cell) {
		if c {
			liveCells++
		}
	})
	return liveCells
}

//CountLiveNeighbors counts the live cells among the 8 neighbours of row, col
//the grid has no edges: the coordinates are wrapped to the opposite side
func (g *Grid) CountLiveNeighbors(row int, col int) int {
	liveNeighbours := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			if g.Cells[wrap(row+i, g.Height)][wrap(col+j, g.Width)] {
				liveNeighbours++
			}
		}
	}
	return liveNeighbours
}

//Evolve calculates the next generation and returns it as the new grid
//the receiver is not modified, so every cell is computed against one snapshot
func (g *Grid) Evolve() *Grid {
	next := createGrid(g.Width, g.Height)
	g.walk(func(row int, col int, c Cell) {
		next.Cells[row][col] = Cell(nextState(bool(c), g.CountLiveNeighbors(row, col)))
	})
	return next
}

//Clone returns the deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := createGrid(g.Width, g.Height)
	for row := range g.Cells {
		copy(c.Cells[row], g.Cells[row])
	}
	return c
}

//Equal compares the grids by value
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for row := range g.Cells {
		for col := range g.Cells[row] {
			if g.Cells[row][col] != o.Cells[row][col] {
				return false
			}
		}
	}
	return true
}

//String renders the grid as rows of '#' and '.', handy in test failures
func (g *Grid) String() string {
	var b strings.Builder
	for row := range g.Cells {
		for _, c := range g.Cells[row] {
			if c {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//walk walks the entire grid and calls the cb function for each cell
func (g *Grid) walk(cb func(row int, col int, c Cell)) {
	for row := range g.Cells {
		for col := range g.Cells[row] {
			cb(row, col, g.Cells[row][col])
		}
	}
}

//nextState is the B3/S23 rule
func nextState(alive bool, liveNeighbours int) bool {
	if liveNeighbours == 3 {
		return true
	}
	return alive && liveNeighbours == 2
}

//wrap is the modulo which never returns the negative value
func wrap(i int, n int) int {
	return ((i % n) + n) % n
}

//createGrid allocates the new grid, all rows share one backing array
func createGrid(width int, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := Grid{Width: width, Height: height, Cells: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range g.Cells {
		start := width * i
		g.Cells[i] = b[start : start+width : start+width]
	}
	return &g
}
