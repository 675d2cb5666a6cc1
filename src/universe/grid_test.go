package universe

import (
	"testing"
)

func gridOf(width int, height int, rc ...[2]int) *Grid {
	g := NewGrid(width, height, AllDead, nil)
	g.Settle(rc)
	return g
}

func TestNewGridDimensions(t *testing.T) {
	for _, seed := range []Seed{AllDead, AllAlive, Random(DefDensity)} {
		g := NewGrid(7, 4, seed, NewRNG(42))
		if g.Width != 7 || g.Height != 4 || len(g.Cells) != 4 {
			t.Fatalf("%v: got %dx%d with %d rows", seed, g.Width, g.Height, len(g.Cells))
		}
		for row := range g.Cells {
			if len(g.Cells[row]) != 7 {
				t.Fatalf("%v: row %d has %d cells", seed, row, len(g.Cells[row]))
			}
		}
	}
	if n := NewGrid(7, 4, AllAlive, nil).LiveCells(); n != 28 {
		t.Errorf("all alive grid has %d live cells", n)
	}
	if n := NewGrid(7, 4, AllDead, nil).LiveCells(); n != 0 {
		t.Errorf("all dead grid has %d live cells", n)
	}
}

func TestNewGridClampsDimensions(t *testing.T) {
	g := NewGrid(0, -3, AllAlive, nil)
	if g.Width != 1 || g.Height != 1 || g.LiveCells() != 1 {
		t.Errorf("got %dx%d, %d live", g.Width, g.Height, g.LiveCells())
	}
}

func TestRandomDensity(t *testing.T) {
	g := NewGrid(100, 100, Random(DefDensity), NewRNG(7))
	ratio := float64(g.LiveCells()) / 10000
	if ratio < 0.40 || ratio > 0.48 {
		t.Errorf("live ratio %v is too far from %v", ratio, DefDensity)
	}
	if NewGrid(10, 10, Random(0), NewRNG(1)).LiveCells() != 0 {
		t.Error("density 0 produced live cells")
	}
	if NewGrid(10, 10, Random(1), NewRNG(1)).LiveCells() != 100 {
		t.Error("density 1 produced dead cells")
	}
}

func TestRandomIsReproducible(t *testing.T) {
	a := NewGrid(20, 10, Random(0.3), NewRNG(99))
	b := NewGrid(20, 10, Random(0.3), NewRNG(99))
	if !a.Equal(b) {
		t.Error("same rng seed produced different grids")
	}
}

func TestCountLiveNeighborsRange(t *testing.T) {
	for _, g := range []*Grid{
		NewGrid(1, 1, AllAlive, nil),
		NewGrid(2, 2, AllAlive, nil),
		NewGrid(3, 3, AllAlive, nil),
		NewGrid(9, 6, Random(0.5), NewRNG(3)),
	} {
		for row := 0; row < g.Height; row++ {
			for col := 0; col < g.Width; col++ {
				if n := g.CountLiveNeighbors(row, col); n < 0 || n > 8 {
					t.Fatalf("%dx%d (%d,%d): %d neighbours", g.Width, g.Height, row, col, n)
				}
			}
		}
	}
	if n := NewGrid(3, 3, AllAlive, nil).CountLiveNeighbors(1, 1); n != 8 {
		t.Errorf("center of full 3x3 has %d neighbours", n)
	}
}

func TestCountLiveNeighborsWraps(t *testing.T) {
	tests := []struct {
		name string
		live [2]int
		at   [2]int
	}{
		{"north of top row", [2]int{0, 2}, [2]int{4, 2}},
		{"north-west of top row", [2]int{0, 1}, [2]int{4, 2}},
		{"south of bottom row", [2]int{4, 2}, [2]int{0, 2}},
		{"west of first column", [2]int{2, 4}, [2]int{2, 0}},
		{"east of last column", [2]int{2, 0}, [2]int{2, 4}},
		{"corner to corner", [2]int{0, 0}, [2]int{4, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridOf(5, 5, tt.live)
			if n := g.CountLiveNeighbors(tt.at[0], tt.at[1]); n != 1 {
				t.Errorf("got %d neighbours, want 1", n)
			}
		})
	}
}

func TestEvolveRules(t *testing.T) {
	tests := []struct {
		name string
		in   [][2]int
		want [][2]int
	}{
		{
			"block is a still life",
			[][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
			[][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
		},
		{
			"horizontal blinker turns vertical",
			[][2]int{{2, 1}, {2, 2}, {2, 3}},
			[][2]int{{1, 2}, {2, 2}, {3, 2}},
		},
		{
			"vertical blinker turns horizontal",
			[][2]int{{1, 2}, {2, 2}, {3, 2}},
			[][2]int{{2, 1}, {2, 2}, {2, 3}},
		},
		{
			"single cell dies",
			[][2]int{{2, 2}},
			nil,
		},
		{
			"dead cell with 2 neighbours stays dead",
			[][2]int{{0, 0}, {0, 2}},
			nil,
		},
		{
			// (1,1) is born, the corners each have one neighbour
			"dead cell with 3 neighbours is born",
			[][2]int{{0, 0}, {0, 2}, {2, 0}},
			[][2]int{{1, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gridOf(5, 5, tt.in...).Evolve()
			want := gridOf(5, 5, tt.want...)
			if !got.Equal(want) {
				t.Errorf("got:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestEvolveFourNeighboursStaysDead(t *testing.T) {
	// plus sign around (2,2): the centre has 4 live neighbours
	g := gridOf(5, 5, [2]int{1, 2}, [2]int{3, 2}, [2]int{2, 1}, [2]int{2, 3})
	if n := g.CountLiveNeighbors(2, 2); n != 4 {
		t.Fatalf("centre has %d neighbours", n)
	}
	if g.Evolve().Alive(2, 2) {
		t.Error("dead cell with 4 neighbours was born")
	}
}

func TestEvolveBornAcrossEdge(t *testing.T) {
	// the three live cells are neighbours of (0,0) only through wraparound
	g := gridOf(5, 5, [2]int{4, 4}, [2]int{4, 0}, [2]int{0, 4})
	if n := g.CountLiveNeighbors(0, 0); n != 3 {
		t.Fatalf("(0,0) has %d neighbours", n)
	}
	if !g.Evolve().Alive(0, 0) {
		t.Error("(0,0) was not born")
	}
}

func TestBlinkerPeriod(t *testing.T) {
	start := gridOf(5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	one := start.Evolve()
	if one.Equal(start) {
		t.Fatal("blinker did not change")
	}
	if two := one.Evolve(); !two.Equal(start) {
		t.Errorf("blinker did not come back:\n%s", two)
	}
}

func TestEvolveSmallTorus(t *testing.T) {
	// on a 3x3 torus every cell neighbours all 8 others: the blinker cells keep
	// 2 neighbours each and every dead cell sees 3
	g := gridOf(3, 3, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1})
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := 3
			if col == 1 {
				want = 2
			}
			if n := g.CountLiveNeighbors(row, col); n != want {
				t.Fatalf("(%d,%d) has %d neighbours, want %d", row, col, n, want)
			}
		}
	}
	if got := g.Evolve(); !got.Equal(NewGrid(3, 3, AllAlive, nil)) {
		t.Errorf("got:\n%s", got)
	}
}

func TestEvolveIsPure(t *testing.T) {
	g := NewGrid(12, 9, Random(DefDensity), NewRNG(5))
	before := g.Clone()
	g.Evolve()
	g.EvolveParallel(3)
	if !g.Equal(before) {
		t.Error("evolve modified its input")
	}
}

func TestEvolveIsDeterministic(t *testing.T) {
	a := NewGrid(12, 9, Random(DefDensity), NewRNG(11))
	b := NewGrid(12, 9, Random(DefDensity), NewRNG(11))
	if !a.Evolve().Equal(b.Evolve()) {
		t.Error("value-equal grids evolved differently")
	}
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in      string
		want    Seed
		wantErr bool
	}{
		{"dead", AllDead, false},
		{"Alive", AllAlive, false},
		{"random", Random(DefDensity), false},
		{"random:0.25", Random(0.25), false},
		{"random:1.5", Seed{}, true},
		{"random:x", Seed{}, true},
		{"dead:1", Seed{}, true},
		{"glider", Seed{}, true},
	}
	for _, tt := range tests {
		got, err := ParseSeed(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeed(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeed(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
