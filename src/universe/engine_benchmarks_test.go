package universe

import (
	"sort"
	"testing"
)

var (
	engines = map[string]Evolver{
		"serial":    Serial,
		"parallel":  Parallel(0),
		"parallel4": Parallel(4),
	}
)

const (
	width  = 200
	height = 200
)

func engineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}

func Benchmark_Evolve(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			g := NewGrid(width, height, Random(DefDensity), NewRNG(1))
			evolve := engines[e]
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g = evolve(g)
			}
		})
	}
}

func TestEnginesAgree(t *testing.T) {
	sizes := [][2]int{{1, 1}, {3, 3}, {5, 7}, {17, 4}, {64, 33}}
	for _, sz := range sizes {
		g := NewGrid(sz[0], sz[1], Random(DefDensity), NewRNG(uint64(sz[0]*100+sz[1])))
		want := Serial(g)
		for _, e := range engineNames() {
			if got := engines[e](g); !got.Equal(want) {
				t.Fatalf("%s engine on %dx%d:\n%s\nwant:\n%s", e, sz[0], sz[1], got, want)
			}
		}
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		height  int
		workers int
		want    int
	}{
		{1, 4, 1},
		{3, 4, 1},
		{10, 2, 2},
		{11, 2, 2},
		{40, 10, 10},
	}
	for _, tt := range tests {
		bb := bands(tt.height, tt.workers)
		if len(bb) != tt.want {
			t.Errorf("bands(%d, %d) = %d bands, want %d", tt.height, tt.workers, len(bb), tt.want)
		}
		next := 0
		for _, b := range bb {
			if b.y1 != next || b.y2 < b.y1 {
				t.Fatalf("bands(%d, %d) has a gap or overlap at %+v", tt.height, tt.workers, b)
			}
			next = b.y2 + 1
		}
		if next != tt.height {
			t.Errorf("bands(%d, %d) cover %d rows", tt.height, tt.workers, next)
		}
	}
}
