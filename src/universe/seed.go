package universe

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

//DefDensity is the probability of the cell to be alive for the random seeding
const DefDensity = 0.44

type seedKind int

const (
	seedAllDead seedKind = iota
	seedAllAlive
	seedRandom
)

//Seed is the policy used to populate the new grid
type Seed struct {
	kind    seedKind
	density float64
}

var (
	AllDead  = Seed{kind: seedAllDead}
	AllAlive = Seed{kind: seedAllAlive}
)

//Random returns the policy where every cell is independently alive with probability p
//p is clamped to [0, 1]
func Random(p float64) Seed {
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return Seed{kind: seedRandom, density: p}
}

//NewRNG creates the uniform random source, the same seed gives the same grids
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

//ParseSeed parses the seed policy in the form dead|alive|random|random:<p>
func ParseSeed(s string) (Seed, error) {
	name, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")
	switch name {
	case "dead":
		if !hasArg {
			return AllDead, nil
		}
	case "alive":
		if !hasArg {
			return AllAlive, nil
		}
	case "random":
		if !hasArg {
			return Random(DefDensity), nil
		}
		p, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Seed{}, errors.Wrapf(err, "bad density %q", arg)
		}
		if p < 0 || p > 1 {
			return Seed{}, errors.Errorf("density %v is out of [0, 1]", p)
		}
		return Random(p), nil
	}
	return Seed{}, errors.Errorf("unknown seed policy %q", s)
}

func (s Seed) String() string {
	switch s.kind {
	case seedAllAlive:
		return "alive"
	case seedRandom:
		return fmt.Sprintf("random:%v", s.density)
	default:
		return "dead"
	}
}

//populate fills the freshly created (all dead) grid
func (s Seed) populate(g *Grid, rng *rand.Rand) {
	switch s.kind {
	case seedAllAlive:
		g.walk(func(row int, col int, _ Cell) {
			g.Cells[row][col] = true
		})
	case seedRandom:
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		g.walk(func(row int, col int, _ Cell) {
			g.Cells[row][col] = Cell(rng.Float64() < s.density)
		})
	}
}
