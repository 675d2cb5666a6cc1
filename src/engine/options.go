package engine

import (
	"time"

	"lifeterm/src/universe"
	"lifeterm/src/view"
)

//Options represents the session's configurable options
type Options struct {
	Interval       time.Duration    //time between the generations in autoplay
	TickResolution time.Duration    //how often the frame clock is checked
	Seed           universe.Seed    //policy for the initial grid and for reseeding
	Glyph          string           //painted for every live cell
	Echo           bool             //write unrecognised keys back to the terminal
	Keys           KeyMap           //raw byte to command
	Evolve         universe.Evolver //serial or parallel engine
}

//default options
const (
	DefFrameInterval  = time.Millisecond * 200
	DefTickResolution = time.Millisecond * 10
)

var DefaultOptions = Options{
	Interval:       DefFrameInterval,
	TickResolution: DefTickResolution,
	Seed:           universe.Random(universe.DefDensity),
	Glyph:          view.DefGlyph,
	Keys:           DefaultKeyMap,
	Evolve:         universe.Serial,
}

//withDefaults fills the zero fields
func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefFrameInterval
	}
	if o.TickResolution <= 0 {
		o.TickResolution = DefTickResolution
	}
	if o.Glyph == "" {
		o.Glyph = view.DefGlyph
	}
	if o.Keys == nil {
		o.Keys = DefaultKeyMap
	}
	if o.Evolve == nil {
		o.Evolve = universe.Serial
	}
	return o
}
