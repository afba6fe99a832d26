// Package climate generates a deterministic ambient context series from
// layered simplex noise: a slowly wandering temperature and an activity
// state that dwells and switches.
package climate

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/temperament/internal/mood"
)

// Generator produces the situational context for each tick.
type Generator struct {
	tempNoise     opensimplex.Noise
	activityNoise opensimplex.Noise

	// Temperature range: BaseTemp ± Swing, before the diurnal drift.
	BaseTemp float64
	Swing    float64

	// TicksPerDay is the period of the slow diurnal temperature cycle.
	TicksPerDay float64
}

// NewGenerator creates a context generator for the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		tempNoise:     opensimplex.NewNormalized(seed),
		activityNoise: opensimplex.NewNormalized(seed + 1),
		BaseTemp:      22,
		Swing:         13,
		TicksPerDay:   1440,
	}
}

// At returns the ambient context for a tick. Deterministic per seed.
func (g *Generator) At(tick uint64) mood.Context {
	t := float64(tick)

	// Two noise octaves: a slow daily wander plus faster jitter.
	n := 0.7*g.tempNoise.Eval2(t/g.TicksPerDay, 0) +
		0.3*g.tempNoise.Eval2(t/60, 100)
	temp := g.BaseTemp + (n*2-1)*g.Swing

	// Activity dwells in a band until the noise crosses a threshold.
	a := g.activityNoise.Eval2(t/240, 7.3)
	activity := mood.ActivityNone
	switch {
	case a > 0.66:
		activity = mood.ActivityPlaying
	case a > 0.38:
		activity = mood.ActivityTalking
	}

	return mood.Context{Temperature: temp, Activity: activity}
}
