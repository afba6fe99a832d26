package personality

import (
	"math"

	"github.com/talgya/temperament/internal/entropy"
)

// Trait and facet values live in the closed range [1, 10].
const (
	TraitMin = 1.0
	TraitMax = 10.0

	// midlineValue is the neutral prior for a facet or trait.
	midlineValue = 5.0

	// Maturity sigmoid: maturity = 1 / (1 + exp(-slope*(age - midpoint))).
	maturityMidpoint = 100.0
	maturitySlope    = 0.08
)

// View is the narrow read-only contract the emotion system consumes.
// It exposes no mutation; drift and aging stay under the owner's control.
type View interface {
	Maturity() float64
	Trait(t Trait) float64
	Facet(f Facet) float64
}

// Config controls personality construction.
type Config struct {
	// Priors seeds specific facets; unseeded facets draw from a
	// Gaussian around 5.5 with stddev 2.
	Priors map[Facet]float64
	// Fuzziness is the half-width of uniform noise added to every facet
	// at construction.
	Fuzziness float64
	// Age is the starting age in ticks.
	Age float64
}

// DefaultConfig returns the standard construction parameters.
func DefaultConfig() Config {
	return Config{Fuzziness: 0.95}
}

// Personality owns the facet values and age for one agent. Not safe for
// concurrent use; each agent owns an independent instance.
type Personality struct {
	age    float64
	facets [NumFacets]float64
	rng    entropy.Source
}

// New creates a personality from cfg, drawing initial facet values from rng.
func New(cfg Config, rng entropy.Source) *Personality {
	p := &Personality{age: cfg.Age, rng: rng}
	for f := Facet(0); f < NumFacets; f++ {
		base, ok := cfg.Priors[f]
		if !ok {
			base = rng.NormFloat64()*2.0 + 5.5
		}
		noise := (rng.Float64()*2 - 1) * cfg.Fuzziness
		p.facets[f] = clamp(base+noise, TraitMin, TraitMax)
	}
	return p
}

// Trait returns the weighted sum of the trait's facet values. An
// out-of-range value (only reachable through a raw cast) resolves to the
// midline prior rather than failing; the string surface reports unknown
// names through ParseTrait.
func (p *Personality) Trait(t Trait) float64 {
	if !t.Valid() {
		return midlineValue
	}
	sum := 0.0
	for _, f := range traitFacets[t] {
		sum += p.facets[f] * facetMeta[f].weight
	}
	return sum
}

// TraitByName looks a trait up by name. Fails with ErrUnknownTrait.
func (p *Personality) TraitByName(name string) (float64, error) {
	t, err := ParseTrait(name)
	if err != nil {
		return 0, err
	}
	return p.Trait(t), nil
}

// Facet returns the current value of a single facet.
func (p *Personality) Facet(f Facet) float64 {
	if !f.Valid() {
		return midlineValue
	}
	return p.facets[f]
}

// SetTrait redistributes value across the trait's facets proportionally to
// their weights, overwriting facet values without regard for stability.
func (p *Personality) SetTrait(t Trait, value float64) {
	if !t.Valid() {
		return
	}
	total := 0.0
	for _, f := range traitFacets[t] {
		total += facetMeta[f].weight
	}
	for _, f := range traitFacets[t] {
		p.facets[f] = clamp(value*facetMeta[f].weight/total, TraitMin, TraitMax)
	}
}

// AgeUp increases age by amount. Age only accumulates; there is no upper
// bound and no way to rejuvenate.
func (p *Personality) AgeUp(amount float64) {
	if amount < 0 {
		return
	}
	p.age += amount
}

// Age returns the accumulated age in ticks.
func (p *Personality) Age() float64 { return p.age }

// Maturity returns the age-derived dampening factor in (0, 1), a sigmoid
// centered on the maturity midpoint. Monotonically non-decreasing over an
// agent's lifetime since age only accumulates.
func (p *Personality) Maturity() float64 {
	return 1.0 / (1.0 + math.Exp(-maturitySlope*(p.age-maturityMidpoint)))
}

// maturityBias is the universal volatility dampener used across all three
// affect layers.
func (p *Personality) maturityBias() float64 {
	return math.Pow(p.Maturity(), 1.5)
}

// Snapshot returns all trait and facet values plus age and maturity,
// optionally rounded for display.
func (p *Personality) Snapshot(rounded bool) map[string]float64 {
	out := make(map[string]float64, NumTraits+NumFacets+2)
	for t := Trait(0); t < NumTraits; t++ {
		out[t.String()] = p.Trait(t)
	}
	for f := Facet(0); f < NumFacets; f++ {
		out[f.String()] = p.facets[f]
	}
	out["age"] = p.age
	out["maturity"] = p.Maturity()
	if rounded {
		for k, v := range out {
			out[k] = math.Round(v)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
