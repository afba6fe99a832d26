// Package personality provides the trait/facet model: 8 traits derived from
// 17 weighted facets, aging and maturity, and slow asymmetric drift.
package personality

import (
	"errors"
	"fmt"
)

// Trait is one of the 8 top-level personality dimensions. Trait values are
// never stored; they are always recomputed as the weighted sum of the
// trait's facet values.
type Trait uint8

const (
	Socialness Trait = iota
	Playfulness
	Curiosity
	Happiness
	Grumpiness
	EnergyLevel
	Sensitivity
	Quirkiness

	NumTraits = 8
)

var traitNames = [NumTraits]string{
	"socialness", "playfulness", "curiosity", "happiness",
	"grumpiness", "energyLevel", "sensitivity", "quirkiness",
}

func (t Trait) String() string {
	if int(t) < len(traitNames) {
		return traitNames[t]
	}
	return fmt.Sprintf("Trait(%d)", uint8(t))
}

// Valid reports whether t is a member of the closed trait set.
func (t Trait) Valid() bool { return int(t) < NumTraits }

// ErrUnknownTrait is returned when a string does not name a trait.
var ErrUnknownTrait = errors.New("personality: unknown trait")

// ErrUnknownFacet is returned when a string does not name a facet.
var ErrUnknownFacet = errors.New("personality: unknown facet")

// ParseTrait resolves a trait name to its enum value.
func ParseTrait(name string) (Trait, error) {
	for i, n := range traitNames {
		if n == name {
			return Trait(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTrait, name)
}

// Facet is a fine-grained sub-component of exactly one trait. Facets are the
// only persisted numeric state; each has a weight (shares per trait sum to
// 1.0), a stability in [0, 1], and a core flag marking anchored facets that
// resist drift.
type Facet uint8

const (
	Friendliness Facet = iota
	Assertiveness
	Gregariousness
	Humor
	Spontaneity
	Openness
	Imagination
	Optimism
	Cheerfulness
	Irritability
	Pessimism
	Vitality
	Restlessness
	Anxiety
	Empathy
	Eccentricity
	Creativity

	NumFacets = 17
)

var facetNames = [NumFacets]string{
	"friendliness", "assertiveness", "gregariousness", "humor",
	"spontaneity", "openness", "imagination", "optimism", "cheerfulness",
	"irritability", "pessimism", "vitality", "restlessness", "anxiety",
	"empathy", "eccentricity", "creativity",
}

func (f Facet) String() string {
	if int(f) < len(facetNames) {
		return facetNames[f]
	}
	return fmt.Sprintf("Facet(%d)", uint8(f))
}

// Valid reports whether f is a member of the closed facet set.
func (f Facet) Valid() bool { return int(f) < NumFacets }

// ParseFacet resolves a facet name to its enum value.
func ParseFacet(name string) (Facet, error) {
	for i, n := range facetNames {
		if n == name {
			return Facet(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFacet, name)
}

// facetMeta binds each facet to its parent trait with its weight, stability,
// and core flag. Weights per trait sum to 1.0.
var facetMeta = [NumFacets]struct {
	trait     Trait
	weight    float64
	stability float64
	core      bool
}{
	Friendliness:   {Socialness, 0.4, 0.9, true},
	Assertiveness:  {Socialness, 0.3, 0.7, false},
	Gregariousness: {Socialness, 0.3, 0.6, false},
	Humor:          {Playfulness, 0.5, 0.8, false},
	Spontaneity:    {Playfulness, 0.5, 0.6, false},
	Openness:       {Curiosity, 0.6, 0.8, true},
	Imagination:    {Curiosity, 0.4, 0.7, false},
	Optimism:       {Happiness, 0.5, 0.85, true},
	Cheerfulness:   {Happiness, 0.5, 0.6, false},
	Irritability:   {Grumpiness, 0.7, 0.7, false},
	Pessimism:      {Grumpiness, 0.3, 0.85, true},
	Vitality:       {EnergyLevel, 0.6, 0.8, true},
	Restlessness:   {EnergyLevel, 0.4, 0.6, false},
	Anxiety:        {Sensitivity, 0.6, 0.5, false},
	Empathy:        {Sensitivity, 0.4, 0.8, true},
	Eccentricity:   {Quirkiness, 0.7, 0.7, false},
	Creativity:     {Quirkiness, 0.3, 0.8, false},
}

// traitFacets lists the facets composing each trait, in facet enum order.
var traitFacets [NumTraits][]Facet

func init() {
	for f := Facet(0); f < NumFacets; f++ {
		t := facetMeta[f].trait
		traitFacets[t] = append(traitFacets[t], f)
	}
}

// ParentTrait returns the trait this facet belongs to.
func (f Facet) ParentTrait() Trait { return facetMeta[f].trait }

// IsCore reports whether the facet is anchored (extra drift dampening).
func (f Facet) IsCore() bool { return facetMeta[f].core }
