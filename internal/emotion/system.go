package emotion

import (
	"math"

	"github.com/talgya/temperament/internal/entropy"
	"github.com/talgya/temperament/internal/personality"
)

const (
	// DefaultDecay is the baseline per-tick retention factor.
	DefaultDecay = 0.85

	// historyLength bounds the dominant-emotion history.
	historyLength = 10

	// Habituation constants. Habituation never reaches zero: an agent is
	// never fully desensitized.
	habituationDecay = 0.92
	habituationMax   = 1.0
	habituationMin   = 0.05
	habituationStep  = 0.25

	// intensityFloor: active entries below this are culled.
	intensityFloor = 0.05

	// firstActivationCap keeps a single trigger from saturating a fresh
	// emotion.
	firstActivationCap = 0.15

	// interpAlpha is the inertia of per-tick decay interpolation.
	interpAlpha = 0.08
)

// System owns the active-emotion and habituation maps for one agent. It
// reads personality only through the View contract and never mutates it.
// Not safe for concurrent use.
type System struct {
	view personality.View
	rng  entropy.Source

	active      map[Emotion]float64
	habituation [NumEmotions]float64
	decay       float64
	history     []Emotion
}

// NewSystem creates an emotion system reading personality through view.
func NewSystem(view personality.View, rng entropy.Source) *System {
	s := &System{
		view:    view,
		rng:     rng,
		active:  make(map[Emotion]float64),
		decay:   DefaultDecay,
		history: make([]Emotion, historyLength),
	}
	for i := range s.history {
		s.history[i] = Calm
	}
	for i := range s.habituation {
		s.habituation[i] = habituationMin
	}
	return s
}

// personalityBias returns the trigger bias for an emotion from its relevant
// facets, each normalized to [-1, 1] around the midline.
func (s *System) personalityBias(e Emotion) float64 {
	bias := 0.0
	for _, fb := range facetBias[e] {
		norm := (s.view.Facet(fb.facet) - 5.0) / 5.0
		bias += norm * fb.weight
	}
	return bias
}

// Trigger activates or reinforces an emotion at the given nominal
// intensity, using the default decay target.
func (s *System) Trigger(e Emotion, intensity float64) error {
	return s.TriggerWithDecay(e, intensity, DefaultDecay)
}

// TriggerWithDecay activates or reinforces an emotion. The realized
// intensity is shaped by maturity, the sensitivity trait, habituation, and
// the personality facet bias; a highly habituated emotion may skip the
// trigger outright. decayTarget steers the shared decay rate.
func (s *System) TriggerWithDecay(e Emotion, intensity, decayTarget float64) error {
	if !e.Valid() {
		return ErrUnknownEmotion
	}

	maturity := s.view.Maturity()
	mb := math.Pow(maturity, 1.5)

	sensitivity := s.view.Trait(personality.Sensitivity)
	sensFactor := 1.0 + 0.15*(sensitivity-5.0)

	hab := s.habituation[e]
	habFactor := math.Max(habituationMin, 1.0-hab)

	// "I'm tired of feeling this": strong habituation can swallow the
	// trigger entirely.
	if hab > 0.7 && s.rng.Float64() < hab {
		return nil
	}

	persBias := math.Max(0.1, 1.0+s.personalityBias(e))

	adjusted := intensity * (1.0 - 0.8*mb) * sensFactor * habFactor * persBias

	if cur, ok := s.active[e]; ok {
		s.active[e] = 0.92*cur + 0.08*math.Min(1.0, adjusted)
	} else {
		s.active[e] = math.Min(firstActivationCap, adjusted)
	}

	s.decay = clamp(decayTarget-0.4*mb, 0.4, 1.0)

	step := habituationStep * (1.0 + hab)
	s.habituation[e] = math.Min(habituationMax, hab+step)
	for other := Emotion(0); other < NumEmotions; other++ {
		if other != e {
			s.habituation[other] = math.Max(habituationMin, s.habituation[other]*0.98)
		}
	}
	return nil
}

// TriggerEvent fires the canned emotional response for a named external
// event. Fails with ErrUnknownEvent for unmapped names.
func (s *System) TriggerEvent(event string) error {
	et, ok := eventTriggers[event]
	if !ok {
		return ErrUnknownEvent
	}
	return s.Trigger(et.emotion, et.intensity)
}

// Update advances the emotion layer one tick: decay and cull, anti-monotony
// damping, fallback synthesis when nothing is active, spontaneous
// history-biased injection, the Calm attractor, history append, and
// habituation recovery.
func (s *System) Update() {
	maturity := s.view.Maturity()
	mb := math.Pow(maturity, 1.5)

	adjDecay := clamp(s.decay-0.4*mb, 0.4, 1.0)

	// Decay in enum order so the rng stream is reproducible.
	for e := Emotion(0); e < NumEmotions; e++ {
		v, ok := s.active[e]
		if !ok {
			continue
		}
		noise := s.rng.NormFloat64() * 0.01
		v = (1 - interpAlpha) * v * adjDecay
		v = clamp(v+noise, 0, 1)
		if v < intensityFloor {
			delete(s.active, e)
		} else {
			s.active[e] = v
		}
	}

	// Anti-monotony: an emotion that has dominated more than half the
	// history window decays faster and loses habituation headroom.
	dominant := s.Dominant()
	count := 0
	for _, h := range s.history {
		if h == dominant {
			count++
		}
	}
	if count > historyLength/2 {
		if v, ok := s.active[dominant]; ok {
			s.active[dominant] = v * 0.85
		}
		s.habituation[dominant] = math.Max(habituationMin, s.habituation[dominant]*0.95)
	}

	// An agent is never emotionless: synthesize a dominant emotion from
	// the personality bias when the map empties out.
	if len(s.active) == 0 {
		best := Emotion(0)
		bestScore := math.Inf(-1)
		for e := Emotion(0); e < NumEmotions; e++ {
			score := s.personalityBias(e) + s.rng.NormFloat64()*0.05
			if score > bestScore {
				best, bestScore = e, score
			}
		}
		s.active[best] = clamp(0.2+0.8*(bestScore+1)/2, 0.1, 1.0)
	}

	// Spontaneous emotion, biased by history, less likely while anything
	// is already running hot. Only fires out of Calm.
	maxIntensity := 0.0
	for _, v := range s.active {
		if v > maxIntensity {
			maxIntensity = v
		}
	}
	chance := 0.02
	if maxIntensity > 0.5 {
		chance = 0.005
	}
	if _, calmActive := s.active[Calm]; calmActive && s.rng.Float64() < chance {
		spont := s.SpontaneousCandidate()
		if _, ok := s.active[spont]; !ok {
			s.active[spont] = 0.08 + s.rng.Float64()*0.10
		}
	}

	// Fallback attractor: with nothing strong going on, blend toward Calm.
	maxIntensity = 0.0
	for _, v := range s.active {
		if v > maxIntensity {
			maxIntensity = v
		}
	}
	if _, calmActive := s.active[Calm]; maxIntensity < 0.18 && !calmActive {
		s.active[Calm] = 0.12
	}

	s.history = append(s.history, s.Dominant())
	if len(s.history) > historyLength {
		s.history = s.history[len(s.history)-historyLength:]
	}

	// Habituation recovery, slowed by maturity and by the level already
	// worn in.
	for e := Emotion(0); e < NumEmotions; e++ {
		prev := s.habituation[e]
		habDecay := clamp(habituationDecay-0.2*mb-0.05*prev, 0.7, 1.0)
		s.habituation[e] = math.Max(habituationMin, prev*habDecay)
	}
}

// SpontaneousCandidate draws a history-weighted random emotion: recently
// felt emotions are more likely to recur, with Calm down-weighted to avoid
// stagnation.
func (s *System) SpontaneousCandidate() Emotion {
	var weights [NumEmotions]int
	total := 0
	for e := Emotion(0); e < NumEmotions; e++ {
		count := 0
		for _, h := range s.history {
			if h == e {
				count++
			}
		}
		w := 1 + count
		if e == Calm {
			w = max(1, w/2)
		}
		weights[e] = w
		total += w
	}
	r := s.rng.Float64() * float64(total)
	cum := 0.0
	for e := Emotion(0); e < NumEmotions; e++ {
		cum += float64(weights[e])
		if r <= cum {
			return e
		}
	}
	return Calm
}

// Dominant returns the highest-intensity active emotion, or Calm when
// nothing is active. Ties resolve to enum order.
func (s *System) Dominant() Emotion {
	if len(s.active) == 0 {
		return Calm
	}
	best := Calm
	bestV := math.Inf(-1)
	for e := Emotion(0); e < NumEmotions; e++ {
		if v, ok := s.active[e]; ok && v > bestV {
			best, bestV = e, v
		}
	}
	return best
}

// Intensity returns the strongest active intensity, or 0.1 when nothing is
// active (the documented empty-state fallback).
func (s *System) Intensity() float64 {
	if len(s.active) == 0 {
		return 0.1
	}
	maxV := 0.0
	for _, v := range s.active {
		if v > maxV {
			maxV = v
		}
	}
	return maxV
}

// IsActive reports whether the emotion currently has a nonzero entry.
func (s *System) IsActive(e Emotion) bool {
	_, ok := s.active[e]
	return ok
}

// Blended returns a copy of the active-emotion map.
func (s *System) Blended() map[Emotion]float64 {
	out := make(map[Emotion]float64, len(s.active))
	for e, v := range s.active {
		out[e] = v
	}
	return out
}

// BlendedLabels returns the active map keyed by emotion label, the form the
// personality drift step consumes.
func (s *System) BlendedLabels() map[string]float64 {
	out := make(map[string]float64, len(s.active))
	for e, v := range s.active {
		out[e.String()] = v
	}
	return out
}

// History returns a copy of the recent dominant-emotion labels, oldest
// first.
func (s *System) History() []Emotion {
	out := make([]Emotion, len(s.history))
	copy(out, s.history)
	return out
}

// Habituation returns the habituation level for an emotion.
func (s *System) Habituation(e Emotion) float64 {
	if !e.Valid() {
		return habituationMin
	}
	return s.habituation[e]
}

// Snapshot is a read-only view of the emotion layer for external consumers.
type Snapshot struct {
	Dominant  string             `json:"dominant"`
	Intensity float64            `json:"intensity"`
	Blended   map[string]float64 `json:"blended"`
	History   []string           `json:"history"`
}

// TakeSnapshot captures the current emotion state.
func (s *System) TakeSnapshot() Snapshot {
	hist := make([]string, len(s.history))
	for i, h := range s.history {
		hist[i] = h.String()
	}
	return Snapshot{
		Dominant:  s.Dominant().String(),
		Intensity: s.Intensity(),
		Blended:   s.BlendedLabels(),
		History:   hist,
	}
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
