package mood

import (
	"fmt"
	"math"
	"strings"

	"github.com/talgya/temperament/internal/emotion"
	"github.com/talgya/temperament/internal/entropy"
	"github.com/talgya/temperament/internal/personality"
)

const (
	// historyLength bounds the mood label history.
	historyLength = 10

	// driftStrength is the reduced drift applied when a strong mood has
	// persisted long enough to leave a mark on personality.
	driftStrength = 0.005

	// sustainedTicks gates the drift trigger: the mood must have held
	// this many ticks unchanged.
	sustainedTicks = 4
)

// System owns the mood state for one agent. It reads personality and the
// emotion system, and is the only component that calls DriftTraits and
// Trigger as side effects of its own update. Not safe for concurrent use.
type System struct {
	pers     *personality.Personality
	emotions *emotion.System
	rng      entropy.Source

	noise float64 // half-width of the per-mood uniform score noise

	label         string
	intensity     float64
	moodLife      float64
	lastLabel     string
	lastIntensity float64
	history       []string
}

// NewSystem creates a mood system over the given personality and emotion
// layer.
func NewSystem(pers *personality.Personality, emotions *emotion.System, rng entropy.Source) *System {
	s := &System{
		pers:     pers,
		emotions: emotions,
		rng:      rng,
		noise:    1.0,
		label:    Neutral.String(),
	}
	s.history = make([]string, historyLength)
	for i := range s.history {
		s.history[i] = Neutral.String()
	}
	return s
}

// computeScores evaluates every candidate mood against current traits, the
// situational context, and maturity-damped noise. Neutral is pinned to 0.
func (s *System) computeScores(ctx Context) [NumMoods]float64 {
	mb := math.Pow(s.pers.Maturity(), 1.5)
	var scores [NumMoods]float64
	for m := Mood(0); m < NumMoods; m++ {
		score := 0.0
		for _, w := range moodWeights[m] {
			score += s.pers.Trait(w.trait) * w.weight
		}
		switch m {
		case Hot:
			if ctx.Temperature > 28 {
				score += (ctx.Temperature - 28) * 0.5
			}
		case Cold:
			if ctx.Temperature < 16 {
				score += (16 - ctx.Temperature) * 0.5
			}
		case Bored:
			if ctx.Activity == ActivityNone {
				score += 2.0
			}
		}
		score += (s.rng.Float64()*2 - 1) * s.noise * (1.0 - 0.8*mb)
		scores[m] = score
	}
	scores[Neutral] = 0.0
	return scores
}

// UpdateMood recomputes the mood for one tick: candidate scoring with
// emotion boosts, inertia smoothing, mood-change side effects, the rare
// history-weighted override, emotion reconciliation, and the sustained
// strong-mood drift trigger.
func (s *System) UpdateMood(ctx Context) {
	scores := s.computeScores(ctx)

	// Strong emotions hijack the scoring of a same-named mood, if one
	// exists in the candidate set.
	for e, inten := range s.emotions.Blended() {
		if m, ok := moodWithLabel(e.String()); ok {
			scores[m] += inten * 2
		}
	}

	best := Mood(0)
	bestScore := math.Inf(-1)
	for m := Mood(0); m < NumMoods; m++ {
		if scores[m] > bestScore {
			best, bestScore = m, scores[m]
		}
	}

	maturity := s.pers.Maturity()
	mb := math.Pow(maturity, 1.5)
	alpha := math.Min(0.25, 0.08+0.10*mb)

	if best.String() == s.label {
		s.moodLife++
		s.intensity = (1-alpha)*s.intensity + alpha*1.0
	} else {
		s.lastLabel = s.label
		s.lastIntensity = s.intensity
		s.label = best.String()
		s.intensity = (1-alpha)*s.intensity + alpha*0.2
		s.moodLife = 0

		// A genuine mood change stirs a related emotion, and sometimes
		// a spontaneous one on top.
		if e, ok := moodEmotion[best]; ok {
			s.emotions.Trigger(e, 0.5)
		}
		if s.rng.Float64() < 0.2 {
			spont := s.emotions.SpontaneousCandidate()
			if !s.emotions.IsActive(spont) {
				s.emotions.Trigger(spont, 0.3)
			}
		}
	}

	// Rare lifelike override: jump to a history-weighted random mood,
	// dampened by maturity.
	if s.rng.Float64() < 0.02*(1.0-0.7*maturity) {
		s.label = s.weightedRandomMood().String()
		s.intensity = 1.0
		s.moodLife = 0
	}

	emo := s.emotions.Dominant()
	emoInt := s.emotions.Intensity()
	s.reconcileEmotion(emo.String(), emoInt)

	// A strong, sustained mood (or a strong emotion under one) slowly
	// bends personality toward it.
	if (s.intensity > 0.7 || emoInt > 0.7) && s.moodLife > sustainedTicks {
		s.pers.DriftTraits(driftStrength, personality.DriftInfluence{
			Mood:             s.label,
			MoodIntensity:    s.intensity,
			Emotion:          emo.String(),
			EmotionIntensity: emoInt,
			Blended:          s.emotions.BlendedLabels(),
		})
		s.moodLife = 0
	}

	s.history = append(s.history, s.label)
	if len(s.history) > historyLength {
		s.history = s.history[len(s.history)-historyLength:]
	}
}

// reconcileEmotion resolves the mood label against the dominant emotion.
// A strong emotion fully overrides the mood unless the mood is equally
// strong and textually unrelated, in which case neither yields and the
// state collapses to "Uncertain". A moderate emotion blends into a
// composite label.
func (s *System) reconcileEmotion(emoLabel string, emoInt float64) {
	switch {
	case emoInt > 0.7:
		if s.intensity > 0.7 && !related(s.label, emoLabel) {
			s.label = Uncertain.String()
			s.intensity = math.Min(s.intensity, emoInt)
		} else {
			s.label = emoLabel
			s.intensity = emoInt
		}
		s.moodLife = 0
	case emoInt > 0.2:
		s.label = fmt.Sprintf("%s (%s)", s.label, emoLabel)
		if emoInt > s.intensity {
			s.intensity = emoInt
		}
	}
}

// related reports whether two affect labels textually overlap.
func related(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// weightedRandomMood draws a history-weighted random mood: recent moods
// recur more readily, with Neutral down-weighted.
func (s *System) weightedRandomMood() Mood {
	var weights [NumMoods]int
	total := 0
	for m := Mood(0); m < NumMoods; m++ {
		count := 0
		for _, h := range s.history {
			if h == m.String() {
				count++
			}
		}
		w := 1 + count
		if m == Neutral {
			w = max(1, w/2)
		}
		weights[m] = w
		total += w
	}
	r := s.rng.Float64() * float64(total)
	cum := 0.0
	for m := Mood(0); m < NumMoods; m++ {
		cum += float64(weights[m])
		if r <= cum {
			return m
		}
	}
	return Neutral
}

// Mood returns the current mood label.
func (s *System) Mood() string { return s.label }

// Intensity returns the smoothed mood intensity in [0, 1].
func (s *System) Intensity() float64 { return s.intensity }

// MoodLife returns how many ticks the current mood has held unchanged.
func (s *System) MoodLife() float64 { return s.moodLife }

// History returns a copy of the recent mood labels, oldest first.
func (s *System) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot is a read-only view of the mood layer for external consumers.
type Snapshot struct {
	Mood      string   `json:"mood"`
	Intensity float64  `json:"intensity"`
	MoodLife  float64  `json:"mood_life"`
	History   []string `json:"history"`
}

// TakeSnapshot captures the current mood state.
func (s *System) TakeSnapshot() Snapshot {
	return Snapshot{
		Mood:      s.label,
		Intensity: s.intensity,
		MoodLife:  s.moodLife,
		History:   s.History(),
	}
}
