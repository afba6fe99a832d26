package emotion

import (
	"errors"
	"math"
	"testing"

	"github.com/talgya/temperament/internal/entropy"
	"github.com/talgya/temperament/internal/personality"
)

// neutralPersonality pins every facet to the midline so trigger math has no
// personality bias.
func neutralPersonality(age float64) *personality.Personality {
	priors := make(map[personality.Facet]float64, personality.NumFacets)
	for f := personality.Facet(0); f < personality.NumFacets; f++ {
		priors[f] = 5
	}
	return personality.New(personality.Config{Priors: priors, Age: age}, entropy.Seeded(1))
}

func TestTrigger_FirstActivationCapped(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))

	if err := s.Trigger(Surprised, 0.9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Dominant(); got != Surprised {
		t.Errorf("expected Surprised dominant, got %s", got)
	}
	if i := s.Intensity(); i <= 0 || i > firstActivationCap+1e-9 {
		t.Errorf("first activation must stay under %f, got %f", firstActivationCap, i)
	}
}

func TestTrigger_UnknownEmotion(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))
	if err := s.Trigger(Emotion(99), 0.5); !errors.Is(err, ErrUnknownEmotion) {
		t.Errorf("expected ErrUnknownEmotion, got %v", err)
	}
}

func TestParseEmotion(t *testing.T) {
	e, err := ParseEmotion("Delighted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e != Delighted {
		t.Errorf("expected Delighted, got %s", e)
	}
	if _, err := ParseEmotion("delighted"); !errors.Is(err, ErrUnknownEmotion) {
		t.Errorf("names are case-sensitive, expected ErrUnknownEmotion, got %v", err)
	}
}

func TestTriggerEvent(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))

	if err := s.TriggerEvent("compliment"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsActive(Proud) {
		t.Error("compliment should activate Proud")
	}

	if err := s.TriggerEvent("tax audit"); !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestHabituation_BuildsToCap(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))

	// Each trigger compounds: 0.05 -> 0.3125 -> 0.640625 -> capped.
	wants := []float64{0.3125, 0.640625, 1.0}
	for i, want := range wants {
		if err := s.Trigger(Surprised, 0.9); err != nil {
			t.Fatalf("trigger %d: %v", i, err)
		}
		if got := s.Habituation(Surprised); math.Abs(got-want) > 1e-9 {
			t.Errorf("after trigger %d: expected habituation %f, got %f", i+1, want, got)
		}
	}
}

func TestHabituation_SuppressesRepeats(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))

	var levels []float64
	for i := 0; i < 3; i++ {
		s.Trigger(Surprised, 0.9)
		levels = append(levels, s.Blended()[Surprised])
	}

	first := levels[0]
	second := levels[1] - levels[0]
	third := levels[2] - levels[1]
	if second >= first || third >= second {
		t.Errorf("increments should shrink under habituation: %f, %f, %f", first, second, third)
	}
}

func TestHabituation_CrossDecay(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))

	s.Trigger(Angry, 0.7)
	before := s.Habituation(Angry)

	s.Trigger(Surprised, 0.7)
	after := s.Habituation(Angry)

	if math.Abs(after-before*0.98) > 1e-9 {
		t.Errorf("expected cross decay %f, got %f", before*0.98, after)
	}
}

func TestHabituation_NeverBelowFloor(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))
	for i := 0; i < 200; i++ {
		s.Update()
	}
	for e := Emotion(0); e < NumEmotions; e++ {
		if s.Habituation(e) < habituationMin {
			t.Errorf("%s habituation fell below floor: %f", e, s.Habituation(e))
		}
	}
}

func TestDominant_EmptyFallsBackToCalm(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))

	if got := s.Dominant(); got != Calm {
		t.Errorf("expected Calm for empty state, got %s", got)
	}
	if got := s.Intensity(); got != 0.1 {
		t.Errorf("expected empty-state intensity 0.1, got %f", got)
	}
	if s.IsActive(Calm) {
		t.Error("fallback must not mark Calm active")
	}
}

func TestUpdate_NeverEmotionless(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))
	s.Update()

	if len(s.Blended()) == 0 {
		t.Fatal("update on an empty state must synthesize an emotion")
	}
	if !s.Dominant().Valid() {
		t.Errorf("dominant invalid: %s", s.Dominant())
	}
	if i := s.Intensity(); i <= 0 || i > 1 {
		t.Errorf("intensity out of range: %f", i)
	}
}

func TestUpdate_LongRunStability(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(99))
	events := []string{"compliment", "insult", "threat", "success", "failure", "rejection", "support", "surprise"}

	for tick := 0; tick < 5000; tick++ {
		if tick%100 == 0 {
			s.TriggerEvent(events[(tick/100)%len(events)])
		}
		s.Update()

		for e, v := range s.Blended() {
			if v < 0 || v > 1 {
				t.Fatalf("tick %d: %s intensity out of range: %f", tick, e, v)
			}
		}
		for e := Emotion(0); e < NumEmotions; e++ {
			h := s.Habituation(e)
			if h < habituationMin || h > habituationMax {
				t.Fatalf("tick %d: %s habituation out of range: %f", tick, e, h)
			}
		}
	}

	if len(s.History()) != historyLength {
		t.Errorf("history length: expected %d, got %d", historyLength, len(s.History()))
	}
}

func TestUpdate_NoInputStaysBounded(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(13))

	for tick := 0; tick < 10000; tick++ {
		s.Update()
		if i := s.Intensity(); i < 0 || i > 1 {
			t.Fatalf("tick %d: intensity diverged: %f", tick, i)
		}
	}
	// With no triggers the system settles into low-intensity fallback
	// states rather than diverging.
	if i := s.Intensity(); i > 0.9 {
		t.Errorf("untriggered system should stay subdued, got %f", i)
	}
	if len(s.Blended()) == 0 {
		t.Error("system must never be emotionless")
	}
}

func TestSpontaneousCandidate_Valid(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(5))
	for i := 0; i < 100; i++ {
		if e := s.SpontaneousCandidate(); !e.Valid() {
			t.Fatalf("invalid spontaneous candidate: %s", e)
		}
	}
}

func TestTakeSnapshot(t *testing.T) {
	s := NewSystem(neutralPersonality(0), entropy.Seeded(7))
	s.Trigger(Grateful, 0.6)
	s.Update()

	snap := s.TakeSnapshot()
	if snap.Dominant == "" {
		t.Error("snapshot missing dominant")
	}
	if snap.Intensity <= 0 || snap.Intensity > 1 {
		t.Errorf("snapshot intensity out of range: %f", snap.Intensity)
	}
	if len(snap.History) != historyLength {
		t.Errorf("snapshot history length: expected %d, got %d", historyLength, len(snap.History))
	}
	if len(snap.Blended) == 0 {
		t.Error("snapshot blended map empty")
	}
}
