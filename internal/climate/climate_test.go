package climate

import (
	"testing"

	"github.com/talgya/temperament/internal/mood"
)

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(42)
	b := NewGenerator(42)

	for tick := uint64(0); tick < 500; tick++ {
		ca, cb := a.At(tick), b.At(tick)
		if ca != cb {
			t.Fatalf("tick %d: same seed diverged: %+v vs %+v", tick, ca, cb)
		}
	}
}

func TestGenerator_SeedsDiffer(t *testing.T) {
	a := NewGenerator(1)
	b := NewGenerator(2)

	same := true
	for tick := uint64(0); tick < 200; tick++ {
		if a.At(tick) != b.At(tick) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical context series")
	}
}

func TestGenerator_TemperatureBounded(t *testing.T) {
	g := NewGenerator(7)
	lo, hi := g.BaseTemp-g.Swing, g.BaseTemp+g.Swing

	for tick := uint64(0); tick < 5000; tick++ {
		ctx := g.At(tick)
		if ctx.Temperature < lo || ctx.Temperature > hi {
			t.Fatalf("tick %d: temperature %f outside [%f, %f]", tick, ctx.Temperature, lo, hi)
		}
	}
}

func TestGenerator_ActivityValid(t *testing.T) {
	g := NewGenerator(7)
	seen := map[mood.Activity]bool{}

	for tick := uint64(0); tick < 10000; tick++ {
		a := g.At(tick).Activity
		switch a {
		case mood.ActivityNone, mood.ActivityTalking, mood.ActivityPlaying:
			seen[a] = true
		default:
			t.Fatalf("tick %d: unknown activity %v", tick, a)
		}
	}
	if len(seen) < 2 {
		t.Errorf("expected the activity to vary over 10k ticks, saw %d states", len(seen))
	}
}
