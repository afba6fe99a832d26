package personality

import (
	"math"
	"testing"
)

// driftDelta applies one drift step with a fixed Gaussian draw and returns
// the signed change of one facet.
func driftDelta(f Facet, norm, strength float64, inf DriftInfluence) float64 {
	p := flat(5, 0)
	p.rng = stubSource{uni: 0.5, norm: norm}
	before := p.Facet(f)
	p.DriftTraits(strength, inf)
	return p.Facet(f) - before
}

func TestDriftTraits_AnxietyAsymmetry(t *testing.T) {
	up := driftDelta(Anxiety, 1, 0.1, DriftInfluence{})
	down := driftDelta(Anxiety, -1, 0.1, DriftInfluence{})

	if up <= 0 || down >= 0 {
		t.Fatalf("expected up > 0 and down < 0, got %f / %f", up, down)
	}
	ratio := up / -down
	want := 1.5 / 0.7
	if math.Abs(ratio-want) > 1e-9 {
		t.Errorf("anxiety up/down ratio: expected %f, got %f", want, ratio)
	}
}

func TestDriftTraits_CheerfulnessFadesFaster(t *testing.T) {
	up := driftDelta(Cheerfulness, 1, 0.1, DriftInfluence{})
	down := driftDelta(Cheerfulness, -1, 0.1, DriftInfluence{})

	if -down <= up {
		t.Errorf("cheerfulness should fall faster than it rises: up %f, down %f", up, down)
	}
}

func TestDriftTraits_CoreDampened(t *testing.T) {
	core := driftDelta(Friendliness, 1, 0.1, DriftInfluence{})
	loose := driftDelta(Gregariousness, 1, 0.1, DriftInfluence{})

	if core <= 0 || loose <= 0 {
		t.Fatalf("expected positive drift on both, got %f / %f", core, loose)
	}
	if core >= loose*0.25 {
		t.Errorf("core facet should drift far less: core %f, non-core %f", core, loose)
	}
}

func TestDriftTraits_BlendedPull(t *testing.T) {
	inf := DriftInfluence{Blended: map[string]float64{"Delighted": 1.0}}

	cheer := driftDelta(Cheerfulness, 0, 0.1, inf)
	if cheer <= 0 {
		t.Errorf("Delighted should pull cheerfulness up, got %f", cheer)
	}

	irr := driftDelta(Irritability, 0, 0.1, inf)
	if irr != 0 {
		t.Errorf("Delighted has no affinity with grumpiness, got drift %f", irr)
	}

	opt := driftDelta(Optimism, 0, 0.1, inf)
	if opt <= 0 || opt >= cheer {
		t.Errorf("core optimism should follow but lag cheerfulness: %f vs %f", opt, cheer)
	}
}

func TestDriftTraits_EmotionIntensityThreshold(t *testing.T) {
	weak := DriftInfluence{Emotion: "Delighted", EmotionIntensity: 0.6}
	if d := driftDelta(Cheerfulness, 0, 0.1, weak); d != 0 {
		t.Errorf("emotion at 0.6 should not drift, got %f", d)
	}

	strong := DriftInfluence{Emotion: "Delighted", EmotionIntensity: 0.9}
	if d := driftDelta(Cheerfulness, 0, 0.1, strong); d <= 0 {
		t.Errorf("emotion at 0.9 should drift cheerfulness up, got %f", d)
	}
}

func TestDriftTraits_MoodPull(t *testing.T) {
	inf := DriftInfluence{Mood: "Excited", MoodIntensity: 0.9}
	if d := driftDelta(Restlessness, 0, 0.1, inf); d <= 0 {
		t.Errorf("sustained Excited mood should raise restlessness, got %f", d)
	}
}

func TestDriftTraits_Clamped(t *testing.T) {
	p := flat(10, 0)
	p.rng = stubSource{uni: 0.5, norm: 10}
	p.DriftTraits(1, DriftInfluence{})
	for f := Facet(0); f < NumFacets; f++ {
		if p.Facet(f) > TraitMax {
			t.Fatalf("facet %s exceeded max: %f", f, p.Facet(f))
		}
	}

	p = flat(1, 0)
	p.rng = stubSource{uni: 0.5, norm: -10}
	p.DriftTraits(1, DriftInfluence{})
	for f := Facet(0); f < NumFacets; f++ {
		if p.Facet(f) < TraitMin {
			t.Fatalf("facet %s fell below min: %f", f, p.Facet(f))
		}
	}
}

func TestDriftTraits_MaturityStabilizes(t *testing.T) {
	young := flat(5, 0)
	young.rng = stubSource{uni: 0.5, norm: 1}
	young.DriftTraits(0.1, DriftInfluence{})

	old := flat(5, 1000)
	old.rng = stubSource{uni: 0.5, norm: 1}
	old.DriftTraits(0.1, DriftInfluence{})

	dy := young.Facet(Anxiety) - 5
	do := old.Facet(Anxiety) - 5
	if do >= dy {
		t.Errorf("mature personality should drift less: young %f, old %f", dy, do)
	}
}

func TestAsymmetryFor(t *testing.T) {
	up, down := AsymmetryFor(Anxiety)
	if up != 1.5 || down != 0.7 {
		t.Errorf("anxiety asymmetry: expected 1.5/0.7, got %f/%f", up, down)
	}
	up, down = AsymmetryFor(Facet(99))
	if up != 1 || down != 1 {
		t.Errorf("invalid facet asymmetry: expected 1/1, got %f/%f", up, down)
	}
}
