package personality

// DriftInfluence carries the affective context feeding a drift step. Labels
// are affect names (mood or emotion); composite mood labels simply miss the
// similarity table and contribute nothing.
type DriftInfluence struct {
	Mood             string
	MoodIntensity    float64
	Emotion          string
	EmotionIntensity float64
	// Blended maps emotion labels to intensities. When present it
	// replaces the single Emotion contribution.
	Blended map[string]float64
}

// asymmetry holds the per-facet drift multiplier policy: psychological
// direction is easier one way than the other (anxiety is quick to grow and
// slow to fade, optimism is hard to regain once lost). Up applies to
// positive drift, Down to negative.
var asymmetry = [NumFacets]struct {
	Up, Down float64
}{
	Friendliness:   {1.0, 1.0},
	Assertiveness:  {0.7, 1.3}, // easier to lose than regain
	Gregariousness: {0.8, 1.2}, // easier to lose than regain
	Humor:          {0.8, 1.2}, // easier to lose than regain
	Spontaneity:    {1.1, 0.9}, // easier to increase than decrease
	Openness:       {0.7, 1.0}, // hard to regain if lost
	Imagination:    {1.1, 0.9}, // easier to increase than decrease
	Optimism:       {0.5, 1.0}, // hard to regain if lost
	Cheerfulness:   {0.7, 1.5}, // easier to lose than regain
	Irritability:   {1.3, 0.8}, // easier to increase than decrease
	Pessimism:      {1.2, 0.8}, // easier to increase than decrease
	Vitality:       {0.8, 1.2}, // easier to lose than regain
	Restlessness:   {1.2, 0.8}, // easier to increase than decrease
	Anxiety:        {1.5, 0.7}, // easier to increase than decrease
	Empathy:        {0.6, 1.0}, // hard to regain if lost
	Eccentricity:   {1.2, 0.8}, // easier to increase than decrease
	Creativity:     {0.8, 1.2}, // easier to lose than regain
}

// AsymmetryFor returns the drift multiplier pair for a facet.
func AsymmetryFor(f Facet) (up, down float64) {
	if !f.Valid() {
		return 1, 1
	}
	return asymmetry[f].Up, asymmetry[f].Down
}

// traitAffinity is the hand-tuned fuzzy similarity between traits and
// affect labels (emotions and moods share the label space). Entries in
// [0, 1]; missing pairs read as 0.
var traitAffinity = [NumTraits]map[string]float64{
	Happiness:   {"Delighted": 0.9, "Proud": 0.5, "Grateful": 0.5, "Relieved": 0.4, "Calm": 0.3, "Sad": 0.0, "Angry": 0.0},
	Grumpiness:  {"Angry": 0.8, "Ashamed": 0.4, "Disgusted": 0.5, "Sad": 0.5, "Calm": 0.1, "Delighted": 0.0},
	Sensitivity: {"Afraid": 0.7, "Anxious": 0.7, "Ashamed": 0.5, "Lonely": 0.5, "Surprised": 0.3, "Calm": 0.1},
	EnergyLevel: {"Excited": 0.8, "Delighted": 0.6, "Surprised": 0.5, "Sleepy": 0.0, "Calm": 0.2},
	Playfulness: {"Delighted": 0.7, "Excited": 0.7, "Curious": 0.5, "Bored": 0.0, "Calm": 0.2},
	Curiosity:   {"Curious": 0.9, "Surprised": 0.5, "Confused": 0.5, "Bored": 0.0, "Calm": 0.2},
	Quirkiness:  {"Confused": 0.7, "Surprised": 0.5, "Delighted": 0.3, "Calm": 0.2},
	Socialness:  {"Proud": 0.6, "Grateful": 0.5, "Lonely": 0.5, "Delighted": 0.3, "Calm": 0.2},
}

func affinity(t Trait, label string) float64 {
	if !t.Valid() {
		return 0
	}
	return traitAffinity[t][label]
}

// DriftTraits mutates every facet by a small random step shaped by
// stability, maturity, affective context, and the per-facet asymmetry
// policy. strength is the stddev of the base Gaussian step. Facet values
// are clamped into [1, 10] after mutation; trait values follow since they
// are derived.
func (p *Personality) DriftTraits(strength float64, inf DriftInfluence) {
	mb := p.maturityBias()
	for f := Facet(0); f < NumFacets; f++ {
		meta := facetMeta[f]
		plasticity := 1.0 - meta.stability
		driftFactor := (1.0 - 0.7*mb) * (plasticity + 0.2)

		drift := p.rng.NormFloat64() * strength * driftFactor

		if len(inf.Blended) > 0 {
			for label, inten := range inf.Blended {
				drift += 0.03 * inten * affinity(meta.trait, label) * driftFactor
			}
		} else if inf.Emotion != "" && inf.EmotionIntensity > 0.7 {
			drift += 0.03 * inf.EmotionIntensity * affinity(meta.trait, inf.Emotion) * driftFactor
		}
		if inf.Mood != "" && inf.MoodIntensity > 0.7 {
			drift += 0.02 * inf.MoodIntensity * affinity(meta.trait, inf.Mood) * driftFactor
		}

		switch {
		case drift > 0:
			drift *= asymmetry[f].Up
		case drift < 0:
			drift *= asymmetry[f].Down
		}

		if meta.core {
			drift *= 0.3 * (1.0 - 0.7*mb)
		}

		p.facets[f] = clamp(p.facets[f]+drift, TraitMin, TraitMax)
	}
}
