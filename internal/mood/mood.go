// Package mood implements the medium-speed affect layer: a labeled state
// scored from traits, situational context, and active emotions, smoothed by
// inertia and reconciled against the emotion layer.
package mood

import (
	"fmt"

	"github.com/talgya/temperament/internal/emotion"
	"github.com/talgya/temperament/internal/personality"
)

// Mood is one of the closed set of candidate mood states. The current mood
// label can additionally be a composite string ("Happy (Delighted)"), an
// emotion label when a strong emotion hijacks the layer, or the literal
// conflict label "Uncertain".
type Mood uint8

const (
	Happy Mood = iota
	Neutral
	Bored
	Sleepy
	Sad
	Curious
	Hot
	Cold
	Excited
	Anxious
	Content
	Confused
	Uncertain

	NumMoods = 13
)

var moodNames = [NumMoods]string{
	"Happy", "Neutral", "Bored", "Sleepy", "Sad", "Curious", "Hot",
	"Cold", "Excited", "Anxious", "Content", "Confused", "Uncertain",
}

func (m Mood) String() string {
	if int(m) < len(moodNames) {
		return moodNames[m]
	}
	return fmt.Sprintf("Mood(%d)", uint8(m))
}

// Valid reports whether m is a member of the closed mood set.
func (m Mood) Valid() bool { return int(m) < NumMoods }

// moodWithLabel resolves a label to a mood if one matches exactly.
func moodWithLabel(label string) (Mood, bool) {
	for i, n := range moodNames {
		if n == label {
			return Mood(i), true
		}
	}
	return 0, false
}

// Activity is what the agent's environment is currently doing.
type Activity uint8

const (
	ActivityNone Activity = iota
	ActivityTalking
	ActivityPlaying
)

func (a Activity) String() string {
	switch a {
	case ActivityTalking:
		return "talking"
	case ActivityPlaying:
		return "playing"
	default:
		return "none"
	}
}

// Context is the situational input to a mood update.
type Context struct {
	Temperature float64  `json:"temperature"` // Celsius
	Activity    Activity `json:"activity"`
}

// DefaultContext returns a mild, idle environment.
func DefaultContext() Context {
	return Context{Temperature: 22, Activity: ActivityNone}
}

// moodWeights scores each candidate mood from trait values. Missing traits
// contribute nothing; Neutral is pinned to zero after scoring.
var moodWeights = [NumMoods][]struct {
	trait  personality.Trait
	weight float64
}{
	Happy:     {{personality.Happiness, 0.8}, {personality.EnergyLevel, 0.3}, {personality.Socialness, 0.2}, {personality.Grumpiness, -0.3}},
	Sad:       {{personality.Grumpiness, 0.7}, {personality.Sensitivity, 0.4}, {personality.Happiness, -0.4}, {personality.EnergyLevel, -0.2}},
	Curious:   {{personality.Curiosity, 0.8}, {personality.EnergyLevel, 0.2}, {personality.Playfulness, 0.2}, {personality.Sensitivity, -0.2}},
	Sleepy:    {{personality.EnergyLevel, -1.0}, {personality.Happiness, -0.2}, {personality.Playfulness, -0.2}},
	Excited:   {{personality.Playfulness, 0.7}, {personality.EnergyLevel, 0.5}, {personality.Happiness, 0.3}, {personality.Grumpiness, -0.2}},
	Anxious:   {{personality.Sensitivity, 0.8}, {personality.Grumpiness, 0.3}, {personality.EnergyLevel, -0.2}, {personality.Happiness, -0.2}},
	Confused:  {{personality.Quirkiness, 0.8}, {personality.Curiosity, 0.4}, {personality.Happiness, -0.2}},
	Content:   {{personality.Happiness, 0.6}, {personality.EnergyLevel, 0.3}, {personality.Socialness, 0.3}, {personality.Grumpiness, -0.2}},
	Bored:     {{personality.Curiosity, -0.8}, {personality.EnergyLevel, -0.3}, {personality.Playfulness, -0.3}, {personality.Happiness, -0.2}},
	Hot:       {{personality.EnergyLevel, -0.2}, {personality.Grumpiness, 0.2}},
	Cold:      {{personality.EnergyLevel, -0.2}, {personality.Sensitivity, 0.2}},
	Neutral:   {},
	Uncertain: {{personality.Sensitivity, 0.2}, {personality.Quirkiness, 0.2}, {personality.Happiness, -0.2}},
}

// moodEmotion maps a freshly-entered mood to the emotion it stirs up.
// Hot has no mapped emotion.
var moodEmotion = map[Mood]emotion.Emotion{
	Happy:     emotion.Delighted,
	Sad:       emotion.Afraid,
	Curious:   emotion.Surprised,
	Sleepy:    emotion.Calm,
	Excited:   emotion.Surprised,
	Anxious:   emotion.Afraid,
	Confused:  emotion.Ashamed,
	Content:   emotion.Relieved,
	Bored:     emotion.Lonely,
	Cold:      emotion.Lonely,
	Neutral:   emotion.Calm,
	Uncertain: emotion.Ashamed,
}
