// Package emotion implements the fast affect layer: multiple concurrently
// active emotions that decay every tick, habituate under repeated
// triggering, and bias their own recurrence through a short history.
package emotion

import (
	"errors"
	"fmt"

	"github.com/talgya/temperament/internal/personality"
)

// Emotion is one of the closed set of short-lived affect states.
type Emotion uint8

const (
	Surprised Emotion = iota
	Angry
	Afraid
	Delighted
	Disgusted
	Proud
	Ashamed
	Relieved
	Hopeful
	Jealous
	Grateful
	Lonely
	Calm

	NumEmotions = 13
)

var emotionNames = [NumEmotions]string{
	"Surprised", "Angry", "Afraid", "Delighted", "Disgusted", "Proud",
	"Ashamed", "Relieved", "Hopeful", "Jealous", "Grateful", "Lonely",
	"Calm",
}

func (e Emotion) String() string {
	if int(e) < len(emotionNames) {
		return emotionNames[e]
	}
	return fmt.Sprintf("Emotion(%d)", uint8(e))
}

// Valid reports whether e is a member of the closed emotion set.
func (e Emotion) Valid() bool { return int(e) < NumEmotions }

// ErrUnknownEmotion is returned when a value or name falls outside the
// emotion set.
var ErrUnknownEmotion = errors.New("emotion: unknown emotion")

// ErrUnknownEvent is returned by TriggerEvent for unmapped event names.
var ErrUnknownEvent = errors.New("emotion: unknown event")

// ParseEmotion resolves an emotion name to its enum value.
func ParseEmotion(name string) (Emotion, error) {
	for i, n := range emotionNames {
		if n == name {
			return Emotion(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEmotion, name)
}

// facetBias maps each emotion to the personality facets that amplify or
// suppress it. Each entry contributes weight*(facetValue-5)/5 to the
// trigger bias; negative weights invert the facet's influence.
var facetBias = [NumEmotions][]struct {
	facet  personality.Facet
	weight float64
}{
	Surprised: {{personality.Imagination, 0.5}, {personality.Openness, 0.3}},
	Angry:     {{personality.Irritability, 0.7}, {personality.Assertiveness, 0.3}},
	Afraid:    {{personality.Anxiety, 0.8}, {personality.Pessimism, 0.3}},
	Delighted: {{personality.Cheerfulness, 0.7}, {personality.Optimism, 0.5}},
	Disgusted: {{personality.Irritability, 0.5}, {personality.Pessimism, 0.4}},
	Proud:     {{personality.Assertiveness, 0.5}, {personality.Friendliness, 0.3}},
	Ashamed:   {{personality.Anxiety, 0.5}, {personality.Empathy, 0.3}},
	Relieved:  {{personality.Optimism, 0.5}, {personality.Cheerfulness, 0.3}},
	Hopeful:   {{personality.Optimism, 0.8}},
	Jealous:   {{personality.Anxiety, 0.4}, {personality.Restlessness, 0.3}},
	Grateful:  {{personality.Empathy, 0.7}, {personality.Friendliness, 0.3}},
	Lonely:    {{personality.Gregariousness, -0.7}, {personality.Friendliness, -0.3}},
	Calm:      {{personality.Cheerfulness, 0.3}, {personality.Optimism, 0.3}, {personality.Anxiety, -0.7}},
}

// eventTriggers maps external event names to a canned emotional response.
type eventTrigger struct {
	emotion   Emotion
	intensity float64
}

var eventTriggers = map[string]eventTrigger{
	"compliment": {Proud, 0.6},
	"insult":     {Angry, 0.7},
	"threat":     {Afraid, 0.8},
	"success":    {Delighted, 0.7},
	"failure":    {Ashamed, 0.6},
	"rejection":  {Lonely, 0.7},
	"support":    {Grateful, 0.6},
	"surprise":   {Surprised, 0.8},
}
