// Package engine wires one agent's three affect layers together and drives
// them with a tick loop.
package engine

import (
	"github.com/google/uuid"

	"github.com/talgya/temperament/internal/emotion"
	"github.com/talgya/temperament/internal/entropy"
	"github.com/talgya/temperament/internal/mood"
	"github.com/talgya/temperament/internal/personality"
)

// Agent bundles an independent personality, emotion system, and mood system.
// Agents share nothing: simulating several means constructing several, each
// with its own entropy source.
type Agent struct {
	ID   uuid.UUID
	Name string

	Personality *personality.Personality
	Emotions    *emotion.System
	Moods       *mood.System

	Tick uint64
}

// NewAgent constructs an agent whose three layers share the given entropy
// source.
func NewAgent(name string, cfg personality.Config, rng entropy.Source) *Agent {
	p := personality.New(cfg, rng)
	es := emotion.NewSystem(p, rng)
	ms := mood.NewSystem(p, es, rng)
	return &Agent{
		ID:          uuid.New(),
		Name:        name,
		Personality: p,
		Emotions:    es,
		Moods:       ms,
	}
}

// Step advances the agent one tick: age, then emotions, then mood. The mood
// update may itself trigger emotions and personality drift; all coupling is
// synchronous within this call.
func (a *Agent) Step(ctx mood.Context) {
	a.Tick++
	a.Personality.AgeUp(1)
	a.Emotions.Update()
	a.Moods.UpdateMood(ctx)
}

// Snapshot is a consistent copy of the full affect state at one tick, safe
// to hand to observers on other goroutines.
type Snapshot struct {
	Tick     uint64  `json:"tick"`
	Name     string  `json:"name"`
	Age      float64 `json:"age"`
	Maturity float64 `json:"maturity"`

	Traits map[string]float64 `json:"traits"`

	Emotion emotion.Snapshot `json:"emotion"`
	Mood    mood.Snapshot    `json:"mood"`
}

// TakeSnapshot captures the agent's current state. Must be called from the
// tick goroutine.
func (a *Agent) TakeSnapshot() Snapshot {
	return Snapshot{
		Tick:     a.Tick,
		Name:     a.Name,
		Age:      a.Personality.Age(),
		Maturity: a.Personality.Maturity(),
		Traits:   a.Personality.Snapshot(false),
		Emotion:  a.Emotions.TakeSnapshot(),
		Mood:     a.Moods.TakeSnapshot(),
	}
}
