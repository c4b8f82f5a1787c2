// Package modes implements the three play modes. Each engine owns its entity
// pool, scoring, and win condition; the session state machine drives it one
// Update per frame and reacts to the returned outcome.
package modes

import (
	"github.com/decker502/balancerush/pkg/board"
	"github.com/decker502/balancerush/pkg/physics"
)

// Difficulty selects the per-mode tuning tier.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the menu label for the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return "Unknown"
}

// Outcome is the per-frame verdict of a mode engine.
type Outcome int

const (
	// OutcomeContinue keeps the mode running.
	OutcomeContinue Outcome = iota
	// OutcomeWin ends the round as a victory (celebration, record updates).
	OutcomeWin
	// OutcomeLoss ends the round without victory records (dodge collision).
	OutcomeLoss
	// OutcomeTimeout aborts the round back to the main menu (coin collector
	// hard-mode countdown expiry).
	OutcomeTimeout
)

// Frame is the per-tick input handed to an engine: the filtered board sample
// and the real elapsed seconds since the previous tick.
type Frame struct {
	Sample board.Sample
	DT     float64
}

// Engine is the common mode contract. Init resets the engine and the avatar
// for a fresh round; Update advances one frame and returns the outcome plus
// any sound cues to fire.
type Engine interface {
	Init(a *physics.Avatar, mover *physics.Mover, diff Difficulty)
	Update(a *physics.Avatar, mover *physics.Mover, frame Frame) (Outcome, []string)
	// Score returns the current score and the score required to win.
	// Dodge has no win target and reports 0 as the requirement.
	Score() (current, required int)
}
