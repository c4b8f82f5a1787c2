package session

import (
	"github.com/decker502/balancerush/pkg/board"
	"github.com/decker502/balancerush/pkg/config"
)

// Choice slots of the three-zone selector, left to right. ChoiceNone means
// the player is outside every zone or not on the board.
const (
	ChoiceNone = iota
	ChoiceLeft
	ChoiceCenter
	ChoiceRight
)

// Selector implements lean-to-select: the CoB x axis is bucketed into three
// zones and a choice commits after being held continuously for the
// configured duration. Any change of zone restarts the timer from zero.
//
// The same selector drives player, game, and difficulty selection; each
// screen just maps the committed slot differently.
type Selector struct {
	cfg       config.SelectionConfig
	minWeight float64
	choice    int
	timer     float64
}

// NewSelector creates a selector with the given tuning.
func NewSelector(cfg config.SelectionConfig, minWeight float64) *Selector {
	return &Selector{cfg: cfg, minWeight: minWeight}
}

// Reset clears the current choice and hold timer.
func (s *Selector) Reset() {
	s.choice = ChoiceNone
	s.timer = 0
}

// Update buckets the sample and advances the hold timer. It returns the
// currently highlighted choice and whether it committed this frame; a commit
// resets the timer so it fires exactly once per hold.
func (s *Selector) Update(sample board.Sample, dt float64) (choice int, committed bool) {
	prev := s.choice
	s.choice = ChoiceNone
	if sample.TotalWeight > s.minWeight {
		switch {
		case sample.X < -s.cfg.LeftThreshold:
			s.choice = ChoiceLeft
		case sample.X > s.cfg.RightThreshold:
			s.choice = ChoiceRight
		case sample.X > -s.cfg.CenterThreshold && sample.X < s.cfg.CenterThreshold:
			s.choice = ChoiceCenter
		}
	}

	if s.choice != prev {
		s.timer = 0
	}
	if s.choice != ChoiceNone {
		s.timer += dt
	}

	if s.choice != ChoiceNone && s.timer >= s.cfg.HoldSeconds {
		s.timer = 0
		return s.choice, true
	}
	return s.choice, false
}

// Choice returns the currently highlighted slot.
func (s *Selector) Choice() int {
	return s.choice
}

// Progress reports the held fraction of the commit duration, in [0, 1].
func (s *Selector) Progress() float64 {
	p := s.timer / s.cfg.HoldSeconds
	if p > 1 {
		p = 1
	}
	return p
}

// HoldSeconds exposes the commit duration for presentation (blink phase).
func (s *Selector) HoldSeconds() float64 {
	return s.cfg.HoldSeconds
}
