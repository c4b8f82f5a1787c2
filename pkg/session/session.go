// Package session sequences the game: device connection, menu flow, the
// three play modes, and the win celebration. One handler per state decides
// the next state and returns side-effect requests (sound cues, music
// changes, persistence writes) as data; callers dispatch them, so the
// decision logic never touches audio or storage directly.
package session

import (
	"github.com/decker502/balancerush/pkg/board"
	"github.com/decker502/balancerush/pkg/game"
	"github.com/decker502/balancerush/pkg/modes"
	"github.com/decker502/balancerush/pkg/physics"
)

// State identifies the active phase of the session. Exactly one is active at
// a time; the machine cycles until the process quits.
type State int

const (
	Connecting State = iota
	Transitioning
	PlayerSelection
	MainMenu
	DifficultySelection
	BalanceHold
	CoinCollector
	Dodge
	Winning
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Transitioning:
		return "Transitioning"
	case PlayerSelection:
		return "PlayerSelection"
	case MainMenu:
		return "MainMenu"
	case DifficultySelection:
		return "DifficultySelection"
	case BalanceHold:
		return "BalanceHold"
	case CoinCollector:
		return "CoinCollector"
	case Dodge:
		return "Dodge"
	case Winning:
		return "Winning"
	}
	return "Unknown"
}

// GameType is the menu's game choice.
type GameType int

const (
	GameNone GameType = iota
	GameBalanceHold
	GameCoinCollector
	GameDodge
)

// EffectKind discriminates Effect values.
type EffectKind int

const (
	// EffectCue fires a one-shot sound; Effect.ID is the cue.
	EffectCue EffectKind = iota
	// EffectMusic starts a looping track; Effect.ID is the track.
	EffectMusic
	// EffectStopMusic halts the current track.
	EffectStopMusic
	// EffectSaveBestTime persists an improved win time for Effect.Player.
	EffectSaveBestTime
	// EffectSaveWin persists an incremented total-win counter.
	EffectSaveWin
	// EffectSaveDodgeScore persists an improved dodge high score.
	EffectSaveDodgeScore
)

// Effect is one side-effect request emitted by a state handler.
type Effect struct {
	Kind   EffectKind
	ID     string
	Player string
	Time   float64
	Score  int
}

// Input is everything the machine consumes in one frame tick.
type Input struct {
	// Sample is the filtered board reading for this frame.
	Sample board.Sample
	// Disconnected is set when the sensor reader reported a device loss.
	Disconnected bool
	// DeviceReady is set while Connecting once device acquisition succeeded.
	DeviceReady bool
	// DT is the real elapsed time since the previous tick, in seconds.
	DT float64
}

// RecordStore is the read side of persistence, consulted when a player is
// selected. Writes go through effects instead.
type RecordStore interface {
	Record(player string) game.PlayerRecord
}

// Context is the single mutable session record. The machine resets it on
// every major transition; nothing else mutates it.
type Context struct {
	State      State
	Player     int // index into game.Players, -1 before selection
	Game       GameType
	Difficulty modes.Difficulty

	// Record mirrors the selected player's persisted scorecard, updated
	// locally as save effects are emitted.
	Record game.PlayerRecord

	Avatar physics.Avatar

	// stateClock is seconds spent in the current state; sessionClock is
	// seconds since the active round started; inactivity is seconds without
	// meaningful weight on the board.
	stateClock   float64
	sessionClock float64
	inactivity   float64
}

// PlayerName returns the selected profile name, or "" before selection.
func (c *Context) PlayerName() string {
	if c.Player < 0 || c.Player >= len(game.Players) {
		return ""
	}
	return game.Players[c.Player].Name
}

// RoundSeconds reports how long the current round has been running.
func (c *Context) RoundSeconds() float64 {
	return c.sessionClock
}

// StateSeconds returns time spent in the current state. Rendering uses it for
// blink and shake phases.
func (c *Context) StateSeconds() float64 {
	return c.stateClock
}

func cueEffect(id string) Effect   { return Effect{Kind: EffectCue, ID: id} }
func musicEffect(id string) Effect { return Effect{Kind: EffectMusic, ID: id} }
