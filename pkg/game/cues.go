// Package game provides the cross-cutting managers: audio playback, player
// profiles, and persisted records.
package game

// Sound cue IDs. Gameplay code emits these as fire-and-forget events; the
// AudioManager resolves them to players.
const (
	CueSelect    = "select"
	CueCoin      = "coin"
	CueTargetHit = "target"
	CueReset     = "reset"
	CueWin       = "win"
	CueCollision = "collision"
)

// Music track IDs.
const (
	MusicConnection = "connection"
	MusicTransition = "transition"
	MusicMainLoop   = "main_loop"
)
