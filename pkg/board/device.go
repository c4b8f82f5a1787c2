// Package board turns raw four-corner balance-board readings into a filtered
// center-of-balance signal and detects disconnects.
package board

import "errors"

// ErrDisconnected is reported by Reader.Poll when the board is gone, either
// because a poll call failed hard or because too many polls in a row came
// back empty.
var ErrDisconnected = errors.New("balance board disconnected")

// Event is one raw board sample: the four corner load cells in device units
// (the summed corners of an adult standing on the board land well above the
// configured weight gate).
type Event struct {
	TopLeft     float64
	TopRight    float64
	BottomLeft  float64
	BottomRight float64
}

// Device is the hardware collaborator. Open acquires the board, Poll drains
// up to maxEvents pending samples without blocking beyond the device's own
// bounded wait, Close releases it.
//
// Implementations: SimulatedDevice (keyboard-driven, always available) and
// whatever real transport the platform provides.
type Device interface {
	Open() error
	Close()
	Poll(maxEvents int) ([]Event, error)
}

// Sample is one filtered CoB reading handed to the game each frame.
//
// Valid is false only on disconnect; a frame with nobody on the board is a
// valid sample with zero CoB and the measured (sub-gate) weight.
type Sample struct {
	X           float64
	Y           float64
	TotalWeight float64
	Valid       bool
}
