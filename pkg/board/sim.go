package board

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Simulated board tuning. The lean shift is large enough to clear the default
// dead zone, small enough that opposite corners never go negative.
const (
	simTotalWeight = 8000.0
	simLeanShift   = 600.0
)

// SimulatedDevice synthesizes board events from the keyboard so the whole
// game can be played without hardware: arrow keys lean, Tab steps on and off
// the board. Open never fails and Poll never times out, so disconnect paths
// are only reachable with a real device (or in tests with a fake).
type SimulatedDevice struct {
	standing bool
}

// NewSimulatedDevice returns a keyboard-driven stand-in for the real board.
// The player starts on the board; Tab toggles off to exercise the weight gate
// and inactivity handling.
func NewSimulatedDevice() *SimulatedDevice {
	return &SimulatedDevice{standing: true}
}

// Open acquires the simulated board. Always succeeds.
func (d *SimulatedDevice) Open() error { return nil }

// Close releases the simulated board.
func (d *SimulatedDevice) Close() {}

// Poll returns one synthesized event per call.
func (d *SimulatedDevice) Poll(maxEvents int) ([]Event, error) {
	if maxEvents <= 0 {
		return nil, nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		d.standing = !d.standing
	}
	if !d.standing {
		return []Event{{}}, nil
	}

	var leanX, leanY float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		leanX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		leanX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		leanY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		leanY -= 1
	}

	corner := simTotalWeight / 4
	dx := leanX * simLeanShift / 2
	dy := leanY * simLeanShift / 2
	ev := Event{
		TopLeft:     corner - dx + dy,
		TopRight:    corner + dx + dy,
		BottomLeft:  corner - dx - dy,
		BottomRight: corner + dx - dy,
	}
	return []Event{ev}, nil
}
