package board

import (
	"errors"
	"testing"

	"github.com/decker502/balancerush/pkg/config"
)

// fakeDevice replays a scripted sequence of poll results.
type fakeDevice struct {
	script []pollResult
	calls  int
}

type pollResult struct {
	events []Event
	err    error
}

func (d *fakeDevice) Open() error { return nil }
func (d *fakeDevice) Close()      {}

func (d *fakeDevice) Poll(maxEvents int) ([]Event, error) {
	if d.calls >= len(d.script) {
		return nil, nil
	}
	res := d.script[d.calls]
	d.calls++
	if len(res.events) > maxEvents {
		return res.events[:maxEvents], res.err
	}
	return res.events, res.err
}

func testBoardConfig() config.BoardConfig {
	return config.Default().Board
}

// standingEvent builds an event with the given raw corner offsets applied to
// an 8000-unit centered stance.
func standingEvent(dx, dy float64) Event {
	const corner = 2000.0
	return Event{
		TopLeft:     corner - dx + dy,
		TopRight:    corner + dx + dy,
		BottomLeft:  corner - dx - dy,
		BottomRight: corner + dx - dy,
	}
}

// TestPollBelowWeightGate verifies that sub-gate samples report exactly (0,0).
func TestPollBelowWeightGate(t *testing.T) {
	dev := &fakeDevice{script: []pollResult{
		{events: []Event{{TopLeft: 100, TopRight: 100, BottomLeft: 100, BottomRight: 100}}},
	}}
	r := NewReader(dev, testBoardConfig())

	s, err := r.Poll()
	if err != nil {
		t.Fatalf("Poll() error: %v", err)
	}
	if !s.Valid {
		t.Error("sub-gate sample should still be valid")
	}
	if s.X != 0 || s.Y != 0 {
		t.Errorf("CoB below weight gate: got (%v, %v), want (0, 0)", s.X, s.Y)
	}
	if s.TotalWeight != 400 {
		t.Errorf("TotalWeight: got %v, want 400", s.TotalWeight)
	}
}

// TestPollDeadZonePerAxis verifies each axis is zeroed independently.
func TestPollDeadZonePerAxis(t *testing.T) {
	tests := []struct {
		name         string
		dx, dy       float64
		wantX, wantY float64
	}{
		{"both inside dead zone", 50, 50, 0, 0},
		{"x outside, y inside", 200, 50, 800, 0},
		{"x inside, y outside", 50, 200, 0, 800},
		{"both outside", 200, 200, 800, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &fakeDevice{script: []pollResult{{events: []Event{standingEvent(tt.dx, tt.dy)}}}}
			r := NewReader(dev, testBoardConfig())

			s, err := r.Poll()
			if err != nil {
				t.Fatalf("Poll() error: %v", err)
			}
			if s.X != tt.wantX || s.Y != tt.wantY {
				t.Errorf("CoB: got (%v, %v), want (%v, %v)", s.X, s.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestPollTimeoutThreshold verifies that only sustained empty polls disconnect.
func TestPollTimeoutThreshold(t *testing.T) {
	dev := &fakeDevice{} // empty script: every poll is a timeout
	cfg := testBoardConfig()
	r := NewReader(dev, cfg)

	for i := 0; i < cfg.PollTimeoutThreshold-1; i++ {
		s, err := r.Poll()
		if err != nil {
			t.Fatalf("poll %d: unexpected disconnect: %v", i, err)
		}
		if !s.Valid {
			t.Fatalf("poll %d: sample should stay valid before threshold", i)
		}
	}

	if _, err := r.Poll(); !errors.Is(err, ErrDisconnected) {
		t.Errorf("poll at threshold: got %v, want ErrDisconnected", err)
	}
}

// TestPollEventResetsTimeoutCounter verifies a real event clears the counter.
func TestPollEventResetsTimeoutCounter(t *testing.T) {
	cfg := testBoardConfig()
	script := make([]pollResult, 0, cfg.PollTimeoutThreshold+1)
	for i := 0; i < cfg.PollTimeoutThreshold-1; i++ {
		script = append(script, pollResult{})
	}
	script = append(script, pollResult{events: []Event{standingEvent(200, 0)}})
	dev := &fakeDevice{script: script}
	r := NewReader(dev, cfg)

	for i := 0; i < cfg.PollTimeoutThreshold; i++ {
		if _, err := r.Poll(); err != nil {
			t.Fatalf("poll %d: unexpected error: %v", i, err)
		}
	}
	// Counter was reset by the event; the next run of timeouts starts over.
	if _, err := r.Poll(); err != nil {
		t.Errorf("first timeout after event should not disconnect, got %v", err)
	}
}

// TestPollHardError verifies a device error is an immediate disconnect.
func TestPollHardError(t *testing.T) {
	dev := &fakeDevice{script: []pollResult{{err: errors.New("hci read failed")}}}
	r := NewReader(dev, testBoardConfig())

	if _, err := r.Poll(); !errors.Is(err, ErrDisconnected) {
		t.Errorf("hard poll error: got %v, want ErrDisconnected", err)
	}
}

// TestResetClearsHeldState verifies Reset drops the held CoB and counter.
func TestResetClearsHeldState(t *testing.T) {
	dev := &fakeDevice{script: []pollResult{{events: []Event{standingEvent(200, 0)}}}}
	r := NewReader(dev, testBoardConfig())
	if _, err := r.Poll(); err != nil {
		t.Fatalf("Poll() error: %v", err)
	}

	r.Reset()
	s, err := r.Poll() // empty poll: would repeat held CoB if not reset
	if err != nil {
		t.Fatalf("Poll() error: %v", err)
	}
	if s.X != 0 || s.Y != 0 || s.TotalWeight != 0 {
		t.Errorf("after Reset: got (%v, %v, %v), want zeroes", s.X, s.Y, s.TotalWeight)
	}
}
