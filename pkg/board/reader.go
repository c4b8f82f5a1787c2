package board

import (
	"log"
	"math"

	"github.com/decker502/balancerush/pkg/config"
)

// cornerScale converts the device's centigram corner readings to the CoB unit
// space the rest of the game is tuned in.
const cornerScale = 100.0

// Reader converts Device events into Samples. It owns the anti-noise weight
// gate, the per-axis dead zone, and the consecutive-timeout disconnect
// counter; it touches no other game state.
type Reader struct {
	device       Device
	cfg          config.BoardConfig
	timeoutCount int

	// last gated CoB, reported again on frames where no event arrived
	lastX, lastY float64
	lastWeight   float64
}

// NewReader creates a Reader over the given device.
func NewReader(device Device, cfg config.BoardConfig) *Reader {
	return &Reader{device: device, cfg: cfg}
}

// Reset clears the timeout counter and the held CoB value. Called after a
// reconnect so stale state from the previous session cannot leak through.
func (r *Reader) Reset() {
	r.timeoutCount = 0
	r.lastX, r.lastY, r.lastWeight = 0, 0, 0
}

// Poll drains pending device events and returns the latest filtered sample.
//
// An empty poll increments the timeout counter; reaching the threshold, or a
// hard device error, reports a disconnect (Sample.Valid=false together with
// ErrDisconnected). Any real event resets the counter.
func (r *Reader) Poll() (Sample, error) {
	events, err := r.device.Poll(r.cfg.MaxEventsPerPoll)
	if err != nil {
		log.Printf("[Board] poll failed: %v", err)
		return Sample{}, ErrDisconnected
	}

	if len(events) == 0 {
		r.timeoutCount++
		if r.timeoutCount >= r.cfg.PollTimeoutThreshold {
			log.Printf("[Board] %d consecutive poll timeouts, treating as disconnect", r.timeoutCount)
			return Sample{}, ErrDisconnected
		}
		return Sample{X: r.lastX, Y: r.lastY, TotalWeight: r.lastWeight, Valid: true}, nil
	}
	r.timeoutCount = 0

	for _, ev := range events {
		tl := ev.TopLeft / cornerScale
		tr := ev.TopRight / cornerScale
		bl := ev.BottomLeft / cornerScale
		br := ev.BottomRight / cornerScale
		total := (tl + tr + bl + br) * cornerScale
		r.lastWeight = total

		if total <= r.cfg.MinTotalWeight {
			// Nobody on the board: no CoB, not a disconnect.
			r.lastX, r.lastY = 0, 0
			continue
		}

		x := (tr + br - tl - bl) * cornerScale
		y := (tl + tr - bl - br) * cornerScale
		if math.Abs(x) < r.cfg.DeadZone {
			x = 0
		}
		if math.Abs(y) < r.cfg.DeadZone {
			y = 0
		}
		r.lastX, r.lastY = x, y
	}

	return Sample{X: r.lastX, Y: r.lastY, TotalWeight: r.lastWeight, Valid: true}, nil
}
