package modes

import (
	"math"
	"math/rand"

	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/game"
	"github.com/decker502/balancerush/pkg/physics"
)

// HoldTarget is the bouncing circle the player must track.
type HoldTarget struct {
	X, Y   float64
	VX, VY float64
}

// BalanceHold scores a point each time the avatar stays within the hold
// radius of a moving target for the required duration. Difficulty sets the
// target speed and the points needed to win.
type BalanceHold struct {
	cfg *config.Config
	rng *rand.Rand

	Target     HoldTarget
	holdTimer  float64
	pulseTimer float64
	points     int
	required   int
	diff       Difficulty
}

// NewBalanceHold creates the engine. The RNG is injected so tests can seed it.
func NewBalanceHold(cfg *config.Config, rng *rand.Rand) *BalanceHold {
	return &BalanceHold{cfg: cfg, rng: rng}
}

// Init starts a fresh round: centered avatar, re-randomized target, zeroed
// hold timer and score.
func (b *BalanceHold) Init(a *physics.Avatar, mover *physics.Mover, diff Difficulty) {
	b.diff = diff
	b.points = 0
	b.required = b.cfg.BalanceHold.PointsToWin[diff]
	b.holdTimer = 0
	b.pulseTimer = 0
	mover.Reset(a)
	b.resetTarget()
}

// resetTarget places the target at a random interior position and launches it
// diagonally at the difficulty speed.
func (b *BalanceHold) resetTarget() {
	margin := b.cfg.BalanceHold.GraceRadius
	b.Target.X = margin + b.rng.Float64()*(config.WindowWidth-2*margin)
	b.Target.Y = margin + b.rng.Float64()*(config.WindowHeight-2*margin)

	speed := b.cfg.BalanceHold.TargetSpeeds[b.diff]
	b.Target.VX = speed
	b.Target.VY = speed
	if b.rng.Intn(2) == 0 {
		b.Target.VX = -speed
	}
	if b.rng.Intn(2) == 0 {
		b.Target.VY = -speed
	}
}

// Update advances one frame.
func (b *BalanceHold) Update(a *physics.Avatar, mover *physics.Mover, frame Frame) (Outcome, []string) {
	tx, ty := physics.TargetFor(frame.Sample.X, frame.Sample.Y, b.cfg.Motion.CoBScaleGeneral)
	mover.Step(a, tx, ty, frame.DT)

	// Elastic bounce inside the grace-radius inset so the grace circle never
	// leaves the screen.
	hold := &b.cfg.BalanceHold
	b.Target.X += b.Target.VX * frame.DT
	b.Target.Y += b.Target.VY * frame.DT
	if (b.Target.X < hold.GraceRadius && b.Target.VX < 0) ||
		(b.Target.X > config.WindowWidth-hold.GraceRadius && b.Target.VX > 0) {
		b.Target.VX = -b.Target.VX
	}
	if (b.Target.Y < hold.GraceRadius && b.Target.VY < 0) ||
		(b.Target.Y > config.WindowHeight-hold.GraceRadius && b.Target.VY > 0) {
		b.Target.VY = -b.Target.VY
	}

	b.pulseTimer += frame.DT

	var cues []string
	if math.Hypot(a.X-b.Target.X, a.Y-b.Target.Y) <= hold.HoldRadius {
		b.holdTimer += frame.DT
	} else {
		if b.holdTimer > 0 {
			cues = append(cues, game.CueReset)
		}
		b.holdTimer = 0
	}

	if b.holdTimer >= hold.HoldSeconds {
		b.points++
		cues = append(cues, game.CueTargetHit)
		if b.points >= b.required {
			return OutcomeWin, cues
		}
		b.holdTimer = 0
		mover.Reset(a)
		b.resetTarget()
	}
	return OutcomeContinue, cues
}

// Score returns points scored and points required.
func (b *BalanceHold) Score() (int, int) {
	return b.points, b.required
}

// HoldProgress reports how much of the required hold has elapsed, in [0, 1].
// Rendering uses it for the progress bar and the target outline.
func (b *BalanceHold) HoldProgress() float64 {
	p := b.holdTimer / b.cfg.BalanceHold.HoldSeconds
	if p > 1 {
		p = 1
	}
	return p
}

// PulseScale is the size multiplier for the pulsating target circle.
func (b *BalanceHold) PulseScale() float64 {
	return 1.0 + 0.3*math.Sin(b.pulseTimer*b.cfg.BalanceHold.PulseSpeed)
}
