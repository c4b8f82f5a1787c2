package physics

import "github.com/decker502/balancerush/pkg/config"

// Mover integrates the avatar toward a target position with a spring-damper
// model. Fixed physical constants combined with the real frame dt keep the
// response identical at 30 or 60 Hz.
type Mover struct {
	cfg   config.MotionConfig
	trail Trail
}

// NewMover creates a Mover with the given tuning.
func NewMover(cfg config.MotionConfig) *Mover {
	return &Mover{cfg: cfg}
}

// Reset recenters the avatar and seeds the trail at its position.
func (m *Mover) Reset(a *Avatar) {
	a.X = config.WindowWidth / 2
	a.Y = config.WindowHeight / 2
	a.VX, a.VY = 0, 0
	m.trail.Fill(a.X, a.Y)
}

// Step advances the avatar one frame toward (targetX, targetY) using
// explicit Euler over dt seconds, clamps it to the play field interior, and
// records the new position in the trail. Hitting a wall zeroes the velocity
// component into it (inelastic contact).
func (m *Mover) Step(a *Avatar, targetX, targetY, dt float64) {
	fx := (targetX-a.X)*m.cfg.SpringConstant - a.VX*m.cfg.DampingFactor
	fy := (targetY-a.Y)*m.cfg.SpringConstant - a.VY*m.cfg.DampingFactor
	a.VX += fx * dt
	a.VY += fy * dt
	a.X += a.VX * dt
	a.Y += a.VY * dt

	const half = config.AvatarSize / 2
	if a.X < half {
		a.X, a.VX = half, 0
	}
	if a.X > config.WindowWidth-half {
		a.X, a.VX = config.WindowWidth-half, 0
	}
	if a.Y < half {
		a.Y, a.VY = half, 0
	}
	if a.Y > config.WindowHeight-half {
		a.Y, a.VY = config.WindowHeight-half, 0
	}

	m.trail.Push(a.X, a.Y)
}

// TargetFor maps a CoB sample to the window-space position the spring pulls
// toward. The y axis is inverted: leaning forward moves the avatar up. scale
// selects the mode sensitivity (general vs dodge).
func TargetFor(cobX, cobY, scale float64) (float64, float64) {
	x := config.WindowWidth/2 + cobX*scale*config.WindowWidth
	y := config.WindowHeight/2 - cobY*scale*config.WindowHeight
	return x, y
}

// Trail exposes the motion trail for rendering.
func (m *Mover) Trail() *Trail {
	return &m.trail
}
