// Package particle implements the one-shot confetti burst played while the
// win screen is up. The session machine owns one emitter and relaunches it
// on every win; particles simply expire between rounds.
package particle

import (
	"image/color"
	"math/rand"

	"github.com/decker502/balancerush/pkg/config"
)

// Particle is a single confetti square, integrated under gravity until its
// lifetime runs out.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Lifetime float64
	Color    color.RGBA
}

// palette matches the celebration colors of the cabinet build.
var palette = []color.RGBA{
	{R: 95, G: 215, B: 11, A: 255},
	{R: 114, G: 187, B: 255, A: 255},
	{R: 166, G: 255, B: 166, A: 255},
}

// Emitter holds a fixed pool of confetti particles.
type Emitter struct {
	cfg       config.ConfettiConfig
	particles []Particle
}

// NewEmitter allocates the particle pool once; Burst reuses it.
func NewEmitter(cfg config.ConfettiConfig) *Emitter {
	return &Emitter{
		cfg:       cfg,
		particles: make([]Particle, cfg.Count),
	}
}

// Burst relaunches every particle from (x, y) with a random spread velocity.
func (e *Emitter) Burst(x, y float64) {
	for i := range e.particles {
		e.particles[i] = Particle{
			X:        x,
			Y:        y,
			VX:       rand.Float64()*e.cfg.Spread - e.cfg.Spread/2,
			VY:       rand.Float64()*e.cfg.Spread - e.cfg.Spread/2,
			Lifetime: e.cfg.Lifetime,
			Color:    palette[rand.Intn(len(palette))],
		}
	}
}

// Update advances live particles by dt seconds under gravity.
func (e *Emitter) Update(dt float64) {
	for i := range e.particles {
		p := &e.particles[i]
		if p.Lifetime <= 0 {
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VY += e.cfg.Gravity * dt
		p.Lifetime -= dt
	}
}

// Live appends the particles still alive to dst and returns it.
func (e *Emitter) Live(dst []Particle) []Particle {
	for i := range e.particles {
		if e.particles[i].Lifetime > 0 {
			dst = append(dst, e.particles[i])
		}
	}
	return dst
}
