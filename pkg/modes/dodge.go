package modes

import (
	"math/rand"

	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/game"
	"github.com/decker502/balancerush/pkg/physics"
)

// Block is one pooled obstacle. Blocks spawn off the right edge, move left,
// and are retired once fully off the left edge.
type Block struct {
	X, Y   float64
	Speed  float64
	Active bool
}

// Dodge has no win condition: blocks come faster and more often until the
// avatar is hit, which ends the round as a loss. Each block that fully exits
// the left edge scores one point. There are no difficulty tiers.
type Dodge struct {
	cfg *config.Config
	rng *rand.Rand

	Blocks        []Block
	spawnTimer    float64
	spawnInterval float64
	blockSpeed    float64
	score         int
}

// NewDodge creates the engine with its block pool allocated once.
func NewDodge(cfg *config.Config, rng *rand.Rand) *Dodge {
	return &Dodge{
		cfg:    cfg,
		rng:    rng,
		Blocks: make([]Block, cfg.Dodge.MaxBlocks),
	}
}

// Init starts a fresh round with an empty field and base speed.
func (d *Dodge) Init(a *physics.Avatar, mover *physics.Mover, _ Difficulty) {
	for i := range d.Blocks {
		d.Blocks[i].Active = false
	}
	d.spawnTimer = 0
	d.spawnInterval = d.cfg.Dodge.SpawnInterval
	d.blockSpeed = d.cfg.Dodge.InitialSpeed
	d.score = 0
	mover.Reset(a)
}

// spawnBlock activates a free pool slot at the right edge with a random
// vertical position. A full pool skips the spawn.
func (d *Dodge) spawnBlock() {
	for i := range d.Blocks {
		if d.Blocks[i].Active {
			continue
		}
		d.Blocks[i] = Block{
			X:      config.WindowWidth + d.cfg.Dodge.BlockWidth,
			Y:      d.rng.Float64() * (config.WindowHeight - d.cfg.Dodge.BlockHeight),
			Speed:  d.blockSpeed,
			Active: true,
		}
		return
	}
}

// Update advances one frame.
func (d *Dodge) Update(a *physics.Avatar, mover *physics.Mover, frame Frame) (Outcome, []string) {
	// Dodge uses the high-sensitivity scale and holds position while there is
	// no meaningful input instead of springing back to center.
	s := frame.Sample
	if s.TotalWeight > d.cfg.Board.MinTotalWeight && (s.X != 0 || s.Y != 0) {
		tx, ty := physics.TargetFor(s.X, s.Y, d.cfg.Motion.CoBScaleDodge)
		mover.Step(a, tx, ty, frame.DT)
	}

	dc := &d.cfg.Dodge
	for i := range d.Blocks {
		b := &d.Blocks[i]
		if !b.Active {
			continue
		}
		b.X -= b.Speed * frame.DT
		if b.X+dc.BlockWidth < 0 {
			b.Active = false
			d.score++
			continue
		}
		if d.overlapsAvatar(a, b) {
			return OutcomeLoss, []string{game.CueCollision}
		}
	}

	d.spawnTimer += frame.DT
	if d.spawnTimer >= d.spawnInterval {
		d.spawnBlock()
		d.spawnTimer = 0
	}
	d.blockSpeed += dc.SpeedIncrement * frame.DT
	d.spawnInterval -= dc.SpawnIntervalDecay * frame.DT
	if d.spawnInterval < dc.SpawnIntervalFloor {
		d.spawnInterval = dc.SpawnIntervalFloor
	}
	return OutcomeContinue, nil
}

// overlapsAvatar is the rectangle-overlap loss test between a block and the
// avatar's square footprint.
func (d *Dodge) overlapsAvatar(a *physics.Avatar, b *Block) bool {
	const half = config.AvatarSize / 2.0
	return b.X < a.X+half &&
		b.X+d.cfg.Dodge.BlockWidth > a.X-half &&
		b.Y < a.Y+half &&
		b.Y+d.cfg.Dodge.BlockHeight > a.Y-half
}

// Score returns blocks survived; Dodge is endless so the requirement is 0.
func (d *Dodge) Score() (int, int) {
	return d.score, 0
}
