package modes

import (
	"math"
	"math/rand"

	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/game"
	"github.com/decker502/balancerush/pkg/physics"
)

// coinPoolSize is the slot pool capacity, sized for the hard-mode coin count.
const coinPoolSize = 30

// Coin is one pooled coin slot. Slots are reused by flag, never reallocated.
type Coin struct {
	X, Y   float64
	Active bool
}

// CoinCollector spawns one coin at a time; collecting it scores and respawns
// the next at a position away from the avatar and the screen edges. Hard
// difficulty adds a per-coin countdown whose expiry aborts the round.
type CoinCollector struct {
	cfg *config.Config
	rng *rand.Rand

	Coins     [coinPoolSize]Coin
	nextSlot  int
	score     int
	required  int
	diff      Difficulty
	coinTimer float64
}

// NewCoinCollector creates the engine.
func NewCoinCollector(cfg *config.Config, rng *rand.Rand) *CoinCollector {
	return &CoinCollector{cfg: cfg, rng: rng}
}

// Init starts a fresh round with the first coin spawned.
func (c *CoinCollector) Init(a *physics.Avatar, mover *physics.Mover, diff Difficulty) {
	c.diff = diff
	c.score = 0
	c.required = c.cfg.CoinCollector.CoinsToWin[diff]
	c.nextSlot = 0
	for i := range c.Coins {
		c.Coins[i].Active = false
	}
	mover.Reset(a)
	c.spawnCoin(a)
	c.coinTimer = 0
	if diff == Hard {
		c.coinTimer = c.cfg.CoinCollector.HardModeSeconds
	}
}

// spawnCoin activates the next pool slot at a position that keeps the safe
// margin from every screen edge and the minimum distance from the avatar.
// The rejection loop is bounded; if the constraint cannot be satisfied the
// coin lands on the quadrant anchor farthest from the avatar.
func (c *CoinCollector) spawnCoin(a *physics.Avatar) {
	cc := &c.cfg.CoinCollector
	slot := &c.Coins[c.nextSlot%coinPoolSize]
	c.nextSlot++

	for i := 0; i < cc.MaxSpawnAttempts; i++ {
		x := cc.SafeMargin + c.rng.Float64()*(config.WindowWidth-2*cc.SafeMargin)
		y := cc.SafeMargin + c.rng.Float64()*(config.WindowHeight-2*cc.SafeMargin)
		if math.Hypot(x-a.X, y-a.Y) > cc.MinPlayerDist {
			slot.X, slot.Y, slot.Active = x, y, true
			return
		}
	}

	// Fallback: farthest of the four quadrant anchors from the avatar.
	anchors := [4][2]float64{
		{config.WindowWidth / 4, config.WindowHeight / 4},
		{3 * config.WindowWidth / 4, config.WindowHeight / 4},
		{config.WindowWidth / 4, 3 * config.WindowHeight / 4},
		{3 * config.WindowWidth / 4, 3 * config.WindowHeight / 4},
	}
	best := anchors[0]
	bestDist := -1.0
	for _, an := range anchors {
		if d := math.Hypot(an[0]-a.X, an[1]-a.Y); d > bestDist {
			best, bestDist = an, d
		}
	}
	slot.X, slot.Y, slot.Active = best[0], best[1], true
}

// Update advances one frame.
func (c *CoinCollector) Update(a *physics.Avatar, mover *physics.Mover, frame Frame) (Outcome, []string) {
	tx, ty := physics.TargetFor(frame.Sample.X, frame.Sample.Y, c.cfg.Motion.CoBScaleGeneral)
	mover.Step(a, tx, ty, frame.DT)

	cc := &c.cfg.CoinCollector
	if c.diff == Hard {
		c.coinTimer -= frame.DT
		if c.coinTimer <= 0 {
			return OutcomeTimeout, nil
		}
	}

	captureRadius := cc.CoinSize * 1.2
	var cues []string
	for i := range c.Coins {
		coin := &c.Coins[i]
		if !coin.Active {
			continue
		}
		if math.Hypot(a.X-coin.X, a.Y-coin.Y) <= captureRadius {
			coin.Active = false
			c.score++
			cues = append(cues, game.CueCoin)
			if c.score >= c.required {
				return OutcomeWin, cues
			}
			c.spawnCoin(a)
			if c.diff == Hard {
				c.coinTimer = cc.HardModeSeconds
			}
		}
	}
	return OutcomeContinue, cues
}

// Score returns coins collected and coins required.
func (c *CoinCollector) Score() (int, int) {
	return c.score, c.required
}

// TimeLeft returns the hard-mode countdown, zero-floored. Other difficulties
// report zero.
func (c *CoinCollector) TimeLeft() float64 {
	if c.diff != Hard || c.coinTimer < 0 {
		return 0
	}
	return c.coinTimer
}
