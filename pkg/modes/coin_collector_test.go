package modes

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/game"
)

func activeCoin(t *testing.T, c *CoinCollector) *Coin {
	t.Helper()
	for i := range c.Coins {
		if c.Coins[i].Active {
			return &c.Coins[i]
		}
	}
	t.Fatal("no active coin")
	return nil
}

// TestCoinSpawnProperty verifies every sampled spawn keeps the safe margin
// from all edges and the minimum distance from the avatar.
func TestCoinSpawnProperty(t *testing.T) {
	cfg := config.Default()
	c := NewCoinCollector(cfg, rand.New(rand.NewSource(7)))
	a, mover := testRig()
	c.Init(a, mover, Easy)
	for i := range c.Coins {
		c.Coins[i].Active = false
	}

	cc := cfg.CoinCollector
	for i := 0; i < 500; i++ {
		// Move the avatar around so the distance constraint is exercised
		// from many positions.
		a.X = cc.SafeMargin + rand.Float64()*(config.WindowWidth-2*cc.SafeMargin)
		a.Y = cc.SafeMargin + rand.Float64()*(config.WindowHeight-2*cc.SafeMargin)
		c.spawnCoin(a)

		coin := activeCoin(t, c)
		if coin.X < cc.SafeMargin || coin.X > config.WindowWidth-cc.SafeMargin ||
			coin.Y < cc.SafeMargin || coin.Y > config.WindowHeight-cc.SafeMargin {
			t.Fatalf("spawn %d outside safe margin: (%v, %v)", i, coin.X, coin.Y)
		}
		if d := math.Hypot(coin.X-a.X, coin.Y-a.Y); d <= cc.MinPlayerDist {
			t.Fatalf("spawn %d too close to avatar: %v", i, d)
		}
		coin.Active = false
	}
}

// TestCoinCollectExactlyOneActive verifies collecting deactivates the coin,
// scores once, and leaves exactly one active replacement.
func TestCoinCollectExactlyOneActive(t *testing.T) {
	cfg := config.Default()
	c := NewCoinCollector(cfg, rand.New(rand.NewSource(8)))
	a, mover := testRig()
	c.Init(a, mover, Easy)

	coin := activeCoin(t, c)
	a.X, a.Y = coin.X, coin.Y
	a.VX, a.VY = 0, 0
	_, cues := c.Update(a, mover, centeredFrame(1.0/60))

	if score, _ := c.Score(); score != 1 {
		t.Errorf("score after collect: got %d, want 1", score)
	}
	if len(cues) != 1 || cues[0] != game.CueCoin {
		t.Errorf("cues: got %v, want [%s]", cues, game.CueCoin)
	}
	active := 0
	for i := range c.Coins {
		if c.Coins[i].Active {
			active++
		}
	}
	if active != 1 {
		t.Errorf("active coins after collect: got %d, want 1", active)
	}
}

// TestCoinCollectorWinAtTarget verifies the round ends the moment the
// difficulty's coin count is reached.
func TestCoinCollectorWinAtTarget(t *testing.T) {
	cfg := config.Default()
	c := NewCoinCollector(cfg, rand.New(rand.NewSource(9)))
	a, mover := testRig()
	c.Init(a, mover, Easy)

	outcome := OutcomeContinue
	collected := 0
	for i := 0; i < 1000 && outcome == OutcomeContinue; i++ {
		coin := activeCoin(t, c)
		a.X, a.Y = coin.X, coin.Y
		a.VX, a.VY = 0, 0
		outcome, _ = c.Update(a, mover, centeredFrame(1.0/60))
		collected++
	}

	if outcome != OutcomeWin {
		t.Fatalf("outcome: got %v, want OutcomeWin", outcome)
	}
	if score, required := c.Score(); score != required || score != cfg.CoinCollector.CoinsToWin[Easy] {
		t.Errorf("score: got %d, want %d", score, cfg.CoinCollector.CoinsToWin[Easy])
	}
	if collected != cfg.CoinCollector.CoinsToWin[Easy] {
		t.Errorf("collect frames: got %d, want %d", collected, cfg.CoinCollector.CoinsToWin[Easy])
	}
}

// TestCoinCollectorHardTimeout verifies countdown expiry aborts the round.
func TestCoinCollectorHardTimeout(t *testing.T) {
	cfg := config.Default()
	c := NewCoinCollector(cfg, rand.New(rand.NewSource(10)))
	a, mover := testRig()
	c.Init(a, mover, Hard)

	if c.TimeLeft() != cfg.CoinCollector.HardModeSeconds {
		t.Fatalf("initial countdown: got %v, want %v", c.TimeLeft(), cfg.CoinCollector.HardModeSeconds)
	}

	// Keep the avatar away from the coin and burn the countdown.
	outcome := OutcomeContinue
	for i := 0; i < 200 && outcome == OutcomeContinue; i++ {
		a.X, a.Y = config.AvatarSize/2, config.AvatarSize/2
		a.VX, a.VY = 0, 0
		outcome, _ = c.Update(a, mover, centeredFrame(0.1))
	}
	if outcome != OutcomeTimeout {
		t.Errorf("outcome: got %v, want OutcomeTimeout", outcome)
	}
}

// TestCoinCollectorEasyHasNoCountdown verifies non-hard tiers never time out.
func TestCoinCollectorEasyHasNoCountdown(t *testing.T) {
	cfg := config.Default()
	c := NewCoinCollector(cfg, rand.New(rand.NewSource(11)))
	a, mover := testRig()
	c.Init(a, mover, Easy)

	for i := 0; i < 400; i++ {
		a.X, a.Y = config.AvatarSize/2, config.AvatarSize/2
		a.VX, a.VY = 0, 0
		outcome, _ := c.Update(a, mover, centeredFrame(0.1))
		if outcome != OutcomeContinue {
			t.Fatalf("easy mode ended with %v after %v seconds", outcome, float64(i)*0.1)
		}
	}
	if c.TimeLeft() != 0 {
		t.Errorf("easy TimeLeft: got %v, want 0", c.TimeLeft())
	}
}

// TestCoinSpawnFallbackTerminates verifies the bounded sampler still places a
// coin when the distance constraint is impossible to satisfy.
func TestCoinSpawnFallbackTerminates(t *testing.T) {
	cfg := config.Default()
	// Make the constraint unsatisfiable: demand more clearance than the
	// playfield diagonal.
	cfg.CoinCollector.MinPlayerDist = 5000
	c := NewCoinCollector(cfg, rand.New(rand.NewSource(12)))
	a, mover := testRig()
	c.Init(a, mover, Easy)

	coin := activeCoin(t, c)
	if !coin.Active {
		t.Fatal("fallback spawn should still activate a coin")
	}
	if coin.X <= 0 || coin.X >= config.WindowWidth || coin.Y <= 0 || coin.Y >= config.WindowHeight {
		t.Errorf("fallback coin off screen: (%v, %v)", coin.X, coin.Y)
	}
}
