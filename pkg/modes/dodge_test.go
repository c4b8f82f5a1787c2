package modes

import (
	"math/rand"
	"testing"

	"github.com/decker502/balancerush/pkg/board"
	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/game"
	"github.com/decker502/balancerush/pkg/physics"
)

func newDodge(t *testing.T) (*Dodge, *physics.Avatar, *physics.Mover) {
	t.Helper()
	d := NewDodge(config.Default(), rand.New(rand.NewSource(21)))
	a, mover := testRig()
	d.Init(a, mover, Easy)
	return d, a, mover
}

// TestDodgeScoresOncePerRetiredBlock verifies a block that fully exits the
// left edge scores exactly one point and never scores again.
func TestDodgeScoresOncePerRetiredBlock(t *testing.T) {
	d, a, mover := newDodge(t)

	// Place one block just short of the exit, away from the avatar.
	d.Blocks[0] = Block{X: 10, Y: 0, Speed: 1000, Active: true}

	outcome, _ := d.Update(a, mover, centeredFrame(0.1))
	if outcome != OutcomeContinue {
		t.Fatalf("outcome: got %v, want OutcomeContinue", outcome)
	}
	if score, _ := d.Score(); score != 1 {
		t.Fatalf("score after exit: got %d, want 1", score)
	}
	if d.Blocks[0].Active {
		t.Error("retired block should be inactive")
	}

	// Further frames must not double-count the same block.
	for i := 0; i < 5; i++ {
		d.Update(a, mover, centeredFrame(0.1))
	}
	if score, _ := d.Score(); score != 1 {
		t.Errorf("score after extra frames: got %d, want 1", score)
	}
}

// TestDodgeCollisionEndsRound verifies avatar/block overlap is a loss with a
// collision cue.
func TestDodgeCollisionEndsRound(t *testing.T) {
	d, a, mover := newDodge(t)

	d.Blocks[0] = Block{X: a.X, Y: a.Y, Speed: 0, Active: true}
	outcome, cues := d.Update(a, mover, centeredFrame(1.0 / 60))

	if outcome != OutcomeLoss {
		t.Fatalf("outcome: got %v, want OutcomeLoss", outcome)
	}
	if len(cues) != 1 || cues[0] != game.CueCollision {
		t.Errorf("cues: got %v, want [%s]", cues, game.CueCollision)
	}
}

// TestDodgeSpawnCadence verifies blocks appear on the spawn interval and the
// interval decays to its floor without crossing it.
func TestDodgeSpawnCadence(t *testing.T) {
	cfg := config.Default()
	d := NewDodge(cfg, rand.New(rand.NewSource(22)))
	a, mover := testRig()
	d.Init(a, mover, Easy)

	// Avatar parked top-left so spawned blocks can be ignored.
	a.X, a.Y = config.AvatarSize/2, config.AvatarSize/2

	active := func() int {
		n := 0
		for i := range d.Blocks {
			if d.Blocks[i].Active {
				n++
			}
		}
		return n
	}

	// Just before the first interval elapses nothing has spawned. The
	// centered zero-CoB frames never move the avatar, so no collisions.
	steps := int(cfg.Dodge.SpawnInterval/0.1) - 1
	for i := 0; i < steps; i++ {
		if outcome, _ := d.Update(a, mover, centeredFrame(0.1)); outcome != OutcomeContinue {
			t.Fatalf("unexpected outcome %v", outcome)
		}
	}
	if n := active(); n != 0 {
		t.Fatalf("blocks before first interval: got %d, want 0", n)
	}

	d.Update(a, mover, centeredFrame(0.2))
	if n := active(); n != 1 {
		t.Fatalf("blocks after first interval: got %d, want 1", n)
	}

	// A long session pulls the interval down to the floor, never below.
	// Blocks are swept after every frame so the cadence can be observed
	// without the field filling up or a block reaching the avatar.
	for i := 0; i < 60*240; i++ {
		d.Update(a, mover, centeredFrame(1.0/60))
		for j := range d.Blocks {
			d.Blocks[j].Active = false
		}
		if d.spawnInterval < cfg.Dodge.SpawnIntervalFloor {
			t.Fatalf("spawn interval fell through floor: %v", d.spawnInterval)
		}
	}
	if d.spawnInterval != cfg.Dodge.SpawnIntervalFloor {
		t.Errorf("spawn interval after long session: got %v, want floor %v", d.spawnInterval, cfg.Dodge.SpawnIntervalFloor)
	}
}

// TestDodgeIgnoresSubGateInput verifies the avatar holds position without
// meaningful weight instead of springing back to center.
func TestDodgeIgnoresSubGateInput(t *testing.T) {
	d, a, mover := newDodge(t)

	a.X, a.Y = 400, 400
	frame := Frame{Sample: board.Sample{TotalWeight: 100, Valid: true}, DT: 1.0 / 60}
	d.Update(a, mover, frame)
	if a.X != 400 || a.Y != 400 {
		t.Errorf("avatar moved on sub-gate input: (%v, %v)", a.X, a.Y)
	}

	// Gated weight but zero CoB (perfectly centered) also holds position.
	d.Update(a, mover, centeredFrame(1.0/60))
	if a.X != 400 || a.Y != 400 {
		t.Errorf("avatar moved on zero CoB: (%v, %v)", a.X, a.Y)
	}
}

// TestDodgeBlockSpeedRamps verifies later spawns are faster than earlier ones.
func TestDodgeBlockSpeedRamps(t *testing.T) {
	cfg := config.Default()
	d := NewDodge(cfg, rand.New(rand.NewSource(23)))
	a, mover := testRig()
	d.Init(a, mover, Easy)

	var speeds []float64
	for i := 0; i < 60*10 && len(speeds) < 3; i++ {
		a.X, a.Y, a.VX, a.VY = config.AvatarSize/2, config.AvatarSize/2, 0, 0
		before := make([]bool, len(d.Blocks))
		for j := range d.Blocks {
			before[j] = d.Blocks[j].Active
		}
		d.Update(a, mover, centeredFrame(1.0/60))
		for j := range d.Blocks {
			if d.Blocks[j].Active && !before[j] {
				speeds = append(speeds, d.Blocks[j].Speed)
			}
		}
	}

	if len(speeds) < 3 {
		t.Fatalf("expected at least 3 spawns, got %d", len(speeds))
	}
	if !(speeds[0] < speeds[1] && speeds[1] < speeds[2]) {
		t.Errorf("block speeds should increase: %v", speeds)
	}
}
