package physics

import (
	"math"
	"testing"

	"github.com/decker502/balancerush/pkg/config"
)

func testMover() *Mover {
	return NewMover(config.Default().Motion)
}

// TestStepMovesTowardTarget verifies the spring pulls the avatar the right way.
func TestStepMovesTowardTarget(t *testing.T) {
	m := testMover()
	a := &Avatar{}
	m.Reset(a)
	startX := a.X

	for i := 0; i < 60; i++ {
		m.Step(a, startX+300, a.Y, 1.0/60)
	}
	if a.X <= startX {
		t.Errorf("avatar did not move toward target: started %v, now %v", startX, a.X)
	}
}

// TestStepFrameRateIndependence verifies one 0.1s step lands where ten 0.01s
// steps land, within integration tolerance.
func TestStepFrameRateIndependence(t *testing.T) {
	coarse := testMover()
	fine := testMover()
	a1 := &Avatar{}
	a2 := &Avatar{}
	coarse.Reset(a1)
	fine.Reset(a2)

	targetX, targetY := a1.X+200, a1.Y-150

	coarse.Step(a1, targetX, targetY, 0.1)
	for i := 0; i < 10; i++ {
		fine.Step(a2, targetX, targetY, 0.01)
	}

	// Euler integration error is O(dt), so the coarse step overshoots the
	// fine path slightly. Both must land within a small fraction of the
	// commanded travel and well under an avatar radius.
	if dx := math.Abs(a1.X - a2.X); dx > 12 {
		t.Errorf("x drift between step sizes: %v", dx)
	}
	if dy := math.Abs(a1.Y - a2.Y); dy > 12 {
		t.Errorf("y drift between step sizes: %v", dy)
	}
}

// TestStepSettlesAtTarget verifies the damped spring converges without
// sustained oscillation.
func TestStepSettlesAtTarget(t *testing.T) {
	m := testMover()
	a := &Avatar{}
	m.Reset(a)
	targetX, targetY := a.X+100.0, a.Y+50.0

	for i := 0; i < 600; i++ { // 10 simulated seconds
		m.Step(a, targetX, targetY, 1.0/60)
	}
	if math.Abs(a.X-targetX) > 1 || math.Abs(a.Y-targetY) > 1 {
		t.Errorf("avatar did not settle: at (%v, %v), target (%v, %v)", a.X, a.Y, targetX, targetY)
	}
}

// TestStepClampsToPlayField verifies wall contact clamps position and zeroes
// the velocity component into the wall.
func TestStepClampsToPlayField(t *testing.T) {
	m := testMover()
	a := &Avatar{}
	m.Reset(a)

	for i := 0; i < 600; i++ {
		m.Step(a, -5000, a.Y, 1.0/60)
	}
	const half = config.AvatarSize / 2
	if a.X != half {
		t.Errorf("avatar x: got %v, want clamp at %v", a.X, half)
	}
	if a.VX != 0 {
		t.Errorf("velocity into wall should be zeroed, got %v", a.VX)
	}
}

// TestTargetForInvertsY verifies forward lean maps to upward screen motion.
func TestTargetForInvertsY(t *testing.T) {
	cfg := config.Default().Motion
	x, y := TargetFor(0, 1000, cfg.CoBScaleGeneral)
	if x != config.WindowWidth/2 {
		t.Errorf("zero x lean should stay centered, got %v", x)
	}
	if y >= config.WindowHeight/2 {
		t.Errorf("positive y CoB should move target up, got %v", y)
	}
}

// TestTargetForDodgeSensitivity verifies the dodge scale moves further for
// the same lean.
func TestTargetForDodgeSensitivity(t *testing.T) {
	cfg := config.Default().Motion
	gx, _ := TargetFor(1000, 0, cfg.CoBScaleGeneral)
	dx, _ := TargetFor(1000, 0, cfg.CoBScaleDodge)
	if dx-config.WindowWidth/2 <= gx-config.WindowWidth/2 {
		t.Errorf("dodge scale should be more sensitive: general %v, dodge %v", gx, dx)
	}
}

// TestTrailOrder verifies Points returns newest first and overwrites oldest.
func TestTrailOrder(t *testing.T) {
	var tr Trail
	tr.Fill(0, 0)
	for i := 1; i <= config.TrailLength+5; i++ {
		tr.Push(float64(i), 0)
	}

	pts := tr.Points(nil)
	if len(pts) != config.TrailLength {
		t.Fatalf("trail length: got %d, want %d", len(pts), config.TrailLength)
	}
	if pts[0].X != float64(config.TrailLength+5) {
		t.Errorf("newest point: got %v, want %v", pts[0].X, config.TrailLength+5)
	}
	// Oldest surviving point is 5 pushes past the initial fill.
	if pts[len(pts)-1].X != 6 {
		t.Errorf("oldest point: got %v, want 6", pts[len(pts)-1].X)
	}
}
