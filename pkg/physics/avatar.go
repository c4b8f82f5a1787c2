// Package physics moves the avatar with a critically damped virtual spring so
// the noisy balance signal turns into stable on-screen motion.
package physics

import "github.com/decker502/balancerush/pkg/config"

// Avatar is the player's on-screen body: position and velocity in window
// space. Only Mover mutates it.
type Avatar struct {
	X, Y   float64
	VX, VY float64
}

// Point is one recorded trail position.
type Point struct {
	X, Y float64
}

// Trail is a fixed-capacity ring of the avatar's most recent positions. It is
// rendering-only state; nothing in game logic reads it back.
type Trail struct {
	points [config.TrailLength]Point
	head   int
}

// Fill seeds every slot with the same position so the first frames do not
// draw segments back to the origin.
func (t *Trail) Fill(x, y float64) {
	for i := range t.points {
		t.points[i] = Point{X: x, Y: y}
	}
	t.head = 0
}

// Push records a position, overwriting the oldest entry.
func (t *Trail) Push(x, y float64) {
	t.points[t.head] = Point{X: x, Y: y}
	t.head = (t.head + 1) % len(t.points)
}

// Points appends the trail to dst ordered newest first and returns it.
func (t *Trail) Points(dst []Point) []Point {
	for i := 0; i < len(t.points); i++ {
		idx := (t.head - 1 - i + len(t.points)) % len(t.points)
		dst = append(dst, t.points[idx])
	}
	return dst
}
