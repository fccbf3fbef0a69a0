// Package shape generates the procedural vector outlines used by the game's
// line-art renderer: asteroid rocks, the player ship, the saucer hull and
// debris shards.
//
// All outlines are closed polygons in local coordinates centered on the
// entity origin, with screen conventions (Y grows downward). Randomized
// outlines take an injected *rand.Rand so the same seed always yields the
// same rock, which keeps replays and tests deterministic.
package shape

import (
	"math"
	"math/rand"
)

// Point is a vertex in local entity coordinates.
type Point struct {
	X, Y float64
}

// Outline is a closed polygon; the renderer connects the last vertex back to
// the first.
type Outline []Point

// Transformed returns a copy of the outline rotated by rot (radians,
// clockwise on screen), scaled uniformly and translated to (x, y).
func (o Outline) Transformed(x, y, rot, scale float64) Outline {
	sin, cos := math.Sincos(rot)
	out := make(Outline, len(o))
	for i, p := range o {
		px := p.X * scale
		py := p.Y * scale
		out[i] = Point{
			X: x + px*cos - py*sin,
			Y: y + px*sin + py*cos,
		}
	}
	return out
}

// MaxRadius returns the distance from the origin to the farthest vertex.
// Factories derive the collision radius from it.
func (o Outline) MaxRadius() float64 {
	max := 0.0
	for _, p := range o {
		if d := math.Sqrt(p.X*p.X + p.Y*p.Y); d > max {
			max = d
		}
	}
	return max
}

// Asteroid builds a rocky outline: vertices evenly spaced around a circle of
// the given circumradius, each displaced radially by a random amount within
// ±drift. vertices must be >= 3; smaller values are clamped to 3.
func Asteroid(rng *rand.Rand, circumradius, drift float64, vertices int) Outline {
	if vertices < 3 {
		vertices = 3
	}
	out := make(Outline, vertices)
	for i := 0; i < vertices; i++ {
		angle := 2 * math.Pi * float64(i) / float64(vertices)
		r := circumradius + (rng.Float64()*2-1)*drift
		if r < circumradius*0.2 {
			r = circumradius * 0.2
		}
		sin, cos := math.Sincos(angle)
		out[i] = Point{X: r * cos, Y: r * sin}
	}
	return out
}

// Ship builds the player triangle: nose pointing up at (0, -size) with base
// corners at (±0.7·size, 0.7·size).
func Ship(size float64) Outline {
	return Outline{
		{X: 0, Y: -size},
		{X: 0.7 * size, Y: 0.7 * size},
		{X: -0.7 * size, Y: 0.7 * size},
	}
}

// Thruster builds the exhaust flame drawn behind the ship while thrusting.
// The flame hangs below the base line of the Ship outline.
func Thruster(size float64) Outline {
	return Outline{
		{X: -0.35 * size, Y: 0.7 * size},
		{X: 0, Y: 1.4 * size},
		{X: 0.35 * size, Y: 0.7 * size},
	}
}

// Saucer builds the classic flying-saucer silhouette: a flat hull rhombus
// with a small dome on top, as a single closed polygon.
func Saucer(radius float64) Outline {
	r := radius
	return Outline{
		{X: -r, Y: 0},
		{X: -0.45 * r, Y: -0.35 * r},
		{X: -0.25 * r, Y: -0.35 * r},
		{X: -0.18 * r, Y: -0.7 * r},
		{X: 0.18 * r, Y: -0.7 * r},
		{X: 0.25 * r, Y: -0.35 * r},
		{X: 0.45 * r, Y: -0.35 * r},
		{X: r, Y: 0},
		{X: 0.45 * r, Y: 0.4 * r},
		{X: -0.45 * r, Y: 0.4 * r},
	}
}

// Shard builds a short debris sliver with random length within
// [minLen, maxLen] and random elongation direction. Shards are thin
// quads so the stroke renderer gives them visible area.
func Shard(rng *rand.Rand, minLen, maxLen float64) Outline {
	length := minLen + rng.Float64()*(maxLen-minLen)
	angle := rng.Float64() * 2 * math.Pi
	sin, cos := math.Sincos(angle)
	half := length / 2
	// 十分之一长度的宽度，保持细长
	w := length * 0.1
	return Outline{
		{X: -half * cos, Y: -half * sin},
		{X: -w * sin, Y: w * cos},
		{X: half * cos, Y: half * sin},
		{X: w * sin, Y: -w * cos},
	}
}
