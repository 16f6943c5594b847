// Package gamemath holds the float32 helpers shared by the simulation. All
// math runs in float32 so server and client cores stay bit-identical.
package gamemath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Pi as float32.
const Pi = math32.Pi

// Normalize returns v scaled to unit length, or the zero vector for zero input.
func Normalize(v mgl32.Vec2) mgl32.Vec2 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{v[0] / l, v[1] / l}
}

// Distance between two points.
func Distance(a, b mgl32.Vec2) float32 {
	return a.Sub(b).Len()
}

// Mix linearly interpolates between a and b.
func Mix(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

// MixF linearly interpolates between two scalars.
func MixF(a, b, t float32) float32 {
	return a + (b-a)*t
}

// ClosestPointOnLine returns the point on segment a-b nearest to p.
func ClosestPointOnLine(a, b, p mgl32.Vec2) mgl32.Vec2 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}

// Angle returns the heading of dir in radians, 0 for the zero vector.
func Angle(dir mgl32.Vec2) float32 {
	if dir[0] == 0 && dir[1] == 0 {
		return 0
	}
	a := math32.Atan(dir[1] / dir[0])
	if dir[0] < 0 {
		a += Pi
	}
	return a
}

// Direction is the unit vector for angle a.
func Direction(a float32) mgl32.Vec2 {
	return mgl32.Vec2{math32.Cos(a), math32.Sin(a)}
}

// Round rounds half away from zero.
func Round(f float32) int {
	if f > 0 {
		return int(f + 0.5)
	}
	return int(f - 0.5)
}

// SaturatedAdd adds modifier to current without leaving [min, max], unless
// current was already outside the range on that side.
func SaturatedAdd(min, max, current, modifier float32) float32 {
	if modifier < 0 {
		if current < min {
			return current
		}
		current += modifier
		if current < min {
			current = min
		}
		return current
	}
	if current > max {
		return current
	}
	current += modifier
	if current > max {
		current = max
	}
	return current
}
