package gamemath

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// VelocityRamp scales down movement above start speed so that very fast
// characters lose precision gradually instead of tunnelling.
func VelocityRamp(value, start, rng, curvature float32) float32 {
	if value < start {
		return 1
	}
	return 1 / math32.Pow(curvature, (value-start)/rng)
}

// CalcPos returns the position of a ballistic projectile t seconds after launch.
func CalcPos(pos, vel mgl32.Vec2, curvature, speed, t float32) mgl32.Vec2 {
	t *= speed
	return mgl32.Vec2{
		pos[0] + vel[0]*t,
		pos[1] + vel[1]*t + curvature/10000*(t*t),
	}
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float32) float32 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}
