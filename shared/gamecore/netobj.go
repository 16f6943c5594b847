package gamecore

import (
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// NetCore is the quantized wire form of a CharacterCore. Positions are whole
// units, velocities and hook direction are fixed point with 8 fractional bits.
// Tick is the dead reckoning anchor, 0 when the receiver must not extrapolate.
type NetCore struct {
	Tick         int
	X            int
	Y            int
	VelX         int
	VelY         int
	Angle        int
	Direction    int
	Jumped       int
	HookedPlayer int
	HookState    int
	HookTick     int
	HookX        int
	HookY        int
	HookDx       int
	HookDy       int
}

// Write encodes the core into out. out.Tick is left untouched.
func (c *CharacterCore) Write(out *NetCore) {
	out.X = gamemath.Round(c.Pos[0])
	out.Y = gamemath.Round(c.Pos[1])

	out.VelX = gamemath.Round(c.Vel[0] * 256)
	out.VelY = gamemath.Round(c.Vel[1] * 256)
	out.HookState = int(c.HookState)
	out.HookTick = c.HookTick
	out.HookX = gamemath.Round(c.HookPos[0])
	out.HookY = gamemath.Round(c.HookPos[1])
	out.HookDx = gamemath.Round(c.HookDir[0] * 256)
	out.HookDy = gamemath.Round(c.HookDir[1] * 256)
	out.HookedPlayer = c.HookedPlayer
	out.Jumped = c.Jumped
	out.Direction = c.Direction
	out.Angle = c.Angle
}

// Read decodes in into the core.
func (c *CharacterCore) Read(in *NetCore) {
	c.Pos = mgl32.Vec2{float32(in.X), float32(in.Y)}
	c.Vel = mgl32.Vec2{float32(in.VelX) / 256, float32(in.VelY) / 256}
	c.HookState = netconfig.HookState(in.HookState)
	c.HookTick = in.HookTick
	c.HookPos = mgl32.Vec2{float32(in.HookX), float32(in.HookY)}
	c.HookDir = mgl32.Vec2{float32(in.HookDx) / 256, float32(in.HookDy) / 256}
	c.HookedPlayer = in.HookedPlayer
	c.Jumped = in.Jumped
	c.Direction = in.Direction
	c.Angle = in.Angle
}

// Quantize rounds the core through its wire form so the server keeps
// simulating exactly what clients receive.
func (c *CharacterCore) Quantize() {
	var n NetCore
	c.Write(&n)
	c.Read(&n)
}
