// Package gamecore is the deterministic movement core shared by the server
// and predicting clients. One CharacterCore advances per tick with Tick then
// Move, and is quantized to its wire form afterwards so both sides agree.
package gamecore

import (
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PhysSize is the edge length of a character's collision box.
const PhysSize = 28

const (
	// velocity magnitude cap applied at the end of every tick
	maxVelocity = 6000
)

// Collision is the subset of tile queries the core needs.
type Collision interface {
	CheckPoint(x, y float32) bool
	IntersectLine(p0, p1 mgl32.Vec2) (int, mgl32.Vec2, mgl32.Vec2)
	MoveBox(pos, vel, size mgl32.Vec2, elasticity float32) (mgl32.Vec2, mgl32.Vec2)
}

// Input is one tick of player intent as sent by clients. Fire, NextWeapon and
// PrevWeapon are held-button counters masked by netconfig.InputStateMask.
type Input struct {
	Direction    int
	TargetX      int
	TargetY      int
	Jump         int
	Fire         int
	Hook         int
	PlayerFlags  int
	WantedWeapon int
	NextWeapon   int
	PrevWeapon   int
}

// WorldCore is the registry of live cores of one world, indexed by client id.
type WorldCore struct {
	Tuning     Tuning
	TickSpeed  int
	Characters [netconfig.MaxClients]*CharacterCore
}

// NewWorldCore creates an empty registry ticking at the default rate.
func NewWorldCore(tuning Tuning) *WorldCore {
	return &WorldCore{Tuning: tuning, TickSpeed: netconfig.TickSpeed}
}

// maxHookPlayerTicks is how long a character may stay hooked to another
// character: 1.2 seconds.
func (w *WorldCore) maxHookPlayerTicks() int {
	return w.TickSpeed + w.TickSpeed/5
}

// Register stores core under cid.
func (w *WorldCore) Register(cid int, core *CharacterCore) {
	w.Characters[cid] = core
}

// Unregister clears the slot of cid.
func (w *WorldCore) Unregister(cid int) {
	w.Characters[cid] = nil
}

// CharacterCore is the physical state of one character. It is a value type:
// copying it yields an independent snapshot sharing the same world and map.
type CharacterCore struct {
	world     *WorldCore
	collision Collision

	Pos          mgl32.Vec2
	Vel          mgl32.Vec2
	HookPos      mgl32.Vec2
	HookDir      mgl32.Vec2
	HookTick     int
	HookState    netconfig.HookState
	HookedPlayer int
	Jumped       int
	Direction    int
	Angle        int
	Input        Input

	TriggeredEvents netconfig.CoreEvent
}

// Init attaches the core to a world and map.
func (c *CharacterCore) Init(world *WorldCore, collision Collision) {
	c.world = world
	c.collision = collision
}

// Reset clears all movement state while keeping the world attachment.
func (c *CharacterCore) Reset() {
	c.Pos = mgl32.Vec2{}
	c.Vel = mgl32.Vec2{}
	c.HookPos = mgl32.Vec2{}
	c.HookDir = mgl32.Vec2{}
	c.HookTick = 0
	c.HookState = netconfig.HookIdle
	c.HookedPlayer = -1
	c.Jumped = 0
	c.TriggeredEvents = 0
}

// World returns the registry this core is attached to.
func (c *CharacterCore) World() *WorldCore { return c.world }

// ReleaseHook drops whatever the hook holds.
func (c *CharacterCore) ReleaseHook() {
	c.HookedPlayer = -1
	c.HookState = netconfig.HookRetracted
	c.TriggeredEvents |= netconfig.CoreEventHookRetract
	c.HookPos = c.Pos
}

func (c *CharacterCore) grounded() bool {
	return c.collision.CheckPoint(c.Pos[0]+PhysSize/2, c.Pos[1]+PhysSize/2+5) ||
		c.collision.CheckPoint(c.Pos[0]-PhysSize/2, c.Pos[1]+PhysSize/2+5)
}

// Tick applies gravity, input, hook and character interaction forces. With
// useInput false the previous direction is kept and the input is ignored.
func (c *CharacterCore) Tick(useInput bool) {
	tuning := &c.world.Tuning
	c.TriggeredEvents = 0

	grounded := c.grounded()
	targetDir := gamemath.Normalize(mgl32.Vec2{float32(c.Input.TargetX), float32(c.Input.TargetY)})

	c.Vel[1] += tuning.Gravity

	maxSpeed, accel, friction := tuning.AirControlSpeed, tuning.AirControlAccel, tuning.AirFriction
	if grounded {
		maxSpeed, accel, friction = tuning.GroundControlSpeed, tuning.GroundControlAccel, tuning.GroundFriction
	}

	if useInput {
		c.Direction = c.Input.Direction
		c.Angle = inputAngle(c.Input.TargetX, c.Input.TargetY)

		// bit 0 tracks a jump on the current press, bit 1 the air jump
		if c.Input.Jump != 0 {
			if c.Jumped&1 == 0 {
				if grounded {
					c.TriggeredEvents |= netconfig.CoreEventGroundJump
					c.Vel[1] = -tuning.GroundJumpImpulse
					c.Jumped |= 1
				} else if c.Jumped&2 == 0 {
					c.TriggeredEvents |= netconfig.CoreEventAirJump
					c.Vel[1] = -tuning.AirJumpImpulse
					c.Jumped |= 3
				}
			}
		} else {
			c.Jumped &^= 1
		}

		if c.Input.Hook != 0 {
			if c.HookState == netconfig.HookIdle {
				c.HookState = netconfig.HookFlying
				c.HookPos = c.Pos.Add(targetDir.Mul(PhysSize * 1.5))
				c.HookDir = targetDir
				c.HookedPlayer = -1
				c.HookTick = 0
				c.TriggeredEvents |= netconfig.CoreEventHookLaunch
			}
		} else {
			c.HookedPlayer = -1
			c.HookState = netconfig.HookIdle
			c.HookPos = c.Pos
		}
	}

	switch {
	case c.Direction < 0:
		c.Vel[0] = gamemath.SaturatedAdd(-maxSpeed, maxSpeed, c.Vel[0], -accel)
	case c.Direction > 0:
		c.Vel[0] = gamemath.SaturatedAdd(-maxSpeed, maxSpeed, c.Vel[0], accel)
	default:
		c.Vel[0] *= friction
	}

	if grounded {
		c.Jumped &^= 2
	}

	c.tickHook()
	c.tickInteractions()

	if c.Vel.Len() > maxVelocity {
		c.Vel = gamemath.Normalize(c.Vel).Mul(maxVelocity)
	}
}

func inputAngle(targetX, targetY int) int {
	var a float32
	if targetX == 0 {
		a = math32.Atan(float32(targetY))
	} else {
		a = math32.Atan(float32(targetY) / float32(targetX))
	}
	if targetX < 0 {
		a += gamemath.Pi
	}
	return int(a * 256)
}

func (c *CharacterCore) tickHook() {
	tuning := &c.world.Tuning

	switch {
	case c.HookState == netconfig.HookIdle:
		c.HookedPlayer = -1
		c.HookPos = c.Pos
	case c.HookState >= netconfig.HookRetractStart && c.HookState < netconfig.HookRetractEnd:
		c.HookState++
	case c.HookState == netconfig.HookRetractEnd:
		c.HookState = netconfig.HookRetracted
		c.TriggeredEvents |= netconfig.CoreEventHookRetract
	case c.HookState == netconfig.HookFlying:
		c.tickHookFlying()
	}

	if c.HookState != netconfig.HookGrabbed {
		return
	}

	if c.HookedPlayer != -1 {
		if other := c.world.Characters[c.HookedPlayer]; other != nil {
			c.HookPos = other.Pos
		} else {
			c.HookedPlayer = -1
			c.HookState = netconfig.HookRetracted
			c.HookPos = c.Pos
		}
	}

	// dragging only applies to ground hooks
	if c.HookedPlayer == -1 && gamemath.Distance(c.HookPos, c.Pos) > 46 {
		hookVel := gamemath.Normalize(c.HookPos.Sub(c.Pos)).Mul(tuning.HookDragAccel)
		// pulling up is stronger than pulling down
		if hookVel[1] > 0 {
			hookVel[1] *= 0.3
		}
		if (hookVel[0] < 0 && c.Direction < 0) || (hookVel[0] > 0 && c.Direction > 0) {
			hookVel[0] *= 0.95
		} else {
			hookVel[0] *= 0.75
		}

		newVel := c.Vel.Add(hookVel)
		if newVel.Len() < tuning.HookDragSpeed || newVel.Len() < c.Vel.Len() {
			c.Vel = newVel
		}
	}

	c.HookTick++
	if c.HookedPlayer != -1 && (c.HookTick > c.world.maxHookPlayerTicks() || c.world.Characters[c.HookedPlayer] == nil) {
		c.HookedPlayer = -1
		c.HookState = netconfig.HookRetracted
		c.HookPos = c.Pos
	}
}

func (c *CharacterCore) tickHookFlying() {
	tuning := &c.world.Tuning

	newPos := c.HookPos.Add(c.HookDir.Mul(tuning.HookFireSpeed))
	if gamemath.Distance(c.Pos, newPos) > tuning.HookLength {
		c.HookState = netconfig.HookRetractStart
		newPos = c.Pos.Add(gamemath.Normalize(newPos.Sub(c.Pos)).Mul(tuning.HookLength))
	}

	goingToHitGround := false
	goingToRetract := false
	hit, hitPos, _ := c.collision.IntersectLine(c.HookPos, newPos)
	if hit != 0 {
		newPos = hitPos
		if hit&netconfig.ColFlagNoHook != 0 {
			goingToRetract = true
		} else {
			goingToHitGround = true
		}
	}

	if tuning.PlayerHooking != 0 {
		var best float32
		for i, other := range c.world.Characters {
			if other == nil || other == c || !tuning.collidesWith(i) {
				continue
			}
			closest := gamemath.ClosestPointOnLine(c.HookPos, newPos, other.Pos)
			if gamemath.Distance(other.Pos, closest) < PhysSize+2 {
				d := gamemath.Distance(c.HookPos, other.Pos)
				if c.HookedPlayer == -1 || d < best {
					c.TriggeredEvents |= netconfig.CoreEventHookAttachPlayer
					c.HookState = netconfig.HookGrabbed
					c.HookedPlayer = i
					best = d
				}
			}
		}
	}

	if c.HookState == netconfig.HookFlying {
		if goingToHitGround {
			c.TriggeredEvents |= netconfig.CoreEventHookAttachGround
			c.HookState = netconfig.HookGrabbed
		} else if goingToRetract {
			c.TriggeredEvents |= netconfig.CoreEventHookHitNoHook
			c.HookState = netconfig.HookRetractStart
		}
		c.HookPos = newPos
	}
}

func (c *CharacterCore) tickInteractions() {
	tuning := &c.world.Tuning

	for i, other := range c.world.Characters {
		if other == nil || other == c {
			continue
		}

		dist := gamemath.Distance(c.Pos, other.Pos)
		dir := gamemath.Normalize(c.Pos.Sub(other.Pos))

		if tuning.PlayerCollision != 0 && tuning.collidesWith(i) && dist < PhysSize*1.25 && dist > 0 {
			a := PhysSize*1.45 - dist
			velocity := float32(0.5)

			// do not add force along the current direction of travel
			if c.Vel.Len() > 0.0001 {
				velocity = 1 - (gamemath.Normalize(c.Vel).Dot(dir)+1)/2
			}

			c.Vel = c.Vel.Add(dir.Mul(a * velocity * 0.75))
			c.Vel = c.Vel.Mul(0.85)
		}

		if c.HookedPlayer == i && tuning.PlayerHooking != 0 && dist > PhysSize*1.5 {
			accel := tuning.HookDragAccel * (dist / tuning.HookLength)
			dragSpeed := tuning.HookDragSpeed

			other.Vel[0] = gamemath.SaturatedAdd(-dragSpeed, dragSpeed, other.Vel[0], accel*dir[0]*1.5)
			other.Vel[1] = gamemath.SaturatedAdd(-dragSpeed, dragSpeed, other.Vel[1], accel*dir[1]*1.5)

			c.Vel[0] = gamemath.SaturatedAdd(-dragSpeed, dragSpeed, c.Vel[0], -accel*dir[0]*0.25)
			c.Vel[1] = gamemath.SaturatedAdd(-dragSpeed, dragSpeed, c.Vel[1], -accel*dir[1]*0.25)
		}
	}
}

// Move integrates the velocity against the map and, when enabled, stops the
// core short of other characters along the way.
func (c *CharacterCore) Move() {
	tuning := &c.world.Tuning

	ramp := gamemath.VelocityRamp(c.Vel.Len()*50, tuning.VelrampStart, tuning.VelrampRange, tuning.VelrampCurvature)

	c.Vel[0] *= ramp
	newPos, vel := c.collision.MoveBox(c.Pos, c.Vel, mgl32.Vec2{PhysSize, PhysSize}, 0)
	c.Vel = vel
	c.Vel[0] *= 1 / ramp

	if tuning.PlayerCollision != 0 {
		dist := gamemath.Distance(c.Pos, newPos)
		end := int(dist + 1)
		last := c.Pos
		for i := 0; i < end; i++ {
			var a float32
			if dist > 0 {
				a = float32(i) / dist
			}
			pos := gamemath.Mix(c.Pos, newPos, a)
			for p, other := range c.world.Characters {
				if other == nil || other == c || !tuning.collidesWith(p) {
					continue
				}
				d := gamemath.Distance(pos, other.Pos)
				if d < PhysSize && d > 0 {
					if a > 0 {
						c.Pos = last
					} else if gamemath.Distance(newPos, other.Pos) > d {
						c.Pos = newPos
					}
					return
				}
			}
			last = pos
		}
	}

	c.Pos = newPos
}
