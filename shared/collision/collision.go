// Package collision answers tile queries against a loaded level: point and box
// tests, swept movement, line intersection and race tile lookups.
package collision

import (
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/leveldata"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
)

// clipMargin is how many tiles outside the map still count as inside the game layer.
const clipMargin = 200

// Collision is read-only after construction and safe to share between all
// entities of one world.
type Collision struct {
	level *leveldata.Level
}

// New wraps a parsed level.
func New(level *leveldata.Level) *Collision {
	return &Collision{level: level}
}

// Width of the map in tiles.
func (c *Collision) Width() int { return c.level.Width }

// Height of the map in tiles.
func (c *Collision) Height() int { return c.level.Height }

// Level returns the underlying tile grids.
func (c *Collision) Level() *leveldata.Level { return c.level }

func (c *Collision) index(x, y int) int {
	nx := lo.Clamp(x/leveldata.TileSize, 0, c.level.Width-1)
	ny := lo.Clamp(y/leveldata.TileSize, 0, c.level.Height-1)
	return ny*c.level.Width + nx
}

// GetTile returns the collision flags of the tile containing pixel (x, y).
// Coordinates outside the map are clamped to the border tiles.
func (c *Collision) GetTile(x, y int) int {
	return c.level.Game[c.index(x, y)]
}

// IsTileSolid reports whether pixel (x, y) lies in a solid tile.
func (c *Collision) IsTileSolid(x, y int) bool {
	return c.GetTile(x, y)&netconfig.ColFlagSolid != 0
}

// CheckPoint reports whether world point (x, y) is solid.
func (c *Collision) CheckPoint(x, y float32) bool {
	return c.IsTileSolid(gamemath.Round(x), gamemath.Round(y))
}

// GetCollisionAt returns the collision flags at world point (x, y).
func (c *Collision) GetCollisionAt(x, y float32) int {
	return c.GetTile(gamemath.Round(x), gamemath.Round(y))
}

// GetIndex returns the race tile kind at world point (x, y).
func (c *Collision) GetIndex(x, y float32) int {
	return c.level.Race[c.index(gamemath.Round(x), gamemath.Round(y))]
}

// IsCheckpoint returns the checkpoint number at (x, y), or 0.
func (c *Collision) IsCheckpoint(x, y float32) int {
	return c.level.Checkpoints[c.index(gamemath.Round(x), gamemath.Round(y))]
}

// IsTeleport returns the teleporter number at (x, y), or 0.
func (c *Collision) IsTeleport(x, y float32) int {
	return c.level.Teleports[c.index(gamemath.Round(x), gamemath.Round(y))]
}

// TeleportTarget returns the exit of teleporter n. Maps with several exits for
// one number always use the first.
func (c *Collision) TeleportTarget(n int) (mgl32.Vec2, bool) {
	exits := c.level.TeleportExits[n]
	if len(exits) == 0 {
		return mgl32.Vec2{}, false
	}
	return mgl32.Vec2{exits[0].X, exits[0].Y}, true
}

// GameLayerClipped reports whether pos is far outside the map.
func (c *Collision) GameLayerClipped(pos mgl32.Vec2) bool {
	tx := gamemath.Round(pos[0]) / leveldata.TileSize
	ty := gamemath.Round(pos[1]) / leveldata.TileSize
	return tx < -clipMargin || tx > c.level.Width+clipMargin ||
		ty < -clipMargin || ty > c.level.Height+clipMargin
}

// TestBox reports whether any corner of the box centred on pos is solid.
func (c *Collision) TestBox(pos, size mgl32.Vec2) bool {
	half := size.Mul(0.5)
	return c.CheckPoint(pos[0]-half[0], pos[1]-half[1]) ||
		c.CheckPoint(pos[0]+half[0], pos[1]-half[1]) ||
		c.CheckPoint(pos[0]-half[0], pos[1]+half[1]) ||
		c.CheckPoint(pos[0]+half[0], pos[1]+half[1])
}

// IntersectLine walks from p0 to p1 one unit at a time and stops at the first
// solid point. It returns the collision flags hit (0 for none), the point of
// collision and the last free point before it. Without a hit both points are p1.
func (c *Collision) IntersectLine(p0, p1 mgl32.Vec2) (int, mgl32.Vec2, mgl32.Vec2) {
	dist := gamemath.Distance(p0, p1)
	end := int(dist + 1)
	last := p0

	for i := 0; i < end; i++ {
		var a float32
		if dist > 0 {
			a = float32(i) / dist
		}
		pos := gamemath.Mix(p0, p1, a)
		if c.CheckPoint(pos[0], pos[1]) {
			return c.GetCollisionAt(pos[0], pos[1]), pos, last
		}
		last = pos
	}
	return 0, p1, p1
}

// MovePoint advances a point by vel, reflecting the velocity on the blocked
// axes scaled by elasticity. It returns the new position, velocity and the
// number of bounces.
func (c *Collision) MovePoint(pos, vel mgl32.Vec2, elasticity float32) (mgl32.Vec2, mgl32.Vec2, int) {
	next := pos.Add(vel)
	if !c.CheckPoint(next[0], next[1]) {
		return next, vel, 0
	}

	bounces := 0
	affected := 0
	if c.CheckPoint(pos[0]+vel[0], pos[1]) {
		vel[0] *= -elasticity
		bounces++
		affected++
	}
	if c.CheckPoint(pos[0], pos[1]+vel[1]) {
		vel[1] *= -elasticity
		bounces++
		affected++
	}
	if affected == 0 {
		vel[0] *= -elasticity
		vel[1] *= -elasticity
	}
	return pos, vel, bounces
}

// MoveBox sweeps a box of the given size along vel in unit steps and resolves
// collisions per axis. Blocked axes keep their previous coordinate and have
// their velocity reflected by elasticity.
func (c *Collision) MoveBox(pos, vel, size mgl32.Vec2, elasticity float32) (mgl32.Vec2, mgl32.Vec2) {
	dist := vel.Len()
	if dist <= 0.00001 {
		return pos, vel
	}

	steps := int(dist)
	fraction := 1 / float32(steps+1)
	for i := 0; i <= steps; i++ {
		next := pos.Add(vel.Mul(fraction))

		if c.TestBox(next, size) {
			hits := 0

			if c.TestBox(mgl32.Vec2{pos[0], next[1]}, size) {
				next[1] = pos[1]
				vel[1] *= -elasticity
				hits++
			}

			if c.TestBox(mgl32.Vec2{next[0], pos[1]}, size) {
				next[0] = pos[0]
				vel[0] *= -elasticity
				hits++
			}

			// corner case: only the diagonal is blocked
			if hits == 0 {
				next[1] = pos[1]
				vel[1] *= -elasticity
				next[0] = pos[0]
				vel[0] *= -elasticity
			}
		}

		pos = next
	}
	return pos, vel
}
