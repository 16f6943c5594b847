package core

import (
	"github.com/automoto/teerace/server/character"
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// Laser is a rifle beam. Each segment runs until it hits a character, a wall
// or its energy runs out; walls reflect it after a delay at an energy cost.
type Laser struct {
	world *GameWorld
	owner int

	pos      mgl32.Vec2
	from     mgl32.Vec2
	dir      mgl32.Vec2
	energy   float32
	bounces  int
	evalTick int

	destroyed bool
}

func newLaser(w *GameWorld, pos, dir mgl32.Vec2, reach float32, owner int) *Laser {
	l := &Laser{
		world:  w,
		owner:  owner,
		pos:    pos,
		from:   pos,
		dir:    dir,
		energy: reach,
	}
	l.bounce()
	return l
}

func (l *Laser) hitCharacter(from, to mgl32.Vec2) bool {
	w := l.world
	var ownerChar *character.Character
	if owner := w.GetPlayer(l.owner); owner != nil {
		ownerChar = owner.Character()
	}

	hit, at := w.IntersectCharacter(l.pos, to, 0, ownerChar)
	if hit == nil {
		return false
	}

	l.from = from
	l.pos = at
	l.energy = -1
	hit.TakeDamage(mgl32.Vec2{}, int(w.core.Tuning.LaserDamage), l.owner, netconfig.WeaponRifle)
	return true
}

func (l *Laser) bounce() {
	w := l.world
	l.evalTick = w.tick

	if l.energy < 0 {
		l.destroyed = true
		return
	}

	tuning := &w.core.Tuning
	col := w.level.Collision
	to := l.pos.Add(l.dir.Mul(l.energy))

	flags, _, before := col.IntersectLine(l.pos, to)
	if flags == 0 {
		if !l.hitCharacter(l.pos, to) {
			l.from = l.pos
			l.pos = to
			l.energy = -1
		}
		return
	}

	if l.hitCharacter(l.pos, before) {
		return
	}

	l.from = l.pos
	l.pos = before

	pos, dir, _ := col.MovePoint(l.pos, l.dir.Mul(4), 1)
	l.pos = pos
	l.dir = gamemath.Normalize(dir)

	l.energy -= gamemath.Distance(l.from, l.pos) + tuning.LaserBounceCost
	l.bounces++
	if float32(l.bounces) > tuning.LaserBounceNum {
		l.energy = -1
	}

	w.events.CreateSound(l.pos, netconfig.SoundRifleBounce, netconfig.MaskAll())
}

// Tick traces the next segment once the bounce delay has passed.
func (l *Laser) Tick() {
	delay := int(float32(l.world.TickSpeed()) * l.world.core.Tuning.LaserBounceDelay / 1000)
	if l.world.tick > l.evalTick+delay {
		l.bounce()
	}
}

// Net returns the current segment.
func (l *Laser) Net() netcomponents.NetLaserData {
	return netcomponents.NetLaserData{
		X:         gamemath.Round(l.pos[0]),
		Y:         gamemath.Round(l.pos[1]),
		FromX:     gamemath.Round(l.from[0]),
		FromY:     gamemath.Round(l.from[1]),
		StartTick: l.evalTick,
	}
}
