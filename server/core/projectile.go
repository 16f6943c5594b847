package core

import (
	"github.com/automoto/teerace/server/character"
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// projectiles hit characters within this distance of their path
const projectileHitRadius = 6

// Projectile is a gun, shotgun or grenade shot. Its path is a function of
// the launch parameters and the ticks since launch, so clients can redraw it
// from the wire form alone.
type Projectile struct {
	world *GameWorld

	weapon      netconfig.WeaponID
	owner       int
	pos         mgl32.Vec2
	dir         mgl32.Vec2
	lifespan    int
	damage      int
	explosive   bool
	force       float32
	impactSound netconfig.SoundID
	startTick   int

	destroyed bool
}

func newProjectile(w *GameWorld, spec character.ProjectileSpec) *Projectile {
	return &Projectile{
		world:       w,
		weapon:      spec.Weapon,
		owner:       spec.Owner,
		pos:         spec.Pos,
		dir:         spec.Dir,
		lifespan:    spec.Lifetime,
		damage:      spec.Damage,
		explosive:   spec.Explosive,
		force:       spec.Force,
		impactSound: spec.ImpactSound,
		startTick:   w.tick,
	}
}

// posAt returns the position t seconds after launch.
func (p *Projectile) posAt(t float32) mgl32.Vec2 {
	tuning := &p.world.core.Tuning
	var curvature, speed float32
	switch p.weapon {
	case netconfig.WeaponGrenade:
		curvature, speed = tuning.GrenadeCurvature, tuning.GrenadeSpeed
	case netconfig.WeaponShotgun:
		curvature, speed = tuning.ShotgunCurvature, tuning.ShotgunSpeed
	case netconfig.WeaponGun:
		curvature, speed = tuning.GunCurvature, tuning.GunSpeed
	}
	return gamemath.CalcPos(p.pos, p.dir, curvature, speed, t)
}

// Tick moves the projectile along its path for one tick and resolves hits
// with the map and characters.
func (p *Projectile) Tick() {
	w := p.world
	tickSpeed := float32(w.TickSpeed())
	pt := float32(w.tick-p.startTick-1) / tickSpeed
	ct := float32(w.tick-p.startTick) / tickSpeed
	prevPos := p.posAt(pt)
	curPos := p.posAt(ct)

	flags, colPos, _ := w.level.Collision.IntersectLine(prevPos, curPos)
	collide := flags != 0
	curPos = colPos

	var ownerChar *character.Character
	if owner := w.GetPlayer(p.owner); owner != nil {
		ownerChar = owner.Character()
	}
	target, at := w.IntersectCharacter(prevPos, curPos, projectileHitRadius, ownerChar)
	if target != nil {
		curPos = at
	}

	p.lifespan--

	if target == nil && !collide && p.lifespan >= 0 && !w.level.Collision.GameLayerClipped(curPos) {
		return
	}

	if p.lifespan >= 0 || p.weapon == netconfig.WeaponGrenade {
		w.events.CreateSound(curPos, p.impactSound, netconfig.MaskAll())
	}

	switch {
	case p.explosive:
		w.CreateExplosion(curPos, p.owner, p.weapon, false)
	case target != nil:
		target.TakeDamage(p.dir.Mul(max(0.001, p.force)), p.damage, p.owner, p.weapon)
	}
	p.destroyed = true
}

// Net returns the launch parameters clients redraw the projectile from.
func (p *Projectile) Net() netcomponents.NetProjectileData {
	return netcomponents.NetProjectileData{
		X:         gamemath.Round(p.pos[0]),
		Y:         gamemath.Round(p.pos[1]),
		VelX:      gamemath.Round(p.dir[0] * 100),
		VelY:      gamemath.Round(p.dir[1] * 100),
		Type:      int(p.weapon),
		StartTick: p.startTick,
	}
}
