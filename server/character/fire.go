package character

import (
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// no-ammo clicks are limited to a human click rate
const noAmmoDelayMs = 125

// FireWeapon fires the active weapon when the trigger asks for it.
func (c *Character) FireWeapon() {
	if c.reloadTimer != 0 {
		return
	}

	c.DoWeaponSwitch()
	dir := gamemath.Normalize(mgl32.Vec2{float32(c.latestInput.TargetX), float32(c.latestInput.TargetY)})
	spec := specFor(c.activeWeapon)
	slot := &c.weapons[c.activeWeapon]

	willFire := CountInput(c.latestPrevInput.Fire, c.latestInput.Fire).Presses > 0
	if spec.fullAuto && c.latestInput.Fire&1 != 0 && slot.Ammo != 0 {
		willFire = true
	}
	if !willFire {
		return
	}

	tickSpeed := c.world.TickSpeed()
	if slot.Ammo == 0 {
		c.reloadTimer = noAmmoDelayMs * tickSpeed / 1000
		c.world.Events().CreateSound(c.pos, netconfig.SoundWeaponNoAmmo, netconfig.MaskAll())
		return
	}

	start := c.pos.Add(dir.Mul(ProximityRadius * 0.75))

	switch c.activeWeapon {
	case netconfig.WeaponHammer:
		c.fireHammer(start)
	case netconfig.WeaponGun, netconfig.WeaponShotgun, netconfig.WeaponGrenade:
		c.fireProjectiles(spec, start, dir)
	case netconfig.WeaponRifle:
		c.world.SpawnLaser(c.pos, dir, c.world.Core().Tuning.LaserReach, c.CID())
		c.world.Events().CreateSound(c.pos, spec.fireSound, netconfig.MaskAll())
	case netconfig.WeaponNinja:
		c.numObjectsHit = 0
		c.ninja.ActivationDir = dir
		c.ninja.CurrentMoveTime = c.ninjaConfig().Movetime * tickSpeed / 1000
		c.ninja.OldVelAmount = c.core.Vel.Len()
		c.world.Events().CreateSound(c.pos, spec.fireSound, netconfig.MaskAll())
	}

	c.attackTick = c.world.Tick()

	infinite := c.world.Controller().IsRace() && c.world.Config().Race.InfiniteAmmo
	if slot.Ammo > 0 && !infinite {
		slot.Ammo--
	}

	if c.reloadTimer == 0 {
		c.reloadTimer = c.weaponConfig(c.activeWeapon).FireDelay * tickSpeed / 1000
	}
}

func (c *Character) fireHammer(start mgl32.Vec2) {
	ctrl := c.world.Controller()
	events := c.world.Events()
	partner := c.player.PartnerID()
	hpRace := ctrl.IsHPRace()

	c.numObjectsHit = 0
	switch {
	case hpRace && partner >= 0:
		events.CreateSound(c.pos, netconfig.SoundHammerFire, netconfig.MaskOne(partner))
		events.CreateSound(c.pos, netconfig.SoundHammerFire, netconfig.MaskOne(c.CID()))
	case !hpRace:
		events.CreateSound(c.pos, netconfig.SoundHammerFire, netconfig.MaskAll())
	}

	// race without partners has no hammer hits
	var targets []*Character
	switch {
	case hpRace:
		targets = c.world.FindCharacters(start, ProximityRadius, netconfig.MaxClients)
	case !ctrl.IsRace():
		targets = c.world.FindCharacters(start, ProximityRadius*0.5, netconfig.MaxClients)
	}

	col := c.world.Collision()
	hits := 0
	for _, target := range targets {
		if target == c {
			continue
		}
		if !hpRace {
			if flags, _, _ := col.IntersectLine(start, target.pos); flags != 0 {
				continue
			}
		}
		if hpRace && (partner < 0 || target.CID() != partner) {
			continue
		}

		if !hpRace {
			if target.pos.Sub(start).Len() > 0 {
				events.CreateHammerHit(target.pos.Sub(gamemath.Normalize(target.pos.Sub(start)).Mul(ProximityRadius * 0.5)))
			} else {
				events.CreateHammerHit(start)
			}
		} else if partner >= 0 {
			events.CreateSound(c.pos, netconfig.SoundHammerHit, netconfig.MaskOne(partner))
			events.CreateSound(c.pos, netconfig.SoundHammerHit, netconfig.MaskOne(c.CID()))
		}

		dir := mgl32.Vec2{0, -1}
		if target.pos.Sub(c.pos).Len() > 0 {
			if hpRace {
				dir = gamemath.Normalize(mgl32.Vec2{float32(c.latestInput.TargetX), float32(c.latestInput.TargetY)})
			} else {
				dir = gamemath.Normalize(target.pos.Sub(c.pos))
			}
		}

		var force mgl32.Vec2
		if hpRace {
			force = mgl32.Vec2{0, -1}.Add(dir.Mul(10 * float32(c.world.Config().Race.HammerPower)))
		} else {
			force = mgl32.Vec2{0, -1}.Add(gamemath.Normalize(dir.Add(mgl32.Vec2{0, -1.1})).Mul(10))
		}
		target.TakeDamage(force, c.weaponConfig(netconfig.WeaponHammer).Damage, c.CID(), c.activeWeapon)
		hits++
	}

	if hits > 0 {
		c.reloadTimer = c.world.TickSpeed() / 3
	}
}

func (c *Character) fireProjectiles(spec *weaponSpec, start, dir mgl32.Vec2) {
	tuning := &c.world.Core().Tuning
	lifetime := int(float32(c.world.TickSpeed()) * spec.lifetime(tuning))
	half := len(spec.spread) / 2

	extra := make([]netcomponents.NetProjectileData, 0, len(spec.spread))
	for i, offset := range spec.spread {
		shotDir := dir
		if len(spec.spread) > 1 {
			a := gamemath.Angle(dir) + offset
			v := 1 - math32.Abs(float32(i-half))/float32(half)
			speed := gamemath.MixF(tuning.ShotgunSpeeddiff, 1, v)
			shotDir = gamemath.Direction(a).Mul(speed)
		}

		extra = append(extra, c.world.SpawnProjectile(ProjectileSpec{
			Weapon:      c.activeWeapon,
			Owner:       c.CID(),
			Pos:         start,
			Dir:         shotDir,
			Lifetime:    lifetime,
			Damage:      1,
			Explosive:   spec.explosive,
			ImpactSound: spec.impactSound,
		}))
	}

	c.world.Events().SendExtraProjectiles(c.CID(), extra)
	c.world.Events().CreateSound(c.pos, spec.fireSound, netconfig.MaskAll())
}
