package character

import (
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// HandleNinja advances an active ninja ability: it expires the ability,
// drives the dash and hits characters along the dash path once each.
func (c *Character) HandleNinja() {
	if c.activeWeapon != netconfig.WeaponNinja {
		return
	}

	ninja := c.ninjaConfig()
	tickSpeed := c.world.TickSpeed()
	if c.world.Tick()-c.ninja.ActivationTick > ninja.Duration*tickSpeed/1000 {
		c.weapons[netconfig.WeaponNinja].Got = false
		c.activeWeapon = c.lastWeapon
		c.SetWeapon(c.activeWeapon)
		return
	}

	c.SetWeapon(netconfig.WeaponNinja)

	c.ninja.CurrentMoveTime--

	if c.ninja.CurrentMoveTime == 0 {
		c.core.Vel = c.ninja.ActivationDir.Mul(c.ninja.OldVelAmount)
	}

	if c.ninja.CurrentMoveTime <= 0 {
		return
	}

	c.core.Vel = c.ninja.ActivationDir.Mul(ninja.Velocity)
	oldPos := c.pos
	c.core.Pos, c.core.Vel = c.world.Collision().MoveBox(c.core.Pos, c.core.Vel, mgl32.Vec2{ProximityRadius, ProximityRadius}, 0)

	// zero so clients do not predict the dash
	c.core.Vel = mgl32.Vec2{}

	center := oldPos.Add(c.pos.Sub(oldPos).Mul(0.5))
	for _, target := range c.world.FindCharacters(center, ProximityRadius*2, netconfig.MaxClients) {
		if target == c || c.alreadyHit(target) {
			continue
		}
		if gamemath.Distance(target.pos, c.pos) > ProximityRadius*2 {
			continue
		}

		c.world.Events().CreateSound(target.pos, netconfig.SoundNinjaHit, netconfig.MaskAll())
		if c.numObjectsHit < maxHitObjects {
			c.hitObjects[c.numObjectsHit] = target
			c.numObjectsHit++
		}

		target.TakeDamage(mgl32.Vec2{0, -10}, c.weaponConfig(netconfig.WeaponNinja).Damage, c.CID(), netconfig.WeaponNinja)
	}
}

func (c *Character) alreadyHit(target *Character) bool {
	for _, hit := range c.hitObjects[:c.numObjectsHit] {
		if hit == target {
			return true
		}
	}
	return false
}

// HandleWeapons runs the ninja ability, counts down the reload timer, fires
// and regenerates ammo of the active weapon.
func (c *Character) HandleWeapons() {
	c.HandleNinja()

	if c.reloadTimer != 0 {
		c.reloadTimer--
		return
	}

	c.FireWeapon()

	regenTime := c.weaponConfig(c.activeWeapon).AmmoRegenTime
	if regenTime == 0 {
		return
	}

	slot := &c.weapons[c.activeWeapon]
	if c.reloadTimer > 0 {
		slot.AmmoRegenStart = -1
		return
	}

	now := c.world.Tick()
	if slot.AmmoRegenStart < 0 {
		slot.AmmoRegenStart = now
	}
	if now-slot.AmmoRegenStart >= regenTime*c.world.TickSpeed()/1000 {
		slot.Ammo = min(slot.Ammo+1, 10)
		slot.AmmoRegenStart = -1
	}
}
