package character

import (
	"github.com/automoto/teerace/shared/netconfig"
)

// Tick advances the character by one simulation step. Movement is only
// integrated later in TickDeferred so every character sees the same world.
func (c *Character) Tick() {
	ctrl := c.world.Controller()

	c.core.Input = c.input
	c.withPairCollision(func() { c.core.Tick(true) })

	checkpoint := c.world.Collision().IsCheckpoint(c.pos[0], c.pos[1])

	switch {
	case ctrl.IsHPRace():
		c.hpRaceTick()
		if c.race.finishedPair {
			c.player.KillCharacter(netconfig.WeaponWorld)
			return
		}
	case ctrl.IsRace():
		c.raceTick(checkpoint)
	}

	if ctrl.IsRace() {
		c.handleBoosts()
	}

	if c.touchesDeath() {
		c.Die(c.CID(), netconfig.WeaponWorld)
		return
	}

	c.HandleWeapons()

	c.prevInput = c.input
}

// withPairCollision runs fn with partner race collision applied: a
// character only touches its partner.
func (c *Character) withPairCollision(fn func()) {
	if !c.world.Controller().IsHPRace() {
		fn()
		return
	}

	tuning := &c.world.Core().Tuning
	if partner := c.player.PartnerID(); partner >= 0 {
		tuning.PlayerCollision = float32(partner + 2)
	} else {
		tuning.PlayerCollision = 1
	}
	fn()
	tuning.PlayerCollision = 1
}

// handleBoosts applies speedup and jumper tiles under the core.
func (c *Character) handleBoosts() {
	race := c.world.Config().Race
	mult := float32(race.SpeedupMult) / 10
	add := float32(race.SpeedupAdd)
	vel := &c.core.Vel

	switch c.world.Collision().GetIndex(c.core.Pos[0], c.core.Pos[1]) {
	case netconfig.TileBoost:
		if vel[0] >= 0 {
			vel[0] = vel[0]*mult + add
		} else {
			vel[0] = vel[0]*mult - add
		}
	case netconfig.TileBoostR:
		if vel[0] >= 0 {
			vel[0] = vel[0]*mult + add
		} else {
			vel[0] = add
		}
	case netconfig.TileBoostL:
		if vel[0] <= 0 {
			vel[0] = vel[0]*mult - add
		} else {
			vel[0] = -add
		}
	case netconfig.TileJumper:
		vel[1] -= float32(race.JumperAdd)
	}
}

// touchesDeath reports a death tile near any corner of the body or a body
// outside the map.
func (c *Character) touchesDeath() bool {
	col := c.world.Collision()
	d := float32(ProximityRadius) / 3
	corners := [4][2]float32{{d, -d}, {d, d}, {-d, -d}, {-d, d}}
	for _, off := range corners {
		if col.GetCollisionAt(c.pos[0]+off[0], c.pos[1]+off[1])&netconfig.ColFlagDeath != 0 {
			return true
		}
	}
	return col.GameLayerClipped(c.pos)
}

// TickPaused shifts every tick stamp by one so timers do not run while the
// world is paused.
func (c *Character) TickPaused() {
	c.attackTick++
	c.damageTakenTick++
	c.ninja.ActivationTick++
	c.reckoning.tick++
	if c.lastAction != -1 {
		c.lastAction++
	}
	if slot := &c.weapons[c.activeWeapon]; slot.AmmoRegenStart > -1 {
		slot.AmmoRegenStart++
	}
	if c.emoteStop > -1 {
		c.emoteStop++
	}
	if c.race.state == RaceStarted {
		c.race.startTick++
		c.race.refreshTick++
	}
}
