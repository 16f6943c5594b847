package character

import (
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// repeated hits inside this many ticks fan out their damage indicators
const damageIndWindow = 25

// TakeDamage applies force and damage from client from. It reports whether
// the character survived and was actually hurt.
func (c *Character) TakeDamage(force mgl32.Vec2, dmg, from int, weapon netconfig.WeaponID) bool {
	c.core.Vel = c.core.Vel.Add(force)

	ctrl := c.world.Controller()
	cfg := c.world.Config()
	cid := c.CID()

	if ctrl.IsFriendlyFire(cid, from) && !cfg.Game.TeamDamage {
		return false
	}
	if ctrl.IsHPRace() {
		return false
	}

	dmg = c.resolveDamage(dmg, from)

	now := c.world.Tick()
	events := c.world.Events()

	c.damageTaken++
	if now < c.damageTakenTick+damageIndWindow {
		events.CreateDamageInd(c.pos, float32(c.damageTaken)*0.25, dmg)
	} else {
		c.damageTaken = 0
		events.CreateDamageInd(c.pos, 0, dmg)
	}

	dmg = c.absorb(dmg)
	c.damageTakenTick = now

	if from >= 0 && from != cid {
		if attacker := c.world.Player(from); attacker != nil {
			events.CreateSound(attacker.ViewPos(), netconfig.SoundHit, c.spectatorsOf(from))
		}
	}

	if c.health <= 0 {
		c.Die(from, weapon)

		// taunt
		if from >= 0 && from != cid {
			if attacker := c.world.Player(from); attacker != nil {
				if chr := attacker.Character(); chr != nil {
					chr.SetEmote(netconfig.EmoteHappy, now+c.world.TickSpeed())
				}
			}
		}
		return false
	}

	if dmg > 2 {
		events.CreateSound(c.pos, netconfig.SoundPlayerPainLong, netconfig.MaskAll())
	} else {
		events.CreateSound(c.pos, netconfig.SoundPlayerPainShort, netconfig.MaskAll())
	}

	c.SetEmote(netconfig.EmotePain, now+500*c.world.TickSpeed()/1000)
	return true
}

// resolveDamage halves self damage and applies the race rules, where only
// rocket jumps may hurt and only when enabled.
func (c *Character) resolveDamage(dmg, from int) int {
	self := from == c.CID()
	if self {
		dmg = max(1, dmg/2)
	}

	if c.world.Controller().IsRace() && (!self || !c.world.Config().Race.RocketJumpDamage) {
		dmg = 0
	}
	return dmg
}

// absorb subtracts dmg from armor then health. With armor left, a hit of two
// or more always costs one health first. It returns the damage that reached
// health after the bleed.
func (c *Character) absorb(dmg int) int {
	if dmg == 0 {
		return 0
	}

	if c.armor > 0 {
		if dmg > 1 {
			c.health--
			dmg--
		}

		if dmg > c.armor {
			dmg -= c.armor
			c.armor = 0
		} else {
			c.armor -= dmg
			dmg = 0
		}
	}

	c.health = max(c.health-dmg, 0)
	return dmg
}

// spectatorsOf addresses cid and every spectator following cid.
func (c *Character) spectatorsOf(cid int) netconfig.ClientMask {
	mask := netconfig.MaskOne(cid)
	for i := 0; i < netconfig.MaxClients; i++ {
		p := c.world.Player(i)
		if p != nil && p.Team() == netconfig.TeamSpectators && p.SpectatorID() == cid {
			mask |= netconfig.MaskOne(i)
		}
	}
	return mask
}

// Die kills the character. The killer may be the victim itself or a
// negative id for the world.
func (c *Character) Die(killer int, weapon netconfig.WeaponID) {
	if !c.alive {
		return
	}

	now := c.world.Tick()
	cid := c.CID()

	c.player.SetRespawnTick(now + c.world.TickSpeed()/2)

	var killerPlayer Player
	if killer >= 0 {
		killerPlayer = c.world.Player(killer)
	}
	special := c.world.Controller().OnCharacterDeath(c, killerPlayer, weapon)

	c.log.Debugf("kill killer='%d:%s' victim='%d:%s' weapon=%d special=%d",
		killer, c.world.ClientName(killer), cid, c.world.ClientName(cid), int(weapon), special)

	events := c.world.Events()
	events.SendKill(killer, cid, weapon, special)
	events.CreateSound(c.pos, netconfig.SoundPlayerDie, netconfig.MaskAll())

	c.player.SetDieTick(now)

	c.alive = false
	c.world.RemoveCharacter(c)
	c.world.Core().Unregister(cid)
	events.CreateDeath(c.pos, cid)
}
