package character

import (
	"fmt"

	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netconfig"
)

// RaceState is the progress of a character through a race map.
type RaceState int

const (
	RaceNone RaceState = iota
	RaceStarted
	RaceFinished
)

// raceTimer tracks one run. Times are in seconds since the start tile.
type raceTimer struct {
	state       RaceState
	time        float32
	startTick   int
	refreshTick int

	cpActive  int
	cpCurrent [netconfig.MaxCheckpoints + 1]float32
	cpTick    int

	// set when a partner run finished and both must respawn
	finishedPair bool
}

func (r *raceTimer) start(now int) {
	r.startTick = now
	r.refreshTick = now
	r.state = RaceStarted
}

func (r *raceTimer) elapsed(now, tickSpeed int) float32 {
	return float32(now-r.startTick) / float32(tickSpeed)
}

func formatCurrentTime(seconds float32) string {
	t := int(seconds)
	return fmt.Sprintf("Current time: %d min %d sec", t/60, t%60)
}

func formatFinishTime(seconds float32) (int, float32) {
	minutes := int(seconds) / 60
	return minutes, seconds - float32(minutes*60)
}

// raceTick runs the solo race timer, checkpoints, regeneration and the start
// and finish tiles.
func (c *Character) raceTick(checkpoint int) {
	ctrl := c.world.Controller()
	col := c.world.Collision()
	cfg := c.world.Config()
	now := c.world.Tick()
	tickSpeed := c.world.TickSpeed()
	cid := c.CID()
	elapsed := c.race.elapsed(now, tickSpeed)

	if checkpoint > 0 && checkpoint <= netconfig.MaxCheckpoints && c.race.state == RaceStarted {
		c.race.cpActive = checkpoint
		c.race.cpCurrent[checkpoint] = elapsed
		c.race.cpTick = now + tickSpeed*2
	}

	if c.race.state == RaceStarted {
		c.race.time = elapsed
	}

	if c.race.state == RaceStarted && now-c.race.refreshTick >= tickSpeed {
		text := formatCurrentTime(elapsed)
		if c.race.cpActive != 0 && c.race.cpTick > now {
			if best, ok := ctrl.BestCheckpoint(cid, c.race.cpActive); ok && best != 0 {
				diff := c.race.cpCurrent[c.race.cpActive] - best
				sign := ""
				if diff >= 0 {
					sign = "+"
				}
				text += fmt.Sprintf("\nCheckpoint | Diff : %s%5.3f", sign, diff)
			}
		}
		c.world.Events().SendBroadcast(cid, text)
		c.race.refreshTick = now
	}

	if regen := cfg.Race.Regen; regen > 0 && now%regen == 0 {
		if c.health < maxHealth {
			c.health++
		} else if c.armor < maxArmor {
			c.armor++
		}
	}

	tile := col.GetIndex(c.pos[0], c.pos[1])
	switch {
	case tile == netconfig.TileBegin && (!c.weapons[netconfig.WeaponGrenade].Got || c.race.state == RaceNone):
		c.race.start(now)
	case tile == netconfig.TileEnd && c.race.state == RaceStarted:
		minutes, seconds := formatFinishTime(elapsed)
		c.world.Events().SendChat(-1, fmt.Sprintf("%s finished in: %d minute(s) %5.3f second(s)",
			c.world.ClientName(cid), minutes, seconds))
		c.race.state = RaceFinished
		ctrl.OnRaceFinish(c, elapsed, c.race.cpCurrent[:])
	}

	c.handleTeleport()
}

// hpRaceTick runs the partner race: velocity clamp, hook release on
// teleporters and the shared pair timer.
func (c *Character) hpRaceTick() {
	c.core.Vel[0] = gamemath.ClampSpeed(c.core.Vel[0], maxHPRaceVel)
	c.core.Vel[1] = gamemath.ClampSpeed(c.core.Vel[1], maxHPRaceVel)

	partnerID := c.player.PartnerID()
	if partnerID < 0 {
		return
	}

	ctrl := c.world.Controller()
	col := c.world.Collision()
	cfg := c.world.Config()
	now := c.world.Tick()
	tickSpeed := c.world.TickSpeed()
	cid := c.CID()

	// nobody may drag a character through a teleporter
	if cfg.Race.Teleport && col.IsTeleport(c.pos[0], c.pos[1]) != 0 {
		for i := 0; i < netconfig.MaxClients; i++ {
			if i == cid {
				continue
			}
			p := c.world.Player(i)
			if p == nil {
				continue
			}
			if other := p.Character(); other != nil && other.core.HookedPlayer == cid {
				other.core.ReleaseHook()
				other.core.HookPos = c.core.Pos
			}
		}
		c.core.ReleaseHook()
	}

	elapsed := c.race.elapsed(now, tickSpeed)
	if c.race.state == RaceStarted {
		c.race.time = elapsed
	}

	if c.race.state == RaceStarted && now-c.race.refreshTick >= tickSpeed {
		c.world.Events().SendBroadcast(cid, formatCurrentTime(elapsed))
		c.race.refreshTick = now
	}

	tile := col.GetIndex(c.pos[0], c.pos[1])
	if tile == netconfig.TileBegin {
		c.race.start(now)
	}

	var partner *Character
	partnerPlayer := c.world.Player(partnerID)
	if partnerPlayer != nil {
		partner = partnerPlayer.Character()
	}

	switch {
	case c.race.state == RaceStarted && partner != nil && partner.race.state == RaceStarted && partner.race.time > c.race.time:
		// the pair shares the earlier start
		c.race.time = partner.race.time
		c.race.refreshTick = partner.race.refreshTick
		c.race.startTick = partner.race.startTick
	case tile == netconfig.TileEnd && c.race.state == RaceStarted:
		minutes, seconds := formatFinishTime(elapsed)
		c.world.Events().SendChat(-1, fmt.Sprintf("%s & %s finished in: %d minute(s) %5.3f second(s)",
			c.world.ClientName(cid), c.world.ClientName(partnerID), minutes, seconds))
		c.race.state = RaceFinished
		ctrl.OnRaceFinish(c, elapsed, c.race.cpCurrent[:])

		if partner != nil {
			partner.race.state = RaceFinished
			partnerPlayer.KillCharacter(netconfig.WeaponWorld)
		}
		c.race.finishedPair = true
	}

	c.handleTeleport()
}

const maxHPRaceVel = 500

// handleTeleport moves the character to the exit of a teleporter tile under
// it and optionally strips its weapons.
func (c *Character) handleTeleport() {
	cfg := c.world.Config()
	if !cfg.Race.Teleport {
		return
	}
	col := c.world.Collision()
	n := col.IsTeleport(c.pos[0], c.pos[1])
	if n == 0 {
		return
	}
	target, ok := col.TeleportTarget(n)
	if !ok {
		return
	}

	c.core.ReleaseHook()
	c.core.Pos = target
	c.core.HookPos = target

	if cfg.Race.Strip {
		c.activeWeapon = netconfig.WeaponHammer
		c.lastWeapon = netconfig.WeaponHammer
		c.weapons[netconfig.WeaponHammer].Got = true
		for w := netconfig.WeaponGun; w < netconfig.WeaponNinja; w++ {
			c.weapons[w].Got = false
		}
	}
}
