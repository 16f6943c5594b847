package character

import (
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
)

// view distance of a client around its view position
const (
	viewRangeX    = 1000
	viewRangeY    = 800
	viewRangeDist = 1100

	blinkInterval = 250
	blinkTicks    = 5
)

// PublicView snaps a character for every observer at once: nothing is
// clipped and the private status fields stay zero.
const PublicView = -2

// Snap builds the character as seen by snappingClient, -1 for a recorder
// that sees everything or PublicView. It reports false when the client must
// not see it.
func (c *Character) Snap(snappingClient int) (netcomponents.NetCharacterData, bool) {
	var out netcomponents.NetCharacterData
	cid := c.CID()

	var snapper Player
	if snappingClient >= 0 {
		snapper = c.world.Player(snappingClient)
	}
	if c.networkClipped(snapper) {
		return out, false
	}

	// partners only see each other
	if snapper != nil && snapper.PartnerID() >= 0 && snappingClient != cid && cid != snapper.PartnerID() {
		return out, false
	}

	now := c.world.Tick()
	out.ClientID = cid
	out.Core = c.reckoning.snapshot(&c.core, c.world.Paused())

	if c.emoteStop < now {
		c.emoteType = netconfig.EmoteNormal
		c.emoteStop = -1
	}
	out.Emote = int(c.emoteType)

	out.Weapon = int(c.activeWeapon)
	out.AttackTick = c.attackTick
	out.Core.Direction = c.input.Direction

	if c.showsStatusTo(snappingClient, snapper) {
		out.Health = c.health
		out.Armor = c.armor
		if ammo := c.weapons[c.activeWeapon].Ammo; ammo > 0 {
			out.AmmoCount = ammo
		}
	}

	if c.emoteType == netconfig.EmoteNormal && blinkInterval-((now-c.lastAction)%blinkInterval) < blinkTicks {
		out.Emote = int(netconfig.EmoteBlink)
	}

	out.PlayerFlags = c.player.PlayerFlags()
	return out, true
}

// showsStatusTo reports whether health, armor and ammo are visible to the
// snapping client: the owner, a recorder, or a spectator following the owner
// unless spectating is strict.
func (c *Character) showsStatusTo(snappingClient int, snapper Player) bool {
	if snappingClient == c.CID() || snappingClient == -1 {
		return true
	}
	return snapper != nil && !c.world.Config().Game.StrictSpectateMode && snapper.SpectatorID() == c.CID()
}

func (c *Character) networkClipped(snapper Player) bool {
	if snapper == nil {
		return false
	}
	view := snapper.ViewPos()
	dx := view[0] - c.pos[0]
	dy := view[1] - c.pos[1]
	if dx > viewRangeX || dx < -viewRangeX || dy > viewRangeY || dy < -viewRangeY {
		return true
	}
	return gamemath.Distance(view, c.pos) > viewRangeDist
}
