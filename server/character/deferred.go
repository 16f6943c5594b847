package character

import (
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

var stuckBox = mgl32.Vec2{gamecore.PhysSize, gamecore.PhysSize}

// TickDeferred integrates the movement prepared by Tick, emits movement
// sounds and refreshes the dead reckoning anchor.
func (c *Character) TickDeferred() {
	col := c.world.Collision()
	worldCore := c.world.Core()

	c.reckoning.advance(col, worldCore.Tuning)

	report := stuckReport{
		startPos: c.core.Pos,
		startVel: c.core.Vel,
		before:   col.TestBox(c.core.Pos, stuckBox),
	}

	c.withPairCollision(c.core.Move)
	report.afterMove = col.TestBox(c.core.Pos, stuckBox)
	c.core.Quantize()
	report.afterQuant = col.TestBox(c.core.Pos, stuckBox)
	c.pos = c.core.Pos

	if report.newlyStuck() {
		c.logStuck(report)
	}

	c.emitCoreEvents()

	if c.player.Team() == netconfig.TeamSpectators {
		c.pos = mgl32.Vec2{float32(c.input.TargetX), float32(c.input.TargetY)}
	}

	c.reckoning.update(&c.core, worldCore.Tuning.Gravity, c.world.Tick(), c.world.TickSpeed())
}

// emitCoreEvents turns the core's events into sounds. The owner predicts its
// own jump and hook sounds. In partner race only the pair hears them.
func (c *Character) emitCoreEvents() {
	ev := c.core.TriggeredEvents
	events := c.world.Events()
	cid := c.CID()

	if !c.world.Controller().IsHPRace() {
		mask := netconfig.MaskAllExceptOne(cid)
		if ev&netconfig.CoreEventGroundJump != 0 {
			events.CreateSound(c.pos, netconfig.SoundPlayerJump, mask)
		}
		if ev&netconfig.CoreEventHookAttachPlayer != 0 {
			events.CreateSound(c.pos, netconfig.SoundHookAttachPlayer, netconfig.MaskAll())
		}
		if ev&netconfig.CoreEventHookAttachGround != 0 {
			events.CreateSound(c.pos, netconfig.SoundHookAttachGround, mask)
		}
		if ev&netconfig.CoreEventHookHitNoHook != 0 {
			events.CreateSound(c.pos, netconfig.SoundHookNoAttach, mask)
		}
		return
	}

	partnerID := c.player.PartnerID()
	if partnerID < 0 {
		return
	}
	partner := c.world.Player(partnerID)
	if partner == nil || partner.Character() == nil {
		return
	}

	mask := netconfig.MaskOne(partnerID)
	hookedPartner := ev&netconfig.CoreEventHookAttachPlayer != 0 && c.core.HookedPlayer == partnerID
	if ev&netconfig.CoreEventGroundJump != 0 {
		events.CreateSound(c.pos, netconfig.SoundPlayerJump, mask)
	}
	if hookedPartner {
		events.CreateSound(c.pos, netconfig.SoundHookAttachPlayer, mask)
	}
	if ev&netconfig.CoreEventHookAttachGround != 0 {
		events.CreateSound(c.pos, netconfig.SoundHookAttachGround, mask)
	}
	if ev&netconfig.CoreEventHookHitNoHook != 0 {
		events.CreateSound(c.pos, netconfig.SoundHookNoAttach, mask)
	}
	if hookedPartner {
		events.CreateSound(c.pos, netconfig.SoundHookAttachPlayer, netconfig.MaskOne(cid))
	}
}
