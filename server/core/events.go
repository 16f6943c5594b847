package core

import (
	"github.com/automoto/teerace/shared/messages"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// Outbox delivers a message to one connected client. Messages to client ids
// without a connection are dropped.
type Outbox interface {
	SendTo(cid int, msg any)
}

// Events turns world effects into wire messages for the clients a recipient
// mask addresses.
type Events struct {
	out Outbox
}

// NewEvents creates an event sink writing to out.
func NewEvents(out Outbox) *Events {
	return &Events{out: out}
}

func (e *Events) deliver(mask netconfig.ClientMask, msg any) {
	for cid := 0; cid < netconfig.MaxClients; cid++ {
		if mask&netconfig.MaskOne(cid) != 0 {
			e.out.SendTo(cid, msg)
		}
	}
}

func (e *Events) CreateSound(pos mgl32.Vec2, sound netconfig.SoundID, mask netconfig.ClientMask) {
	if sound < 0 {
		return
	}
	e.deliver(mask, messages.SoundEvent{X: pos[0], Y: pos[1], SoundID: int(sound)})
}

func (e *Events) CreateHammerHit(pos mgl32.Vec2) {
	e.deliver(netconfig.MaskAll(), messages.HammerHitEvent{X: pos[0], Y: pos[1]})
}

func (e *Events) CreateDeath(pos mgl32.Vec2, cid int) {
	e.deliver(netconfig.MaskAll(), messages.DeathEvent{X: pos[0], Y: pos[1], ClientID: cid})
}

func (e *Events) CreateDamageInd(pos mgl32.Vec2, angle float32, amount int) {
	e.deliver(netconfig.MaskAll(), messages.DamageIndEvent{X: pos[0], Y: pos[1], Angle: angle, Amount: amount})
}

// CreateExplosion spawns the explosion effect only; damage is applied by the
// world.
func (e *Events) CreateExplosion(pos mgl32.Vec2) {
	e.deliver(netconfig.MaskAll(), messages.ExplosionEvent{X: pos[0], Y: pos[1]})
}

func (e *Events) SendKill(killer, victim int, weapon netconfig.WeaponID, modeSpecial int) {
	e.deliver(netconfig.MaskAll(), messages.KillMessage{
		Killer:      killer,
		Victim:      victim,
		Weapon:      int(weapon),
		ModeSpecial: modeSpecial,
	})
}

func (e *Events) SendExtraProjectiles(cid int, projectiles []netcomponents.NetProjectileData) {
	if len(projectiles) == 0 {
		return
	}
	e.out.SendTo(cid, messages.ExtraProjectiles{Projectiles: projectiles})
}

// SendBroadcast shows text to cid, or to everyone for a negative cid.
func (e *Events) SendBroadcast(cid int, text string) {
	if cid < 0 {
		e.deliver(netconfig.MaskAll(), messages.Broadcast{Text: text})
		return
	}
	e.out.SendTo(cid, messages.Broadcast{Text: text})
}

func (e *Events) SendChat(cid int, text string) {
	e.deliver(netconfig.MaskAll(), messages.ChatMessage{ClientID: cid, Text: text})
}
