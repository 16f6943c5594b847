package core

import (
	"testing"

	"github.com/automoto/teerace/shared/messages"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

func TestEventsFollowMask(t *testing.T) {
	out := &fakeOutbox{}
	e := NewEvents(out)

	e.CreateSound(mgl32.Vec2{1, 2}, netconfig.SoundHit, netconfig.MaskOne(3)|netconfig.MaskOne(5))
	if len(out.msgs) != 2 || out.msgs[0].cid != 3 || out.msgs[1].cid != 5 {
		t.Fatalf("expected the sound for clients 3 and 5, got %+v", out.msgs)
	}
	if ev := out.msgs[0].msg.(messages.SoundEvent); ev.X != 1 || ev.Y != 2 || ev.SoundID != int(netconfig.SoundHit) {
		t.Fatalf("expected the sound event fields, got %+v", ev)
	}

	out.msgs = nil
	e.CreateSound(mgl32.Vec2{}, netconfig.SoundHit, netconfig.MaskAllExceptOne(0))
	if len(out.msgs) != netconfig.MaxClients-1 || len(out.to(0)) != 0 {
		t.Fatalf("expected everyone but client 0, got %d messages", len(out.msgs))
	}

	out.msgs = nil
	e.CreateSound(mgl32.Vec2{}, netconfig.SoundNone, netconfig.MaskAll())
	if len(out.msgs) != 0 {
		t.Fatalf("expected no message for a missing sound")
	}
}

func TestEventsBroadcastAndProjectiles(t *testing.T) {
	out := &fakeOutbox{}
	e := NewEvents(out)

	e.SendBroadcast(2, "Current time: 0 min 1 sec")
	if len(out.msgs) != 1 || out.msgs[0].cid != 2 {
		t.Fatalf("expected one broadcast to client 2, got %+v", out.msgs)
	}

	out.msgs = nil
	e.SendBroadcast(-1, "everyone")
	if len(out.msgs) != netconfig.MaxClients {
		t.Fatalf("expected a broadcast to every client, got %d", len(out.msgs))
	}

	out.msgs = nil
	e.SendExtraProjectiles(4, nil)
	if len(out.msgs) != 0 {
		t.Fatalf("expected nothing for no projectiles")
	}
	e.SendExtraProjectiles(4, []netcomponents.NetProjectileData{{X: 1}, {X: 2}})
	extra, ok := out.msgs[0].msg.(messages.ExtraProjectiles)
	if !ok || out.msgs[0].cid != 4 || len(extra.Projectiles) != 2 {
		t.Fatalf("expected two extra projectiles for client 4, got %+v", out.msgs)
	}
}
