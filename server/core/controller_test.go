package core

import (
	"testing"

	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestNewControllerRejectsUnknownMode(t *testing.T) {
	log, _ := test.NewNullLogger()
	if _, err := NewController("ctf", nil, log); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestControllerModes(t *testing.T) {
	tests := []struct {
		mode   config.GameMode
		race   bool
		hpRace bool
	}{
		{config.ModeDeathmatch, false, false},
		{config.ModeRace, true, false},
		{config.ModeHPRace, true, true},
	}

	for _, tt := range tests {
		w := newTestWorld(t, tt.mode)
		if w.ctrl.IsRace() != tt.race || w.ctrl.IsHPRace() != tt.hpRace {
			t.Fatalf("expected %s race=%v hprace=%v", tt.mode, tt.race, tt.hpRace)
		}
	}
}

func TestSpawnLoadout(t *testing.T) {
	w := newTestWorld(t, config.ModeDeathmatch)
	chr := w.join(t, "alice").Character()

	if chr.Health() != 10 {
		t.Fatalf("expected full health, got %d", chr.Health())
	}
	if slot := chr.Weapon(netconfig.WeaponHammer); !slot.Got || slot.Ammo != -1 {
		t.Fatalf("expected an unlimited hammer, got %+v", slot)
	}
	if slot := chr.Weapon(netconfig.WeaponGun); !slot.Got || slot.Ammo != 10 {
		t.Fatalf("expected a gun with 10 rounds, got %+v", slot)
	}
	if chr.ActiveWeapon() != netconfig.WeaponGun {
		t.Fatalf("expected the gun drawn, got %v", chr.ActiveWeapon())
	}
}

func TestDeathmatchScoring(t *testing.T) {
	w := newTestWorld(t, config.ModeDeathmatch)
	a := w.join(t, "alice")
	b := w.join(t, "bob")

	b.Character().Die(a.CID(), netconfig.WeaponGun)
	if a.Score() != 1 {
		t.Fatalf("expected a kill to score 1, got %d", a.Score())
	}

	now := w.Tick()
	a.KillCharacter(netconfig.WeaponSelf)
	if a.Score() != 0 {
		t.Fatalf("expected a suicide to cost 1, got %d", a.Score())
	}
	if a.respawnTick != now+3*w.TickSpeed() {
		t.Fatalf("expected a 3 second respawn delay, got %d ticks", a.respawnTick-now)
	}
}

func TestTeamKillCostsAPoint(t *testing.T) {
	w := newTestWorld(t, config.ModeDeathmatch)
	w.cfg.Game.Teams = true
	a := w.join(t, "alice")
	b := w.join(t, "bob")

	if !w.ctrl.IsFriendlyFire(a.CID(), b.CID()) {
		t.Fatalf("expected two red players to be friends")
	}
	if w.ctrl.IsFriendlyFire(a.CID(), a.CID()) {
		t.Fatalf("expected no friendly fire with oneself")
	}

	b.Character().Die(a.CID(), netconfig.WeaponGun)
	if a.Score() != -1 {
		t.Fatalf("expected a team kill to cost 1, got %d", a.Score())
	}
}

func TestGameKillsAndRacesDoNotScore(t *testing.T) {
	w := newTestWorld(t, config.ModeDeathmatch)
	a := w.join(t, "alice")
	a.KillCharacter(netconfig.WeaponGame)
	if a.Score() != 0 {
		t.Fatalf("expected no score change for a game kill, got %d", a.Score())
	}

	r := newTestWorld(t, config.ModeRace)
	x := r.join(t, "alice")
	y := r.join(t, "bob")
	y.Character().Die(x.CID(), netconfig.WeaponHammer)
	if x.Score() != 0 {
		t.Fatalf("expected race kills not to score, got %d", x.Score())
	}
}

func TestRaceRecords(t *testing.T) {
	w := newTestWorld(t, config.ModeRace)
	a := w.join(t, "alice")
	chr := a.Character()

	cps := make([]float32, netconfig.MaxCheckpoints+1)
	cps[3] = 4.25
	w.ctrl.OnRaceFinish(chr, 12.5, cps)

	if rec, ok := w.ctrl.Record("alice"); !ok || rec.Time != 12.5 {
		t.Fatalf("expected a first record of 12.5, got %+v", rec)
	}
	if a.Info().BestTime != 12.5 || a.Score() != -12 {
		t.Fatalf("expected the scoreboard to show the record, got %+v", a.Info())
	}
	if best, ok := w.ctrl.BestCheckpoint(a.CID(), 3); !ok || best != 4.25 {
		t.Fatalf("expected checkpoint 3 at 4.25, got %v", best)
	}

	w.ctrl.OnRaceFinish(chr, 11, cps)
	w.ctrl.OnRaceFinish(chr, 13, cps)

	chats := w.out.chats()
	if chats[len(chats)-2] != "New record: 1.500 second(s) better." {
		t.Fatalf("expected a record message, got %q", chats[len(chats)-2])
	}
	if chats[len(chats)-1] != "2.000 second(s) worse, better luck next time." {
		t.Fatalf("expected a slower run message, got %q", chats[len(chats)-1])
	}
	if rec, _ := w.ctrl.Record("alice"); rec.Time != 11 {
		t.Fatalf("expected the record to stay at 11, got %v", rec.Time)
	}
	if _, ok := w.ctrl.BestCheckpoint(a.CID(), netconfig.MaxCheckpoints+1); ok {
		t.Fatalf("expected out of range checkpoints to be unknown")
	}
}

func TestPartnerRaceRecordsBoth(t *testing.T) {
	w := newTestWorld(t, config.ModeHPRace)
	a := w.join(t, "alice")
	b := w.join(t, "bob")
	a.RequestPartner(b.CID())
	b.RequestPartner(a.CID())
	a.OnInput(gamecore.Input{Fire: 1})
	for i := 0; i < 30 && a.Character() == nil; i++ {
		w.Step()
	}
	if a.Character() == nil {
		t.Fatalf("expected alice to respawn")
	}

	w.ctrl.OnRaceFinish(a.Character(), 20, nil)

	records := w.ctrl.Records()
	if len(records) != 2 || records[0].Name != "alice" || records[1].Name != "bob" {
		t.Fatalf("expected records for both partners, got %+v", records)
	}
}
