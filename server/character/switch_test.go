package character

import (
	"testing"

	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

func TestSetWeapon(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	c := w.spawn(0, mgl32.Vec2{320, 320})

	c.SetWeapon(netconfig.WeaponGun)
	if w.events.count(netconfig.SoundWeaponSwitch) != 0 {
		t.Fatalf("expected selecting the active weapon to be a no-op")
	}

	c.queuedWeapon = netconfig.WeaponShotgun
	c.SetWeapon(netconfig.WeaponHammer)
	if c.activeWeapon != netconfig.WeaponHammer || c.lastWeapon != netconfig.WeaponGun {
		t.Fatalf("expected hammer after gun, got %v after %v", c.activeWeapon, c.lastWeapon)
	}
	if c.queuedWeapon != noWeapon {
		t.Fatalf("expected queue cleared")
	}
	if w.events.count(netconfig.SoundWeaponSwitch) != 1 {
		t.Fatalf("expected a switch sound")
	}

	c.SetWeapon(netconfig.WeaponID(17))
	if c.activeWeapon != netconfig.WeaponHammer {
		t.Fatalf("expected invalid weapon to fall back to the hammer, got %v", c.activeWeapon)
	}
}

func switchInput(c *Character, in gamecore.Input) {
	c.latestPrevInput = gamecore.Input{}
	c.latestInput = in
	c.HandleWeaponSwitch()
}

func TestNextAndPrevWeapon(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	c := w.spawn(0, mgl32.Vec2{320, 320})
	c.GiveWeapon(netconfig.WeaponRifle, 10)

	// gun -> rifle skips the weapons not owned
	switchInput(c, gamecore.Input{NextWeapon: 1})
	if c.activeWeapon != netconfig.WeaponRifle {
		t.Fatalf("expected rifle, got %v", c.activeWeapon)
	}

	// rifle -> gun -> hammer
	switchInput(c, gamecore.Input{PrevWeapon: 3})
	if c.activeWeapon != netconfig.WeaponHammer {
		t.Fatalf("expected hammer, got %v", c.activeWeapon)
	}

	// hammer wraps back to rifle
	switchInput(c, gamecore.Input{PrevWeapon: 1})
	if c.activeWeapon != netconfig.WeaponRifle {
		t.Fatalf("expected wrap to rifle, got %v", c.activeWeapon)
	}
}

func TestWantedWeaponSelection(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	c := w.spawn(0, mgl32.Vec2{320, 320})

	switchInput(c, gamecore.Input{WantedWeapon: int(netconfig.WeaponGrenade) + 1})
	if c.activeWeapon != netconfig.WeaponGun || c.queuedWeapon != noWeapon {
		t.Fatalf("expected unowned weapon to be ignored")
	}

	c.GiveWeapon(netconfig.WeaponGrenade, 10)
	// direct selection wins over cycling
	switchInput(c, gamecore.Input{WantedWeapon: int(netconfig.WeaponGrenade) + 1, NextWeapon: 1})
	if c.activeWeapon != netconfig.WeaponGrenade {
		t.Fatalf("expected grenade, got %v", c.activeWeapon)
	}
}

func TestSwitchWaitsForReload(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	c := w.spawn(0, mgl32.Vec2{320, 320})
	c.reloadTimer = 2

	switchInput(c, gamecore.Input{WantedWeapon: int(netconfig.WeaponHammer) + 1})
	if c.activeWeapon != netconfig.WeaponGun || c.queuedWeapon != netconfig.WeaponHammer {
		t.Fatalf("expected hammer queued behind the reload")
	}

	c.HandleWeapons()
	c.HandleWeapons()
	c.DoWeaponSwitch()
	if c.activeWeapon != netconfig.WeaponHammer {
		t.Fatalf("expected queued switch after reload, got %v", c.activeWeapon)
	}
}

func TestSwitchBlockedByNinjaAndPartnerRace(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	c := w.spawn(0, mgl32.Vec2{320, 320})
	c.GiveNinja()

	switchInput(c, gamecore.Input{WantedWeapon: int(netconfig.WeaponHammer) + 1})
	if c.activeWeapon != netconfig.WeaponNinja {
		t.Fatalf("expected ninja to pin the weapon, got %v", c.activeWeapon)
	}

	w = newFakeWorld(open(), &fakeController{hpRace: true})
	c = w.spawn(0, mgl32.Vec2{320, 320})
	switchInput(c, gamecore.Input{WantedWeapon: int(netconfig.WeaponGun) + 1})
	if c.activeWeapon != netconfig.WeaponHammer {
		t.Fatalf("expected partner race to pin the weapon, got %v", c.activeWeapon)
	}
}

func TestGiveWeapon(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	c := w.spawn(0, mgl32.Vec2{320, 320})

	if c.GiveWeapon(netconfig.WeaponGun, 10) {
		t.Fatalf("expected a full gun to refuse ammo")
	}
	c.weapons[netconfig.WeaponGun].Ammo = 3
	if !c.GiveWeapon(netconfig.WeaponGun, 25) || c.weapons[netconfig.WeaponGun].Ammo != 10 {
		t.Fatalf("expected ammo capped at the maximum, got %d", c.weapons[netconfig.WeaponGun].Ammo)
	}
	if c.GiveWeapon(netconfig.WeaponID(-4), 1) {
		t.Fatalf("expected invalid weapon to be refused")
	}
}
