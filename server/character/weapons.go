package character

import (
	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/netconfig"
)

// WeaponSlot is the inventory state of one weapon kind.
type WeaponSlot struct {
	Got            bool
	Ammo           int // -1 is unlimited
	AmmoRegenStart int // -1 while not regenerating
}

// weaponSpec describes how a weapon kind fires. Projectile weapons launch one
// projectile per entry of spread, offset from the aim angle by that many
// radians.
type weaponSpec struct {
	fullAuto    bool
	fireSound   netconfig.SoundID
	spread      []float32
	lifetime    func(t *gamecore.Tuning) float32
	explosive   bool
	impactSound netconfig.SoundID
}

var weaponSpecs = [netconfig.NumWeapons]weaponSpec{
	netconfig.WeaponHammer: {
		fireSound: netconfig.SoundHammerFire,
	},
	netconfig.WeaponGun: {
		fireSound:   netconfig.SoundGunFire,
		spread:      []float32{0},
		lifetime:    func(t *gamecore.Tuning) float32 { return t.GunLifetime },
		impactSound: netconfig.SoundNone,
	},
	netconfig.WeaponShotgun: {
		fullAuto:    true,
		fireSound:   netconfig.SoundShotgunFire,
		spread:      []float32{-0.185, -0.070, 0, 0.070, 0.185},
		lifetime:    func(t *gamecore.Tuning) float32 { return t.ShotgunLifetime },
		impactSound: netconfig.SoundNone,
	},
	netconfig.WeaponGrenade: {
		fullAuto:    true,
		fireSound:   netconfig.SoundGrenadeFire,
		spread:      []float32{0},
		lifetime:    func(t *gamecore.Tuning) float32 { return t.GrenadeLifetime },
		explosive:   true,
		impactSound: netconfig.SoundGrenadeExplode,
	},
	netconfig.WeaponRifle: {
		fullAuto:  true,
		fireSound: netconfig.SoundRifleFire,
	},
	netconfig.WeaponNinja: {
		fireSound: netconfig.SoundNinjaFire,
	},
}

func specFor(w netconfig.WeaponID) *weaponSpec {
	if !w.Valid() {
		return &weaponSpecs[netconfig.WeaponHammer]
	}
	return &weaponSpecs[w]
}

func (c *Character) weaponConfig(w netconfig.WeaponID) config.WeaponConfig {
	return c.world.Config().Weapons.Get(w)
}

func (c *Character) ninjaConfig() config.NinjaConfig {
	return c.world.Config().Weapons.NinjaAbility
}
