package config

import "github.com/automoto/teerace/shared/netconfig"

// WeaponConfig contains the static data of one weapon kind.
type WeaponConfig struct {
	FireDelay     int `toml:"fire_delay"`      // ms between shots
	AmmoRegenTime int `toml:"ammo_regen_time"` // ms per regenerated round, 0 for none
	MaxAmmo       int `toml:"max_ammo"`
	Damage        int `toml:"damage"`
}

// NinjaConfig contains the ability-specific ninja values.
type NinjaConfig struct {
	Duration int     `toml:"duration"` // ms the ability lasts after pickup
	Movetime int     `toml:"movetime"` // ms of forced movement per dash
	Velocity float32 `toml:"velocity"` // dash speed in units per tick
}

// WeaponsConfig holds the data of every weapon kind, one TOML table each.
type WeaponsConfig struct {
	Hammer       WeaponConfig `toml:"hammer"`
	Gun          WeaponConfig `toml:"gun"`
	Shotgun      WeaponConfig `toml:"shotgun"`
	Grenade      WeaponConfig `toml:"grenade"`
	Rifle        WeaponConfig `toml:"rifle"`
	Ninja        WeaponConfig `toml:"ninja"`
	NinjaAbility NinjaConfig  `toml:"ninja_ability"`
}

// DefaultWeapons returns the stock weapon table.
func DefaultWeapons() WeaponsConfig {
	return WeaponsConfig{
		Hammer:  WeaponConfig{FireDelay: 125, MaxAmmo: 10, Damage: 3},
		Gun:     WeaponConfig{FireDelay: 125, AmmoRegenTime: 500, MaxAmmo: 10, Damage: 1},
		Shotgun: WeaponConfig{FireDelay: 500, MaxAmmo: 10, Damage: 1},
		Grenade: WeaponConfig{FireDelay: 500, MaxAmmo: 10, Damage: 6},
		Rifle:   WeaponConfig{FireDelay: 800, MaxAmmo: 10, Damage: 5},
		Ninja:   WeaponConfig{FireDelay: 800, MaxAmmo: 10, Damage: 9},
		NinjaAbility: NinjaConfig{
			Duration: 15000,
			Movetime: 200,
			Velocity: 50,
		},
	}
}

// Get returns the data of w, or the hammer's for invalid ids.
func (c *WeaponsConfig) Get(w netconfig.WeaponID) WeaponConfig {
	switch w {
	case netconfig.WeaponGun:
		return c.Gun
	case netconfig.WeaponShotgun:
		return c.Shotgun
	case netconfig.WeaponGrenade:
		return c.Grenade
	case netconfig.WeaponRifle:
		return c.Rifle
	case netconfig.WeaponNinja:
		return c.Ninja
	default:
		return c.Hammer
	}
}
