package netconfig

// SoundID identifies a positional sound effect.
type SoundID int

const (
	SoundGunFire SoundID = iota
	SoundShotgunFire
	SoundGrenadeFire
	SoundHammerFire
	SoundHammerHit
	SoundNinjaFire
	SoundGrenadeExplode
	SoundNinjaHit
	SoundRifleFire
	SoundRifleBounce
	SoundWeaponSwitch
	SoundPlayerPainShort
	SoundPlayerPainLong
	SoundBodyLand
	SoundPlayerAirJump
	SoundPlayerJump
	SoundPlayerDie
	SoundPlayerSpawn
	SoundPlayerSkid
	SoundTeeCry
	SoundHookLoop
	SoundHookAttachGround
	SoundHookAttachPlayer
	SoundHookNoAttach
	SoundPickupHealth
	SoundPickupArmor
	SoundPickupGrenade
	SoundPickupShotgun
	SoundPickupNinja
	SoundWeaponSpawn
	SoundWeaponNoAmmo
	SoundHit

	// SoundNone marks a projectile without an impact sound.
	SoundNone SoundID = -1
)

// ClientMask is a recipient bitmask with one bit per client id.
type ClientMask uint64

// MaskAll addresses every client.
func MaskAll() ClientMask {
	return ^ClientMask(0)
}

// MaskOne addresses a single client.
func MaskOne(cid int) ClientMask {
	return ClientMask(1) << uint(cid)
}

// MaskAllExceptOne addresses every client but cid.
func MaskAllExceptOne(cid int) ClientMask {
	return MaskAll() ^ MaskOne(cid)
}

// Has reports whether cid is addressed by m.
func (m ClientMask) Has(cid int) bool {
	return m&MaskOne(cid) != 0
}
