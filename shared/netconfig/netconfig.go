// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must stay free of simulation and transport
// dependencies so any binary can import it.
package netconfig

const (
	// TickSpeed is the number of simulation ticks per second.
	TickSpeed = 50

	// MaxClients bounds client ids to [0, MaxClients).
	MaxClients = 16

	// InputStateMask reduces held-button counters to a 64 state cycle.
	// Odd states mean "held", even states mean "released".
	InputStateMask = 0x3f
)

// WeaponID identifies a weapon kind. Negative ids are damage sources that are
// not real weapons.
type WeaponID int

const (
	WeaponGame  WeaponID = -3 // team switch, round restart
	WeaponSelf  WeaponID = -2 // console kill
	WeaponWorld WeaponID = -1 // death tiles, leaving the map

	WeaponHammer WeaponID = iota - 3
	WeaponGun
	WeaponShotgun
	WeaponGrenade
	WeaponRifle
	WeaponNinja

	NumWeapons = int(WeaponNinja) + 1
)

var weaponNames = map[WeaponID]string{
	WeaponGame:    "game",
	WeaponSelf:    "self",
	WeaponWorld:   "world",
	WeaponHammer:  "hammer",
	WeaponGun:     "gun",
	WeaponShotgun: "shotgun",
	WeaponGrenade: "grenade",
	WeaponRifle:   "rifle",
	WeaponNinja:   "ninja",
}

func (w WeaponID) String() string {
	if name, ok := weaponNames[w]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether w is a selectable weapon.
func (w WeaponID) Valid() bool {
	return w >= WeaponHammer && int(w) < NumWeapons
}

// Team constants.
const (
	TeamSpectators = -1
	TeamRed        = 0
	TeamBlue       = 1
)

// EmoteID is the face a character shows.
type EmoteID int

const (
	EmoteNormal EmoteID = iota
	EmotePain
	EmoteHappy
	EmoteSurprise
	EmoteAngry
	EmoteBlink
)

// HookState of a character core.
type HookState int

const (
	HookRetracted    HookState = -1
	HookIdle         HookState = 0
	HookRetractStart HookState = 1
	HookRetractEnd   HookState = 3
	HookFlying       HookState = 4
	HookGrabbed      HookState = 5
)

// CoreEvent flags are raised by a core during one tick.
type CoreEvent int

const (
	CoreEventGroundJump CoreEvent = 1 << iota
	CoreEventAirJump
	CoreEventHookLaunch
	CoreEventHookAttachPlayer
	CoreEventHookAttachGround
	CoreEventHookHitNoHook
	CoreEventHookRetract
)

// Collision flags returned by tile lookups.
const (
	ColFlagSolid  = 1
	ColFlagDeath  = 2
	ColFlagNoHook = 4
)

// Race layer tile kinds.
const (
	TileNone = iota
	TileBoost
	TileBoostR
	TileBoostL
	TileJumper
	TileBegin
	TileEnd
)

// MaxCheckpoints is the number of numbered checkpoint tiles a race map may use.
const MaxCheckpoints = 25

// Player flags sent with every input.
const (
	PlayerFlagPlaying    = 1 << 0
	PlayerFlagInMenu     = 1 << 1
	PlayerFlagChatting   = 1 << 2
	PlayerFlagScoreboard = 1 << 3
)
