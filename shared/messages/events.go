package messages

import "github.com/automoto/teerace/shared/netcomponents"

// SoundEvent plays a sound at a world position.
type SoundEvent struct {
	X, Y    float32
	SoundID int
}

// HammerHitEvent spawns the hammer impact effect.
type HammerHitEvent struct {
	X, Y float32
}

// DeathEvent spawns the death effect of a character.
type DeathEvent struct {
	X, Y     float32
	ClientID int
}

// DamageIndEvent spawns a damage indicator; Angle spreads repeated hits.
type DamageIndEvent struct {
	X, Y   float32
	Angle  float32
	Amount int
}

// ExplosionEvent spawns the explosion effect.
type ExplosionEvent struct {
	X, Y float32
}

// KillMessage is broadcast when a character dies.
type KillMessage struct {
	Killer      int
	Victim      int
	Weapon      int
	ModeSpecial int
}

// ExtraProjectiles is sent to the shooter so its own projectiles appear
// without waiting for the next snapshot.
type ExtraProjectiles struct {
	Projectiles []netcomponents.NetProjectileData
}

// Broadcast is a centred text line, used for the race timer.
type Broadcast struct {
	Text string
}

// ChatMessage is a line of server chat.
type ChatMessage struct {
	ClientID int // -1 for the server
	Text     string
}

// CharacterSnapshot is sent to each client every tick with its own character
// in full detail, including the fields other observers see as zero.
type CharacterSnapshot struct {
	Tick      int
	Character netcomponents.NetCharacterData
}
