// Package character simulates the body of one player on the server: input
// decoding, weapons and the ninja ability, movement through the shared core,
// damage and death, and the dead reckoning anchor sent to observers.
package character

import (
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// ProximityRadius is the radius other entities use to touch a character.
	ProximityRadius = gamecore.PhysSize

	maxHealth     = 10
	maxArmor      = 10
	maxHitObjects = 10

	// noWeapon marks an empty weapon queue.
	noWeapon netconfig.WeaponID = -1
)

type ninjaState struct {
	ActivationDir   mgl32.Vec2
	ActivationTick  int
	CurrentMoveTime int
	OldVelAmount    float32
}

// Character is one live player body. It is created on spawn and dies once.
type Character struct {
	world  World
	log    logrus.FieldLogger
	player Player

	pos   mgl32.Vec2
	core  gamecore.CharacterCore
	alive bool

	health int
	armor  int

	activeWeapon netconfig.WeaponID
	lastWeapon   netconfig.WeaponID
	queuedWeapon netconfig.WeaponID
	weapons      [netconfig.NumWeapons]WeaponSlot

	reloadTimer     int
	lastAction      int
	attackTick      int
	damageTaken     int
	damageTakenTick int
	emoteType       netconfig.EmoteID
	emoteStop       int

	ninja         ninjaState
	hitObjects    [maxHitObjects]*Character
	numObjectsHit int

	input           gamecore.Input
	prevInput       gamecore.Input
	latestInput     gamecore.Input
	latestPrevInput gamecore.Input
	numInputs       int

	reckoning reckoning
	race      raceTimer
}

// New creates a character that is not spawned yet.
func New(world World, log logrus.FieldLogger) *Character {
	return &Character{
		world: world,
		log:   log.WithField("component", "character"),
	}
}

// Spawn places the character at pos for player and registers its core with
// the world.
func (c *Character) Spawn(player Player, pos mgl32.Vec2) bool {
	c.emoteStop = -1
	c.lastAction = -1

	if c.world.Controller().IsRace() {
		c.activeWeapon = netconfig.WeaponHammer
	} else {
		c.activeWeapon = netconfig.WeaponGun
	}
	c.lastWeapon = netconfig.WeaponHammer
	c.queuedWeapon = noWeapon
	for i := range c.weapons {
		c.weapons[i].AmmoRegenStart = -1
	}

	c.race = raceTimer{}

	c.player = player
	c.pos = pos

	c.core.Reset()
	c.core.Init(c.world.Core(), c.world.Collision())
	c.core.Pos = pos
	c.world.Core().Register(player.CID(), &c.core)

	c.reckoning = reckoning{}

	c.world.InsertCharacter(c)
	c.alive = true

	c.world.Controller().OnCharacterSpawn(c)
	return true
}

// Destroy removes the character from the world without a death: no kill
// message, no effects and no scoring.
func (c *Character) Destroy() {
	if !c.alive {
		return
	}
	c.world.Core().Unregister(c.CID())
	c.world.RemoveCharacter(c)
	c.alive = false
}

func (c *Character) CID() int { return c.player.CID() }
func (c *Character) Player() Player { return c.player }
func (c *Character) Pos() mgl32.Vec2 { return c.pos }
func (c *Character) Alive() bool { return c.alive }
func (c *Character) Health() int { return c.health }
func (c *Character) Armor() int { return c.armor }
func (c *Character) ActiveWeapon() netconfig.WeaponID { return c.activeWeapon }
func (c *Character) ReloadTimer() int { return c.reloadTimer }
func (c *Character) RaceState() RaceState { return c.race.state }

// Core returns the authoritative movement core.
func (c *Character) Core() *gamecore.CharacterCore { return &c.core }

// Weapon returns the inventory slot of w.
func (c *Character) Weapon(w netconfig.WeaponID) WeaponSlot {
	if !w.Valid() {
		return WeaponSlot{}
	}
	return c.weapons[w]
}

// SetEmote shows emote until tick.
func (c *Character) SetEmote(emote netconfig.EmoteID, tick int) {
	c.emoteType = emote
	c.emoteStop = tick
}

// IncreaseHealth adds amount, refusing when already full.
func (c *Character) IncreaseHealth(amount int) bool {
	if c.health >= maxHealth {
		return false
	}
	c.health = lo.Clamp(c.health+amount, 0, maxHealth)
	return true
}

// IncreaseArmor adds amount, refusing when already full.
func (c *Character) IncreaseArmor(amount int) bool {
	if c.armor >= maxArmor {
		return false
	}
	c.armor = lo.Clamp(c.armor+amount, 0, maxArmor)
	return true
}

// SetWeapon makes w the active weapon. Invalid ids select the hammer.
func (c *Character) SetWeapon(w netconfig.WeaponID) {
	if w == c.activeWeapon {
		return
	}

	c.lastWeapon = c.activeWeapon
	c.queuedWeapon = noWeapon
	c.activeWeapon = w
	c.world.Events().CreateSound(c.pos, netconfig.SoundWeaponSwitch, netconfig.MaskAll())

	if !c.activeWeapon.Valid() {
		c.activeWeapon = netconfig.WeaponHammer
	}
}

// GiveWeapon adds w with ammo rounds. It fails when w is owned and full.
func (c *Character) GiveWeapon(w netconfig.WeaponID, ammo int) bool {
	if !w.Valid() {
		return false
	}
	maxAmmo := c.weaponConfig(w).MaxAmmo
	slot := &c.weapons[w]
	if slot.Ammo < maxAmmo || !slot.Got {
		slot.Got = true
		slot.Ammo = min(maxAmmo, ammo)
		return true
	}
	return false
}

// GiveNinja starts the ninja ability.
func (c *Character) GiveNinja() {
	c.ninja.ActivationTick = c.world.Tick()
	c.weapons[netconfig.WeaponNinja].Got = true
	c.weapons[netconfig.WeaponNinja].Ammo = -1
	if c.activeWeapon != netconfig.WeaponNinja {
		c.lastWeapon = c.activeWeapon
	}
	c.activeWeapon = netconfig.WeaponNinja

	c.world.Events().CreateSound(c.pos, netconfig.SoundPickupNinja, netconfig.MaskAll())
}
