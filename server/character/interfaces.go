package character

import (
	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// Collision is the tile query engine a character moves through.
type Collision interface {
	gamecore.Collision
	GetCollisionAt(x, y float32) int
	GetIndex(x, y float32) int
	IsCheckpoint(x, y float32) int
	IsTeleport(x, y float32) int
	TeleportTarget(n int) (mgl32.Vec2, bool)
	TestBox(pos, size mgl32.Vec2) bool
	GameLayerClipped(pos mgl32.Vec2) bool
}

// Controller is the game mode policy.
type Controller interface {
	IsRace() bool
	IsHPRace() bool
	IsFriendlyFire(cid1, cid2 int) bool
	OnCharacterSpawn(c *Character)
	// OnCharacterDeath returns the mode specific kill flags sent with the
	// kill message. killer is nil when the killer has left.
	OnCharacterDeath(victim *Character, killer Player, weapon netconfig.WeaponID) int
	// OnRaceFinish records a finished run. checkpoints holds the time of
	// every checkpoint passed, indexed by checkpoint number.
	OnRaceFinish(c *Character, seconds float32, checkpoints []float32)
	// BestCheckpoint returns the recorded checkpoint time of cid's best run.
	BestCheckpoint(cid, checkpoint int) (float32, bool)
}

// Player is the session side of a character's owner.
type Player interface {
	CID() int
	Team() int
	// PartnerID is the partner's client id in partner race, -1 without one.
	PartnerID() int
	SpectatorID() int
	PlayerFlags() int
	ViewPos() mgl32.Vec2
	Character() *Character
	SetRespawnTick(tick int)
	SetDieTick(tick int)
	KillCharacter(weapon netconfig.WeaponID)
}

// Events delivers effects and messages to clients.
type Events interface {
	CreateSound(pos mgl32.Vec2, sound netconfig.SoundID, mask netconfig.ClientMask)
	CreateHammerHit(pos mgl32.Vec2)
	CreateDeath(pos mgl32.Vec2, cid int)
	CreateDamageInd(pos mgl32.Vec2, angle float32, amount int)
	SendKill(killer, victim int, weapon netconfig.WeaponID, modeSpecial int)
	SendExtraProjectiles(cid int, projectiles []netcomponents.NetProjectileData)
	SendBroadcast(cid int, text string)
	// SendChat sends a chat line from cid to everyone, -1 for the server.
	SendChat(cid int, text string)
}

// ProjectileSpec describes a projectile to launch.
type ProjectileSpec struct {
	Weapon      netconfig.WeaponID
	Owner       int
	Pos         mgl32.Vec2
	Dir         mgl32.Vec2
	Lifetime    int // ticks
	Damage      int
	Explosive   bool
	Force       float32
	ImpactSound netconfig.SoundID
}

// World is the container a character lives in.
type World interface {
	Tick() int
	TickSpeed() int
	Paused() bool
	Core() *gamecore.WorldCore
	Collision() Collision
	Controller() Controller
	Events() Events
	Config() *config.Config

	// FindCharacters returns up to max live characters whose bodies touch
	// the circle at pos.
	FindCharacters(pos mgl32.Vec2, radius float32, max int) []*Character
	InsertCharacter(c *Character)
	RemoveCharacter(c *Character)

	// SpawnProjectile launches a projectile and returns its wire form.
	SpawnProjectile(spec ProjectileSpec) netcomponents.NetProjectileData
	SpawnLaser(pos, dir mgl32.Vec2, reach float32, owner int)

	// Player returns the player of cid or nil.
	Player(cid int) Player
	ClientName(cid int) string
}
