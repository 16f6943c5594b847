package character

import (
	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/shared/collision"
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/leveldata"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// open is a 40x30 tile map with a floor on the bottom row.
func open() *leveldata.Level {
	level := leveldata.NewLevel(40, 30)
	for x := 0; x < 40; x++ {
		level.Set(x, 29, netconfig.ColFlagSolid)
	}
	return level
}

// tileCenter returns the world position of the centre of tile (x, y).
func tileCenter(x, y int) mgl32.Vec2 {
	return mgl32.Vec2{float32(x*leveldata.TileSize + leveldata.TileSize/2), float32(y*leveldata.TileSize + leveldata.TileSize/2)}
}

type fakeController struct {
	race     bool
	hpRace   bool
	friendly bool

	spawned  int
	deaths   int
	finished []float32
	best     map[int]float32
}

func (f *fakeController) IsRace() bool { return f.race || f.hpRace }
func (f *fakeController) IsHPRace() bool { return f.hpRace }

func (f *fakeController) IsFriendlyFire(cid1, cid2 int) bool {
	return f.friendly && cid1 != cid2
}

func (f *fakeController) OnCharacterSpawn(c *Character) {
	f.spawned++
	c.IncreaseHealth(10)
	c.GiveWeapon(netconfig.WeaponHammer, -1)
	c.GiveWeapon(netconfig.WeaponGun, 10)
}

func (f *fakeController) OnCharacterDeath(victim *Character, killer Player, weapon netconfig.WeaponID) int {
	f.deaths++
	return 0
}

func (f *fakeController) OnRaceFinish(c *Character, seconds float32, checkpoints []float32) {
	f.finished = append(f.finished, seconds)
}

func (f *fakeController) BestCheckpoint(cid, checkpoint int) (float32, bool) {
	t, ok := f.best[checkpoint]
	return t, ok
}

type fakePlayer struct {
	world       *fakeWorld
	cid         int
	team        int
	partner     int
	spectatorID int
	flags       int
	view        mgl32.Vec2
	chr         *Character
	respawnTick int
	dieTick     int
}

func (p *fakePlayer) CID() int { return p.cid }
func (p *fakePlayer) Team() int { return p.team }
func (p *fakePlayer) PartnerID() int { return p.partner }
func (p *fakePlayer) SpectatorID() int { return p.spectatorID }
func (p *fakePlayer) PlayerFlags() int { return p.flags }
func (p *fakePlayer) ViewPos() mgl32.Vec2 { return p.view }
func (p *fakePlayer) Character() *Character { return p.chr }
func (p *fakePlayer) SetRespawnTick(tick int) { p.respawnTick = tick }
func (p *fakePlayer) SetDieTick(tick int) { p.dieTick = tick }

func (p *fakePlayer) KillCharacter(weapon netconfig.WeaponID) {
	if p.chr == nil {
		return
	}
	p.chr.Die(p.cid, weapon)
	p.chr = nil
}

type soundEvent struct {
	pos   mgl32.Vec2
	sound netconfig.SoundID
	mask  netconfig.ClientMask
}

type killEvent struct {
	killer, victim int
	weapon         netconfig.WeaponID
}

type fakeEvents struct {
	sounds     []soundEvent
	hammerHits []mgl32.Vec2
	deaths     []int
	damageInds []float32
	kills      []killEvent
	extra      map[int]int
	broadcasts []string
	chats      []string
}

func (e *fakeEvents) CreateSound(pos mgl32.Vec2, sound netconfig.SoundID, mask netconfig.ClientMask) {
	e.sounds = append(e.sounds, soundEvent{pos: pos, sound: sound, mask: mask})
}

func (e *fakeEvents) CreateHammerHit(pos mgl32.Vec2) { e.hammerHits = append(e.hammerHits, pos) }
func (e *fakeEvents) CreateDeath(pos mgl32.Vec2, cid int) {
	e.deaths = append(e.deaths, cid)
}

func (e *fakeEvents) CreateDamageInd(pos mgl32.Vec2, angle float32, amount int) {
	e.damageInds = append(e.damageInds, angle)
}

func (e *fakeEvents) SendKill(killer, victim int, weapon netconfig.WeaponID, modeSpecial int) {
	e.kills = append(e.kills, killEvent{killer: killer, victim: victim, weapon: weapon})
}

func (e *fakeEvents) SendExtraProjectiles(cid int, projectiles []netcomponents.NetProjectileData) {
	e.extra[cid] += len(projectiles)
}

func (e *fakeEvents) SendBroadcast(cid int, text string) { e.broadcasts = append(e.broadcasts, text) }
func (e *fakeEvents) SendChat(cid int, text string) { e.chats = append(e.chats, text) }

// count returns how many times sound was played.
func (e *fakeEvents) count(sound netconfig.SoundID) int {
	return lo.CountBy(e.sounds, func(s soundEvent) bool { return s.sound == sound })
}

type fakeWorld struct {
	tick   int
	paused bool
	core   *gamecore.WorldCore
	col    *collision.Collision
	ctrl   *fakeController
	events *fakeEvents
	cfg    *config.Config
	log    *logrus.Logger
	hook   *test.Hook

	chars       []*Character
	players     [netconfig.MaxClients]*fakePlayer
	projectiles []ProjectileSpec
	lasers      int
}

func newFakeWorld(level *leveldata.Level, ctrl *fakeController) *fakeWorld {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	cfg := config.Default()
	return &fakeWorld{
		tick:   1,
		core:   gamecore.NewWorldCore(cfg.Tuning),
		col:    collision.New(level),
		ctrl:   ctrl,
		events: &fakeEvents{extra: make(map[int]int)},
		cfg:    cfg,
		log:    log,
		hook:   hook,
	}
}

func (w *fakeWorld) Tick() int { return w.tick }
func (w *fakeWorld) TickSpeed() int { return netconfig.TickSpeed }
func (w *fakeWorld) Paused() bool { return w.paused }
func (w *fakeWorld) Core() *gamecore.WorldCore { return w.core }
func (w *fakeWorld) Collision() Collision { return w.col }
func (w *fakeWorld) Controller() Controller { return w.ctrl }
func (w *fakeWorld) Events() Events { return w.events }
func (w *fakeWorld) Config() *config.Config { return w.cfg }

func (w *fakeWorld) FindCharacters(pos mgl32.Vec2, radius float32, max int) []*Character {
	var out []*Character
	for _, c := range w.chars {
		if len(out) == max {
			break
		}
		if gamemath.Distance(c.pos, pos) < radius+ProximityRadius {
			out = append(out, c)
		}
	}
	return out
}

func (w *fakeWorld) InsertCharacter(c *Character) { w.chars = append(w.chars, c) }
func (w *fakeWorld) RemoveCharacter(c *Character) { w.chars = lo.Without(w.chars, c) }

func (w *fakeWorld) SpawnProjectile(spec ProjectileSpec) netcomponents.NetProjectileData {
	w.projectiles = append(w.projectiles, spec)
	return netcomponents.NetProjectileData{X: gamemath.Round(spec.Pos[0]), Y: gamemath.Round(spec.Pos[1]), StartTick: w.tick}
}

func (w *fakeWorld) SpawnLaser(pos, dir mgl32.Vec2, reach float32, owner int) { w.lasers++ }

func (w *fakeWorld) Player(cid int) Player {
	if cid < 0 || cid >= netconfig.MaxClients || w.players[cid] == nil {
		return nil
	}
	return w.players[cid]
}

func (w *fakeWorld) ClientName(cid int) string {
	if w.Player(cid) == nil {
		return "(invalid)"
	}
	return []string{"alice", "bob", "carol", "dave"}[cid%4]
}

// spawn creates a player cid with a live character at pos.
func (w *fakeWorld) spawn(cid int, pos mgl32.Vec2) *Character {
	p := &fakePlayer{world: w, cid: cid, partner: -1, spectatorID: -1, view: pos}
	w.players[cid] = p
	c := New(w, w.log)
	c.Spawn(p, pos)
	p.chr = c
	return c
}

// pair makes a and b partners.
func pair(a, b *Character) {
	a.player.(*fakePlayer).partner = b.CID()
	b.player.(*fakePlayer).partner = a.CID()
}

// fireHeld returns in with the fire button held down.
func fireHeld(in gamecore.Input) gamecore.Input {
	if in.Fire&1 == 0 {
		in.Fire++
	}
	return in
}

// step runs one full world tick for the given characters.
func (w *fakeWorld) step(chars ...*Character) {
	w.tick++
	for _, c := range chars {
		if c.alive {
			c.Tick()
		}
	}
	for _, c := range chars {
		if c.alive {
			c.TickDeferred()
		}
	}
}
