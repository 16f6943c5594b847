package core

import (
	"errors"
	"fmt"

	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/server/character"
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/gamemath"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/solarlune/resolv"
)

// ErrServerFull is returned when no client slot is free.
var ErrServerFull = errors.New("server is full")

const (
	tagCharacter = "character"
	tagQuery     = "query"

	explosionRadius      = 135
	explosionInnerRadius = 48
	explosionMaxDamage   = 6
)

// GameWorld is one running map: players, their characters, projectiles and
// lasers. It is owned by the game loop goroutine.
type GameWorld struct {
	log    logrus.FieldLogger
	base   logrus.FieldLogger
	cfg    *config.Config
	level  *ServerLevel
	core   *gamecore.WorldCore
	ctrl   *Controller
	events *Events

	tick   int
	paused bool

	players     [netconfig.MaxClients]*Player
	characters  *orderedmap.OrderedMap[int, *character.Character]
	bodies      map[*resolv.Object]*character.Character
	bodyOf      map[*character.Character]*resolv.Object
	projectiles []*Projectile
	lasers      []*Laser
}

// NewGameWorld creates an empty world on level running the rules of
// cfg.Server.Mode.
func NewGameWorld(cfg *config.Config, level *ServerLevel, out Outbox, log logrus.FieldLogger) (*GameWorld, error) {
	w := &GameWorld{
		log:        log.WithField("component", "world"),
		base:       log,
		cfg:        cfg,
		level:      level,
		core:       gamecore.NewWorldCore(cfg.Tuning),
		events:     NewEvents(out),
		characters: orderedmap.NewOrderedMap[int, *character.Character](),
		bodies:     make(map[*resolv.Object]*character.Character),
		bodyOf:     make(map[*character.Character]*resolv.Object),
	}

	w.core.TickSpeed = cfg.Server.TickRate

	ctrl, err := NewController(cfg.Server.Mode, w, log)
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}
	w.ctrl = ctrl
	return w, nil
}

func (w *GameWorld) Tick() int                      { return w.tick }
func (w *GameWorld) TickSpeed() int                 { return w.cfg.Server.TickRate }
func (w *GameWorld) Paused() bool                   { return w.paused }
func (w *GameWorld) Core() *gamecore.WorldCore      { return w.core }
func (w *GameWorld) Collision() character.Collision { return w.level.Collision }
func (w *GameWorld) Controller() character.Controller {
	return w.ctrl
}
func (w *GameWorld) Events() character.Events { return w.events }
func (w *GameWorld) Config() *config.Config   { return w.cfg }

// Level returns the map the world runs on.
func (w *GameWorld) Level() *ServerLevel { return w.level }

// SetPaused freezes or resumes the simulation.
func (w *GameWorld) SetPaused(paused bool) {
	if w.paused != paused {
		w.log.Infof("paused=%v", paused)
	}
	w.paused = paused
}

// Characters returns the live characters in client id insertion order.
func (w *GameWorld) Characters() []*character.Character {
	out := make([]*character.Character, 0, w.characters.Len())
	for el := w.characters.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Projectiles returns the projectiles in flight.
func (w *GameWorld) Projectiles() []*Projectile { return w.projectiles }

// Lasers returns the active laser beams.
func (w *GameWorld) Lasers() []*Laser { return w.lasers }

// InsertCharacter adds c to the world and the body index.
func (w *GameWorld) InsertCharacter(c *character.Character) {
	w.characters.Set(c.CID(), c)

	pos := c.Pos()
	size := float64(character.ProximityRadius)
	obj := resolv.NewObject(float64(pos[0])-size/2, float64(pos[1])-size/2, size, size, tagCharacter)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	w.level.Space.Add(obj)
	w.bodies[obj] = c
	w.bodyOf[c] = obj
}

// RemoveCharacter drops c from the world and the body index.
func (w *GameWorld) RemoveCharacter(c *character.Character) {
	if cur, ok := w.characters.Get(c.CID()); ok && cur == c {
		w.characters.Delete(c.CID())
	}
	if obj, ok := w.bodyOf[c]; ok {
		w.level.Space.Remove(obj)
		delete(w.bodies, obj)
		delete(w.bodyOf, c)
	}
}

func (w *GameWorld) moveBody(c *character.Character) {
	obj, ok := w.bodyOf[c]
	if !ok {
		return
	}
	pos := c.Pos()
	obj.X = float64(pos[0]) - obj.W/2
	obj.Y = float64(pos[1]) - obj.H/2
	obj.Update()
}

// FindCharacters returns up to max characters whose bodies touch the circle
// at pos, in client id insertion order. The body index narrows the search
// to the cells around pos.
func (w *GameWorld) FindCharacters(pos mgl32.Vec2, radius float32, max int) []*character.Character {
	reach := float64(radius + character.ProximityRadius)
	query := resolv.NewObject(float64(pos[0])-reach, float64(pos[1])-reach, reach*2, reach*2, tagQuery)
	query.SetShape(resolv.NewRectangle(0, 0, reach*2, reach*2))
	w.level.Space.Add(query)
	defer w.level.Space.Remove(query)

	near := make(map[*character.Character]bool)
	if check := query.Check(0, 0, tagCharacter); check != nil {
		for _, obj := range check.ObjectsByTags(tagCharacter) {
			if c, ok := w.bodies[obj]; ok {
				near[c] = true
			}
		}
	}

	var out []*character.Character
	for el := w.characters.Front(); el != nil && len(out) < max; el = el.Next() {
		c := el.Value
		if near[c] && gamemath.Distance(c.Pos(), pos) < radius+character.ProximityRadius {
			out = append(out, c)
		}
	}
	return out
}

// IntersectCharacter returns the character closest to p0 whose body, grown
// by radius, touches the segment p0-p1, and the point on the segment where
// it was hit.
func (w *GameWorld) IntersectCharacter(p0, p1 mgl32.Vec2, radius float32, notThis *character.Character) (*character.Character, mgl32.Vec2) {
	closestLen := gamemath.Distance(p0, p1) * 100
	var closest *character.Character
	var at mgl32.Vec2

	for el := w.characters.Front(); el != nil; el = el.Next() {
		c := el.Value
		if c == notThis {
			continue
		}
		intersect := gamemath.ClosestPointOnLine(p0, p1, c.Pos())
		if gamemath.Distance(c.Pos(), intersect) >= character.ProximityRadius+radius {
			continue
		}
		if l := gamemath.Distance(p0, intersect); l < closestLen {
			closestLen = l
			closest = c
			at = intersect
		}
	}
	return closest, at
}

// CreateExplosion shows an explosion at pos and, unless noDamage, hurts and
// pushes every character in range with damage falling off past the inner
// radius.
func (w *GameWorld) CreateExplosion(pos mgl32.Vec2, owner int, weapon netconfig.WeaponID, noDamage bool) {
	w.events.CreateExplosion(pos)
	if noDamage {
		return
	}

	for _, c := range w.FindCharacters(pos, explosionRadius, netconfig.MaxClients) {
		diff := c.Pos().Sub(pos)
		forceDir := mgl32.Vec2{0, 1}
		l := diff.Len()
		if l > 0 {
			forceDir = gamemath.Normalize(diff)
		}
		l = 1 - lo.Clamp((l-explosionInnerRadius)/(explosionRadius-explosionInnerRadius), 0, 1)
		dmg := explosionMaxDamage * l
		if int(dmg) != 0 {
			c.TakeDamage(forceDir.Mul(dmg*2), int(dmg), owner, weapon)
		}
	}
}

// SpawnProjectile launches a projectile and returns its wire form.
func (w *GameWorld) SpawnProjectile(spec character.ProjectileSpec) netcomponents.NetProjectileData {
	p := newProjectile(w, spec)
	w.projectiles = append(w.projectiles, p)
	return p.Net()
}

// SpawnLaser fires a rifle beam. The first segment is traced immediately.
func (w *GameWorld) SpawnLaser(pos, dir mgl32.Vec2, reach float32, owner int) {
	w.lasers = append(w.lasers, newLaser(w, pos, dir, reach, owner))
}

// Player returns the player of cid or nil.
func (w *GameWorld) Player(cid int) character.Player {
	if p := w.GetPlayer(cid); p != nil {
		return p
	}
	return nil
}

// GetPlayer returns the concrete player of cid or nil.
func (w *GameWorld) GetPlayer(cid int) *Player {
	if cid < 0 || cid >= netconfig.MaxClients {
		return nil
	}
	return w.players[cid]
}

// ClientName returns the name of cid, or "(invalid)".
func (w *GameWorld) ClientName(cid int) string {
	if p := w.GetPlayer(cid); p != nil {
		return p.name
	}
	return "(invalid)"
}

// Players returns the connected players by client id.
func (w *GameWorld) Players() []*Player {
	return lo.Filter(w.players[:], func(p *Player, _ int) bool { return p != nil })
}

// AddPlayer gives name the lowest free client id.
func (w *GameWorld) AddPlayer(name string) (*Player, error) {
	if len(w.Players()) >= min(w.cfg.Server.MaxPlayers, netconfig.MaxClients) {
		return nil, ErrServerFull
	}
	for cid, p := range w.players {
		if p != nil {
			continue
		}
		player := newPlayer(w, cid, name)
		w.players[cid] = player
		w.log.Infof("player joined cid=%d name=%q", cid, name)
		w.events.SendChat(-1, fmt.Sprintf("'%s' entered and joined the game", name))
		return player, nil
	}
	return nil, ErrServerFull
}

// RemovePlayer kills the character of cid and frees its slot. A partner is
// left without a partner.
func (w *GameWorld) RemovePlayer(cid int) {
	p := w.GetPlayer(cid)
	if p == nil {
		return
	}
	p.KillCharacter(netconfig.WeaponGame)
	if partner := w.GetPlayer(p.partner); partner != nil {
		partner.partner = -1
	}
	for _, other := range w.Players() {
		if other.spectatorID == cid {
			other.spectatorID = -1
		}
	}
	w.players[cid] = nil

	w.log.Infof("player left cid=%d name=%q", cid, p.name)
	w.events.SendChat(-1, fmt.Sprintf("'%s' has left the game", p.name))
}

// Reset silently removes every character, projectile and laser and lets
// each player respawn on the next tick.
func (w *GameWorld) Reset() {
	for _, c := range w.Characters() {
		c.Destroy()
	}
	w.projectiles = nil
	w.lasers = nil

	for _, p := range w.Players() {
		p.chr = nil
		p.spawning = true
		p.respawnTick = w.tick
	}
	w.log.Info("world reset")
}

// spawnPos picks the spawn point with the fewest characters close to it.
func (w *GameWorld) spawnPos() (mgl32.Vec2, bool) {
	var best mgl32.Vec2
	bestScore := float32(-1)

	for _, sp := range w.level.SpawnPoints {
		pos := mgl32.Vec2{sp.X, sp.Y}
		var score float32
		for el := w.characters.Front(); el != nil; el = el.Next() {
			d := gamemath.Distance(pos, el.Value.Pos())
			if d < character.ProximityRadius {
				score += 1e9
			} else {
				score += 1 / d
			}
		}
		if bestScore < 0 || score < bestScore {
			best, bestScore = pos, score
		}
	}
	return best, bestScore >= 0
}

// Step advances the world by one tick: projectiles, lasers and characters
// tick, then every character integrates its movement, then players respawn.
func (w *GameWorld) Step() {
	w.tick++

	if w.paused {
		for _, c := range w.Characters() {
			c.TickPaused()
		}
		for _, p := range w.projectiles {
			p.startTick++
		}
		for _, l := range w.lasers {
			l.evalTick++
		}
	} else {
		for _, p := range w.projectiles {
			p.Tick()
		}
		for _, l := range w.lasers {
			l.Tick()
		}
		for _, c := range w.Characters() {
			if c.Alive() {
				c.Tick()
			}
		}
		for _, c := range w.Characters() {
			if c.Alive() {
				c.TickDeferred()
				w.moveBody(c)
			}
		}

		w.projectiles = lo.Filter(w.projectiles, func(p *Projectile, _ int) bool { return !p.destroyed })
		w.lasers = lo.Filter(w.lasers, func(l *Laser, _ int) bool { return !l.destroyed })
	}

	players := w.Players()
	for _, p := range players {
		p.Tick()
	}
	for _, p := range players {
		p.PostTick()
	}
}
