package core

import (
	"errors"
	"fmt"

	"github.com/automoto/teerace/server/character"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
)

// syncKind mirrors one kind of game object into networked ECS entities. An
// entity is created the first time its object is seen and removed once the
// object is gone.
type syncKind[K comparable, T any] struct {
	name     string
	comp     *donburi.ComponentType[T]
	interp   bool
	entities map[K]donburi.Entity
}

func newSyncKind[K comparable, T any](name string, comp *donburi.ComponentType[T], interp bool) *syncKind[K, T] {
	return &syncKind[K, T]{
		name:     name,
		comp:     comp,
		interp:   interp,
		entities: make(map[K]donburi.Entity),
	}
}

func (k *syncKind[K, T]) sync(ecs donburi.World, live []K, data func(K) T) error {
	seen := make(map[K]bool, len(live))
	for _, obj := range live {
		seen[obj] = true

		entity, ok := k.entities[obj]
		if !ok {
			entity = ecs.Create(k.comp)
			v := data(obj)
			k.comp.Set(ecs.Entry(entity), &v)

			var err error
			if k.interp {
				err = srvsync.NetworkSync(ecs, &entity, srvsync.WithInterp(k.comp))
			} else {
				err = srvsync.NetworkSync(ecs, &entity, k.comp)
			}
			if err != nil {
				ecs.Remove(entity)
				return fmt.Errorf("sync %s: %w", k.name, err)
			}
			k.entities[obj] = entity
			continue
		}

		v := data(obj)
		k.comp.Set(ecs.Entry(entity), &v)
	}

	for obj, entity := range k.entities {
		if seen[obj] {
			continue
		}
		if ecs.Valid(entity) {
			ecs.Remove(entity)
		}
		delete(k.entities, obj)
	}
	return nil
}

func (k *syncKind[K, T]) networkID(ecs donburi.World, obj K) (esync.NetworkId, bool) {
	entity, ok := k.entities[obj]
	if !ok || !ecs.Valid(entity) {
		return 0, false
	}
	nid := esync.GetNetworkId(ecs.Entry(entity))
	if nid == nil {
		return 0, false
	}
	return *nid, true
}

// mirror publishes the game world to clients through the esync snapshot of
// an ECS world. Characters are published as every observer sees them; the
// private fields go to each client separately.
type mirror struct {
	ecs donburi.World

	characters  *syncKind[*character.Character, netcomponents.NetCharacterData]
	projectiles *syncKind[*Projectile, netcomponents.NetProjectileData]
	lasers      *syncKind[*Laser, netcomponents.NetLaserData]
	players     *syncKind[*Player, netcomponents.NetPlayerInfoData]
	gameState   *syncKind[*GameWorld, netcomponents.NetGameStateData]
}

func newMirror(ecs donburi.World) *mirror {
	return &mirror{
		ecs:         ecs,
		characters:  newSyncKind[*character.Character]("character", netcomponents.NetCharacter, true),
		projectiles: newSyncKind[*Projectile]("projectile", netcomponents.NetProjectile, false),
		lasers:      newSyncKind[*Laser]("laser", netcomponents.NetLaser, false),
		players:     newSyncKind[*Player]("player info", netcomponents.NetPlayerInfo, false),
		gameState:   newSyncKind[*GameWorld]("game state", netcomponents.NetGameState, false),
	}
}

// sync brings the ECS world up to date with w.
func (m *mirror) sync(w *GameWorld) error {
	return errors.Join(
		m.characters.sync(m.ecs, w.Characters(), func(c *character.Character) netcomponents.NetCharacterData {
			data, _ := c.Snap(character.PublicView)
			return data
		}),
		m.projectiles.sync(m.ecs, w.Projectiles(), (*Projectile).Net),
		m.lasers.sync(m.ecs, w.Lasers(), (*Laser).Net),
		m.players.sync(m.ecs, w.Players(), (*Player).Info),
		m.gameState.sync(m.ecs, []*GameWorld{w}, func(w *GameWorld) netcomponents.NetGameStateData {
			return netcomponents.NetGameStateData{
				Tick:   w.tick,
				Paused: w.paused,
				Mode:   string(w.ctrl.Mode()),
				Map:    w.level.Name,
			}
		}),
	)
}

// playerNetworkID returns the network id of p's scoreboard entity.
func (m *mirror) playerNetworkID(p *Player) (esync.NetworkId, bool) {
	return m.players.networkID(m.ecs, p)
}
