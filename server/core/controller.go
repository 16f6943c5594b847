package core

import (
	"fmt"

	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/server/character"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

// RaceRecord is the best finished run of one player name.
type RaceRecord struct {
	Name        string
	Time        float32
	Checkpoints [netconfig.MaxCheckpoints + 1]float32
}

// Controller applies the rules of the configured game mode: spawn loadout,
// kill scoring, friendly fire and race records. Records are kept per player
// name for the lifetime of the process.
type Controller struct {
	mode  config.GameMode
	world *GameWorld
	log   logrus.FieldLogger

	records *orderedmap.OrderedMap[string, RaceRecord]
}

// NewController creates the controller of mode.
func NewController(mode config.GameMode, w *GameWorld, log logrus.FieldLogger) (*Controller, error) {
	switch mode {
	case config.ModeDeathmatch, config.ModeRace, config.ModeHPRace:
	default:
		return nil, fmt.Errorf("unknown game mode %q", mode)
	}
	return &Controller{
		mode:    mode,
		world:   w,
		log:     log.WithField("component", "controller"),
		records: orderedmap.NewOrderedMap[string, RaceRecord](),
	}, nil
}

func (c *Controller) Mode() config.GameMode { return c.mode }

func (c *Controller) IsRace() bool {
	return c.mode == config.ModeRace || c.mode == config.ModeHPRace
}

func (c *Controller) IsHPRace() bool { return c.mode == config.ModeHPRace }

// IsFriendlyFire reports whether cid1 and cid2 are different players on the
// same team of a team game.
func (c *Controller) IsFriendlyFire(cid1, cid2 int) bool {
	if cid1 == cid2 || !c.world.cfg.Game.Teams {
		return false
	}
	p1, p2 := c.world.GetPlayer(cid1), c.world.GetPlayer(cid2)
	if p1 == nil || p2 == nil {
		return false
	}
	return p1.team == p2.team
}

func (c *Controller) OnCharacterSpawn(chr *character.Character) {
	chr.IncreaseHealth(10)
	chr.GiveWeapon(netconfig.WeaponHammer, -1)
	chr.GiveWeapon(netconfig.WeaponGun, 10)
}

// OnCharacterDeath scores a kill: suicides and team kills cost a point,
// other kills earn one. Races keep their score as the best time. A console
// kill delays the respawn.
func (c *Controller) OnCharacterDeath(victim *character.Character, killer character.Player, weapon netconfig.WeaponID) int {
	if killer == nil || weapon == netconfig.WeaponGame {
		return 0
	}

	if !c.IsRace() {
		if k := c.world.GetPlayer(killer.CID()); k != nil {
			switch {
			case killer.CID() == victim.CID():
				k.AddScore(-1)
			case c.IsFriendlyFire(killer.CID(), victim.CID()):
				k.AddScore(-1)
			default:
				k.AddScore(1)
			}
		}
	}

	if weapon == netconfig.WeaponSelf {
		victim.Player().SetRespawnTick(c.world.tick + c.world.TickSpeed()*3)
	}
	return 0
}

// OnRaceFinish keeps the run when it beats the player's record.
func (c *Controller) OnRaceFinish(chr *character.Character, seconds float32, checkpoints []float32) {
	cids := []int{chr.CID()}
	if partner := chr.Player().PartnerID(); c.IsHPRace() && partner >= 0 {
		cids = append(cids, partner)
	}

	for _, cid := range cids {
		p := c.world.GetPlayer(cid)
		if p == nil {
			continue
		}

		prev, ok := c.records.Get(p.name)
		switch {
		case !ok:
		case seconds < prev.Time:
			c.world.events.SendChat(-1, fmt.Sprintf("New record: %5.3f second(s) better.", prev.Time-seconds))
		default:
			c.world.events.SendChat(-1, fmt.Sprintf("%5.3f second(s) worse, better luck next time.", seconds-prev.Time))
			continue
		}

		rec := RaceRecord{Name: p.name, Time: seconds}
		copy(rec.Checkpoints[:], checkpoints)
		c.records.Set(p.name, rec)
		p.setBestTime(seconds)
		p.score = -int(seconds)

		c.log.Infof("record name=%q time=%.3f", p.name, seconds)
	}
}

// BestCheckpoint returns the checkpoint time of cid's record run.
func (c *Controller) BestCheckpoint(cid, checkpoint int) (float32, bool) {
	p := c.world.GetPlayer(cid)
	if p == nil || checkpoint < 0 || checkpoint > netconfig.MaxCheckpoints {
		return 0, false
	}
	rec, ok := c.records.Get(p.name)
	if !ok {
		return 0, false
	}
	return rec.Checkpoints[checkpoint], true
}

// Record returns the best run of name.
func (c *Controller) Record(name string) (RaceRecord, bool) {
	return c.records.Get(name)
}

// Records returns every record in the order the names first finished.
func (c *Controller) Records() []RaceRecord {
	out := make([]RaceRecord, 0, c.records.Len())
	for el := c.records.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}
