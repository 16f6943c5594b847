package core

import (
	"errors"
	"fmt"

	"github.com/automoto/teerace/server/character"
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/netcomponents"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrInvalidTeam    = errors.New("invalid team")
	ErrNotSpectating  = errors.New("player is not spectating")
	ErrInvalidTarget  = errors.New("invalid spectator target")
	ErrNoPartnerMode  = errors.New("partners are only available in partner race")
	ErrInvalidPartner = errors.New("invalid partner")
)

// Player is the session of one connected client. Characters come and go,
// the player stays until the client leaves.
type Player struct {
	world *GameWorld
	cid   int
	name  string

	team        int
	partner     int
	request     int
	spectatorID int
	flags       int
	viewPos     mgl32.Vec2
	chr         *character.Character

	spawning      bool
	respawnTick   int
	dieTick       int
	lastInputTick int

	score    int
	bestTime float32
}

func newPlayer(w *GameWorld, cid int, name string) *Player {
	return &Player{
		world:         w,
		cid:           cid,
		name:          name,
		team:          netconfig.TeamRed,
		partner:       -1,
		request:       -1,
		spectatorID:   -1,
		spawning:      true,
		respawnTick:   w.tick,
		dieTick:       w.tick,
		lastInputTick: w.tick,
	}
}

func (p *Player) CID() int                 { return p.cid }
func (p *Player) Name() string             { return p.name }
func (p *Player) Team() int                { return p.team }
func (p *Player) PartnerID() int           { return p.partner }
func (p *Player) SpectatorID() int         { return p.spectatorID }
func (p *Player) PlayerFlags() int         { return p.flags }
func (p *Player) ViewPos() mgl32.Vec2      { return p.viewPos }
func (p *Player) Score() int               { return p.score }
func (p *Player) SetRespawnTick(tick int)  { p.respawnTick = tick }
func (p *Player) SetDieTick(tick int)      { p.dieTick = tick }
func (p *Player) AddScore(n int)           { p.score += n }
func (p *Player) setBestTime(secs float32) { p.bestTime = secs }

// Character returns the live character or nil.
func (p *Player) Character() *character.Character {
	if p.chr != nil && p.chr.Alive() {
		return p.chr
	}
	return nil
}

// KillCharacter kills the live character, crediting the player itself.
func (p *Player) KillCharacter(weapon netconfig.WeaponID) {
	if chr := p.Character(); chr != nil {
		chr.Die(p.cid, weapon)
	}
	p.chr = nil
}

// Info returns the scoreboard entry of the player.
func (p *Player) Info() netcomponents.NetPlayerInfoData {
	return netcomponents.NetPlayerInfoData{
		ClientID: p.cid,
		Name:     p.name,
		Team:     p.team,
		Score:    p.score,
		BestTime: p.bestTime,
	}
}

// OnInput feeds one client input to the character. Without a character a
// fire press asks for a respawn.
func (p *Player) OnInput(in gamecore.Input) {
	p.flags = in.PlayerFlags
	p.lastInputTick = p.world.tick

	if chr := p.Character(); chr != nil {
		chr.OnDirectInput(in)
		chr.OnPredictedInput(in)
		return
	}
	if p.team != netconfig.TeamSpectators && in.Fire&1 != 0 {
		p.spawning = true
	}
}

// Tick respawns the character when due and keeps the view position current.
func (p *Player) Tick() {
	w := p.world
	now := w.tick
	tickSpeed := w.TickSpeed()

	if w.paused {
		p.respawnTick++
		p.dieTick++
		p.lastInputTick++
		return
	}

	if p.chr != nil && !p.chr.Alive() {
		p.chr = nil
	}
	if p.chr == nil && p.dieTick+tickSpeed*3 <= now {
		p.spawning = true
	}

	switch {
	case p.chr != nil:
		p.viewPos = p.chr.Pos()
		if now-p.lastInputTick > tickSpeed {
			p.chr.ResetInput()
		}
	case p.spawning && p.respawnTick <= now:
		p.tryRespawn()
	}
}

// PostTick moves a spectator's view to the player it follows, once every
// player has ticked.
func (p *Player) PostTick() {
	if p.team != netconfig.TeamSpectators {
		return
	}
	if target := p.world.GetPlayer(p.spectatorID); target != nil {
		p.viewPos = target.viewPos
	}
}

func (p *Player) tryRespawn() {
	if p.team == netconfig.TeamSpectators {
		return
	}
	w := p.world
	pos, ok := w.spawnPos()
	if !ok {
		return
	}

	p.spawning = false
	chr := character.New(w, w.base)
	chr.Spawn(p, pos)
	p.chr = chr
	p.viewPos = pos
	w.events.CreateSound(pos, netconfig.SoundPlayerSpawn, netconfig.MaskAll())
}

// SetTeam moves the player to team, killing its character. Without teams
// blue is folded into red.
func (p *Player) SetTeam(team int) error {
	switch team {
	case netconfig.TeamSpectators, netconfig.TeamRed, netconfig.TeamBlue:
	default:
		return ErrInvalidTeam
	}
	if team == netconfig.TeamBlue && !p.world.cfg.Game.Teams {
		team = netconfig.TeamRed
	}
	if team == p.team {
		return nil
	}

	w := p.world
	p.KillCharacter(netconfig.WeaponGame)
	p.team = team
	p.respawnTick = w.tick + w.TickSpeed()/2

	if team == netconfig.TeamSpectators {
		for _, other := range w.Players() {
			if other.spectatorID == p.cid {
				other.spectatorID = -1
			}
		}
		w.events.SendChat(-1, fmt.Sprintf("'%s' joined the spectators", p.name))
	} else {
		p.spectatorID = -1
		w.events.SendChat(-1, fmt.Sprintf("'%s' joined the game", p.name))
	}
	return nil
}

// SetSpectatorMode follows client target, or nobody for -1.
func (p *Player) SetSpectatorMode(target int) error {
	if p.team != netconfig.TeamSpectators {
		return ErrNotSpectating
	}
	if target >= 0 {
		other := p.world.GetPlayer(target)
		if target == p.cid || other == nil || other.team == netconfig.TeamSpectators {
			return ErrInvalidTarget
		}
	}
	p.spectatorID = target
	return nil
}

// RequestPartner asks client target to race together. The pair is formed
// once both asked for each other; both characters respawn. -1 leaves the
// current partner.
func (p *Player) RequestPartner(target int) error {
	w := p.world
	if !w.ctrl.IsHPRace() {
		return ErrNoPartnerMode
	}
	if target < 0 {
		p.request = -1
		p.unpair()
		return nil
	}

	other := w.GetPlayer(target)
	if target == p.cid || other == nil {
		return ErrInvalidPartner
	}

	p.request = target
	if other.request != p.cid {
		w.events.SendBroadcast(target, fmt.Sprintf("%s wants to race with you", p.name))
		return nil
	}

	p.unpair()
	other.unpair()
	p.partner, other.partner = other.cid, p.cid
	p.request, other.request = -1, -1

	p.KillCharacter(netconfig.WeaponGame)
	other.KillCharacter(netconfig.WeaponGame)
	w.events.SendChat(-1, fmt.Sprintf("'%s' and '%s' are now partners", p.name, other.name))
	return nil
}

func (p *Player) unpair() {
	if other := p.world.GetPlayer(p.partner); other != nil && other.partner == p.cid {
		other.partner = -1
	}
	p.partner = -1
}
