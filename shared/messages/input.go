package messages

import "github.com/automoto/teerace/shared/gamecore"

// PlayerInput is sent from client to server every tick with the player's
// intent. Fire, NextWeapon and PrevWeapon are held-button counters: the
// client increments them on every press and every release.
type PlayerInput struct {
	Sequence     uint32 // Incrementing ID for reconciliation
	Direction    int    // -1 left, 0 none, 1 right
	TargetX      int    // Aim, relative to the character
	TargetY      int
	Jump         int
	Fire         int
	Hook         int
	PlayerFlags  int
	WantedWeapon int // 1-based direct selection, 0 for none
	NextWeapon   int
	PrevWeapon   int
}

// Core converts the wire input to the simulation's input record.
func (in PlayerInput) Core() gamecore.Input {
	return gamecore.Input{
		Direction:    clampDirection(in.Direction),
		TargetX:      in.TargetX,
		TargetY:      in.TargetY,
		Jump:         in.Jump,
		Fire:         in.Fire,
		Hook:         in.Hook,
		PlayerFlags:  in.PlayerFlags,
		WantedWeapon: in.WantedWeapon,
		NextWeapon:   in.NextWeapon,
		PrevWeapon:   in.PrevWeapon,
	}
}

func clampDirection(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

// SetTeam asks the server to move the sender to another team.
type SetTeam struct {
	Team int
}

// SetSpectatorMode asks the server to follow another player while spectating.
type SetSpectatorMode struct {
	SpectatorID int
}

// RequestPartner asks the server to pair the sender with another client in
// partner race mode.
type RequestPartner struct {
	ClientID int
}
