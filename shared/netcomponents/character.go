package netcomponents

import (
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/yohamta/donburi"
)

// NetCharacterData is the snapshot of one character as seen by an observer.
// Health, Armor and AmmoCount are zero unless the observer may see them.
type NetCharacterData struct {
	ClientID    int
	Core        gamecore.NetCore
	PlayerFlags int
	Health      int
	Armor       int
	AmmoCount   int
	Weapon      int
	Emote       int
	AttackTick  int
}

var NetCharacter = donburi.NewComponentType[NetCharacterData]()

// LerpNetCharacter interpolates positions between two snapshots. Discrete
// fields are taken from the newer snapshot.
func LerpNetCharacter(from, to NetCharacterData, t float64) *NetCharacterData {
	out := to
	out.Core.X = lerpInt(from.Core.X, to.Core.X, t)
	out.Core.Y = lerpInt(from.Core.Y, to.Core.Y, t)
	out.Core.HookX = lerpInt(from.Core.HookX, to.Core.HookX, t)
	out.Core.HookY = lerpInt(from.Core.HookY, to.Core.HookY, t)
	return &out
}

func lerpInt(from, to int, t float64) int {
	return from + int(float64(to-from)*t)
}
