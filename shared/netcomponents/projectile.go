package netcomponents

import "github.com/yohamta/donburi"

// NetProjectileData lets clients recompute a projectile's path from its
// launch parameters. Velocities are scaled by 100.
type NetProjectileData struct {
	X, Y       int
	VelX, VelY int
	Type       int // netconfig.WeaponID
	StartTick  int
}

var NetProjectile = donburi.NewComponentType[NetProjectileData]()
