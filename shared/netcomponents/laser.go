package netcomponents

import "github.com/yohamta/donburi"

// NetLaserData is one segment of a rifle beam.
type NetLaserData struct {
	X, Y         int
	FromX, FromY int
	StartTick    int
}

var NetLaser = donburi.NewComponentType[NetLaserData]()
