package netcomponents

import "github.com/yohamta/donburi"

type NetPlayerInfoData struct {
	ClientID int
	Name     string
	Team     int
	Score    int
	// BestTime is the fastest finished race in seconds, 0 for none.
	BestTime float32
}

var NetPlayerInfo = donburi.NewComponentType[NetPlayerInfoData]()
