package netcomponents

import "github.com/yohamta/donburi"

// NetGameStateData is the world-wide state every client needs to run its
// prediction: the server tick to extrapolate from and the pause flag.
type NetGameStateData struct {
	Tick     int
	Paused   bool
	Mode     string
	Map      string
	RoundEnd bool
}

var NetGameState = donburi.NewComponentType[NetGameStateData]()
