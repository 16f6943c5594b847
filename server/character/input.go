package character

import (
	"github.com/automoto/teerace/shared/gamecore"
	"github.com/automoto/teerace/shared/netconfig"
)

// InputCount is the number of presses and releases between two held-button
// counter values.
type InputCount struct {
	Presses  int
	Releases int
}

// CountInput walks the counter from prev to cur around its cycle. Odd states
// are entered by a press, even states by a release.
func CountInput(prev, cur int) InputCount {
	var c InputCount
	prev &= netconfig.InputStateMask
	cur &= netconfig.InputStateMask

	for i := prev; i != cur; {
		i = (i + 1) & netconfig.InputStateMask
		if i&1 != 0 {
			c.Presses++
		} else {
			c.Releases++
		}
	}
	return c
}

// OnPredictedInput stores the input that drives movement on the next tick.
func (c *Character) OnPredictedInput(in gamecore.Input) {
	if in != c.input {
		c.lastAction = c.world.Tick()
	}

	c.input = in
	c.numInputs++

	// aiming at the centre is not allowed
	if c.input.TargetX == 0 && c.input.TargetY == 0 {
		c.input.TargetY = -1
	}
}

// OnDirectInput handles weapon input as soon as it arrives. The first inputs
// after spawn are ignored so stale fire counters do not shoot.
func (c *Character) OnDirectInput(in gamecore.Input) {
	c.latestPrevInput = c.latestInput
	c.latestInput = in

	if c.numInputs > 2 && c.player.Team() != netconfig.TeamSpectators {
		c.HandleWeaponSwitch()
		c.FireWeapon()
	}

	c.latestPrevInput = c.latestInput
}

// ResetInput releases every held button, used when input stops arriving.
func (c *Character) ResetInput() {
	c.input.Direction = 0
	c.input.Hook = 0
	// simulate releasing fire
	if c.input.Fire&1 != 0 {
		c.input.Fire++
	}
	c.input.Fire &= netconfig.InputStateMask
	c.input.Jump = 0
	c.latestInput = c.input
	c.latestPrevInput = c.input
}
