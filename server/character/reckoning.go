package character

import "github.com/automoto/teerace/shared/gamecore"

// observers may extrapolate from one anchor for at most this many seconds
const maxReckoningSeconds = 3

// reckoning is the dead reckoning state sent to observers. core mirrors what
// observers extrapolate, sendCore is the last anchor and tick its stamp.
type reckoning struct {
	tick     int
	sendCore gamecore.CharacterCore
	core     gamecore.CharacterCore
}

// NeedsCorrection decides whether observers need a new anchor: when the
// extrapolated encoding differs from the real one or the anchor is too old.
func NeedsCorrection(current, predicted gamecore.NetCore, anchorTick, now, tickSpeed int) bool {
	return anchorTick+tickSpeed*maxReckoningSeconds < now || current != predicted
}

// advance moves the shadow core the way an observer would: no input and no
// other characters.
func (r *reckoning) advance(col gamecore.Collision, tuning gamecore.Tuning) {
	r.core.Init(gamecore.NewWorldCore(tuning), col)
	r.core.Tick(false)
	r.core.Move()
	r.core.Quantize()
}

// update predicts the real core one tick ahead from its velocity alone,
// with one tick of gravity and no hook, and stamps a new anchor when the
// prediction's encoding differs from the real one. It reports whether it did.
func (r *reckoning) update(core *gamecore.CharacterCore, gravity float32, now, tickSpeed int) bool {
	var current, predicted gamecore.NetCore
	core.Write(&current)

	r.core = *core
	r.core.Vel = r.core.Vel.Add(core.Vel)
	r.core.Vel[1] += gravity
	r.core.Write(&predicted)

	if !NeedsCorrection(current, predicted, r.tick, now, tickSpeed) {
		return false
	}

	r.tick = now
	r.sendCore = *core
	r.core = *core
	return true
}

// snapshot returns the wire core for observers. Without an anchor, or while
// the world is paused, the live core is sent with tick 0.
func (r *reckoning) snapshot(live *gamecore.CharacterCore, paused bool) gamecore.NetCore {
	var out gamecore.NetCore
	if r.tick == 0 || paused {
		live.Write(&out)
		return out
	}
	out.Tick = r.tick
	r.sendCore.Write(&out)
	return out
}
