package character

import (
	"fmt"
	"math"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// stuckReport describes a move that left a free body inside solid tiles.
// The start state is kept as raw float bits so it can be replayed exactly.
type stuckReport struct {
	before     bool
	afterMove  bool
	afterQuant bool
	startPos   mgl32.Vec2
	startVel   mgl32.Vec2
}

func (r stuckReport) newlyStuck() bool {
	return !r.before && (r.afterMove || r.afterQuant)
}

func (r stuckReport) String() string {
	return fmt.Sprintf("STUCK!!! %d %d %d %f %f %f %f %x %x %x %x",
		boolToInt(r.before), boolToInt(r.afterMove), boolToInt(r.afterQuant),
		r.startPos[0], r.startPos[1], r.startVel[0], r.startVel[1],
		math.Float32bits(r.startPos[0]), math.Float32bits(r.startPos[1]),
		math.Float32bits(r.startVel[0]), math.Float32bits(r.startVel[1]))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// formatFields writes fields as [k=v k=v] in insertion order.
func formatFields(fields *orderedmap.OrderedMap[string, any]) string {
	var b strings.Builder
	b.WriteByte('[')
	for el := fields.Front(); el != nil; el = el.Next() {
		if el != fields.Front() {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", el.Key, el.Value)
	}
	b.WriteByte(']')
	return b.String()
}

func (c *Character) logStuck(r stuckReport) {
	ctx := orderedmap.NewOrderedMap[string, any]()
	ctx.Set("tick", c.world.Tick())
	ctx.Set("cid", c.CID())
	ctx.Set("weapon", c.activeWeapon)
	ctx.Set("hook", int(c.core.HookState))
	c.log.Debugf("%s %s", r, formatFields(ctx))
}
