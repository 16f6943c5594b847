package gamecore

import (
	"testing"

	"github.com/automoto/teerace/shared/collision"
	"github.com/automoto/teerace/shared/leveldata"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
)

// arena is a 20x20 tile map with a floor on row 19 and a wall on column 15.
func arena() *collision.Collision {
	level := leveldata.NewLevel(20, 20)
	for x := 0; x < 20; x++ {
		level.Set(x, 19, netconfig.ColFlagSolid)
	}
	for y := 0; y < 20; y++ {
		level.Set(15, y, netconfig.ColFlagSolid)
	}
	return collision.New(level)
}

func newCore(world *WorldCore, col Collision, cid int, pos mgl32.Vec2) *CharacterCore {
	core := &CharacterCore{}
	core.Reset()
	core.Init(world, col)
	core.Pos = pos
	world.Register(cid, core)
	return core
}

func settle(core *CharacterCore, ticks int) {
	for i := 0; i < ticks; i++ {
		core.Tick(true)
		core.Move()
		core.Quantize()
	}
}

func TestCoreFallsAndLands(t *testing.T) {
	world := NewWorldCore(DefaultTuning())
	core := newCore(world, arena(), 0, mgl32.Vec2{320, 500})

	settle(core, 100)

	if core.Pos[1] != 593 {
		t.Fatalf("expected core to rest at y=593, got %f", core.Pos[1])
	}
	if core.Vel[1] != 0 {
		t.Fatalf("expected no vertical velocity at rest, got %f", core.Vel[1])
	}
}

func TestCoreGroundAndAirJump(t *testing.T) {
	world := NewWorldCore(DefaultTuning())
	core := newCore(world, arena(), 0, mgl32.Vec2{320, 500})
	settle(core, 100)

	core.Input.Jump = 1
	core.Tick(true)
	if core.TriggeredEvents&netconfig.CoreEventGroundJump == 0 {
		t.Fatalf("expected a ground jump event")
	}
	if core.Vel[1] != -world.Tuning.GroundJumpImpulse {
		t.Fatalf("expected jump impulse, got %f", core.Vel[1])
	}
	core.Move()

	// holding jump does not jump again
	core.Tick(true)
	if core.TriggeredEvents&(netconfig.CoreEventGroundJump|netconfig.CoreEventAirJump) != 0 {
		t.Fatalf("expected no jump while the button is held")
	}
	core.Move()

	core.Input.Jump = 0
	core.Tick(true)
	core.Move()

	core.Input.Jump = 1
	core.Tick(true)
	if core.TriggeredEvents&netconfig.CoreEventAirJump == 0 {
		t.Fatalf("expected an air jump event")
	}
	if core.Jumped != 3 {
		t.Fatalf("expected both jump bits set, got %d", core.Jumped)
	}
}

func TestCoreHookAttachesToWall(t *testing.T) {
	world := NewWorldCore(DefaultTuning())
	core := newCore(world, arena(), 0, mgl32.Vec2{320, 500})
	settle(core, 100)

	core.Input.Hook = 1
	core.Input.TargetX = 100
	core.Input.TargetY = 0

	core.Tick(true)
	if core.HookState != netconfig.HookFlying {
		t.Fatalf("expected hook to fly, got %d", core.HookState)
	}
	if core.TriggeredEvents&netconfig.CoreEventHookLaunch == 0 {
		t.Fatalf("expected hook launch event")
	}

	core.Tick(true)
	if core.HookState != netconfig.HookGrabbed {
		t.Fatalf("expected hook to grab the wall, got %d", core.HookState)
	}
	if core.TriggeredEvents&netconfig.CoreEventHookAttachGround == 0 {
		t.Fatalf("expected hook attach ground event")
	}
	if core.HookPos[0] < 479 || core.HookPos[0] > 481 {
		t.Fatalf("expected hook to stop at the wall face, got x=%f", core.HookPos[0])
	}

	core.Input.Hook = 0
	core.Tick(true)
	if core.HookState != netconfig.HookIdle {
		t.Fatalf("expected hook to reset on release, got %d", core.HookState)
	}
}

func TestCorePlayerCollisionPushesApart(t *testing.T) {
	world := NewWorldCore(DefaultTuning())
	col := arena()
	left := newCore(world, col, 0, mgl32.Vec2{300, 300})
	newCore(world, col, 1, mgl32.Vec2{320, 300})

	left.Tick(true)
	if left.Vel[0] >= 0 {
		t.Fatalf("expected left core to be pushed left, got vx=%f", left.Vel[0])
	}
}

func TestCorePartnerOnlyCollision(t *testing.T) {
	world := NewWorldCore(DefaultTuning())
	col := arena()
	left := newCore(world, col, 0, mgl32.Vec2{300, 300})
	newCore(world, col, 1, mgl32.Vec2{320, 300})

	// collide with client 2 only
	world.Tuning.PlayerCollision = 4
	left.Tick(true)
	if left.Vel[0] != 0 {
		t.Fatalf("expected no push from a non-partner, got vx=%f", left.Vel[0])
	}
}

func TestQuantizeIsIdempotent(t *testing.T) {
	world := NewWorldCore(DefaultTuning())
	core := newCore(world, arena(), 0, mgl32.Vec2{100.37, 200.81})
	core.Vel = mgl32.Vec2{3.14159, -7.77777}
	core.HookDir = mgl32.Vec2{0.6, 0.8}

	core.Quantize()
	first := *core
	core.Quantize()

	if core.Pos != first.Pos || core.Vel != first.Vel || core.HookDir != first.HookDir {
		t.Fatalf("expected second quantize to be a no-op")
	}

	var a, b NetCore
	first.Write(&a)
	core.Write(&b)
	if a != b {
		t.Fatalf("expected identical wire encodings, got %+v and %+v", a, b)
	}
}

func TestWorldCoreRegistry(t *testing.T) {
	world := NewWorldCore(DefaultTuning())
	core := newCore(world, arena(), 3, mgl32.Vec2{})

	if world.Characters[3] != core {
		t.Fatalf("expected core registered under its client id")
	}
	world.Unregister(3)
	if world.Characters[3] != nil {
		t.Fatalf("expected slot to be cleared")
	}
}

func TestHookOnPlayerLastsAboutASecond(t *testing.T) {
	tests := []struct {
		tickSpeed int
		hookTick  int
		held      bool
	}{
		{50, 58, true},
		{50, 60, false},
		{100, 100, true},
		{100, 120, false},
	}
	for _, tc := range tests {
		world := NewWorldCore(DefaultTuning())
		world.TickSpeed = tc.tickSpeed
		col := arena()
		a := newCore(world, col, 0, mgl32.Vec2{200, 300})
		newCore(world, col, 1, mgl32.Vec2{260, 300})

		a.Input.Hook = 1
		a.HookState = netconfig.HookGrabbed
		a.HookedPlayer = 1
		a.HookTick = tc.hookTick

		a.Tick(true)

		if held := a.HookedPlayer == 1; held != tc.held {
			t.Fatalf("tick speed %d, hook tick %d: expected held=%v, got %v", tc.tickSpeed, tc.hookTick, tc.held, held)
		}
	}
}
