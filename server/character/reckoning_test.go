package character

import (
	"testing"

	"github.com/automoto/teerace/shared/gamecore"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNeedsCorrection(t *testing.T) {
	a := gamecore.NetCore{X: 10, Y: 20, VelX: 256}
	b := a
	b.VelY = 1

	tests := []struct {
		name      string
		predicted gamecore.NetCore
		anchor    int
		now       int
		want      bool
	}{
		{"identical and fresh", a, 10, 160, false},
		{"one field differs", b, 10, 11, true},
		{"anchor too old", a, 10, 161, true},
	}
	for _, tc := range tests {
		if got := NeedsCorrection(a, tc.predicted, tc.anchor, tc.now, 50); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestReckoningUpdate(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	gravity := w.core.Tuning.Gravity

	var core gamecore.CharacterCore
	core.Reset()
	core.Init(gamecore.NewWorldCore(w.core.Tuning), w.col)
	core.Pos = mgl32.Vec2{320, 320}
	// doubling this velocity and adding gravity gives it back
	core.Vel = mgl32.Vec2{0, -gravity}

	var r reckoning
	if r.update(&core, gravity, 100, 50) {
		t.Fatalf("expected a matching prediction to keep the empty anchor")
	}
	if !r.update(&core, gravity, 200, 50) || r.tick != 200 {
		t.Fatalf("expected an anchor older than three seconds to be replaced")
	}
	if r.update(&core, gravity, 201, 50) {
		t.Fatalf("expected a matching prediction to need no correction")
	}

	core.Vel[0] = 4
	if !r.update(&core, gravity, 202, 50) || r.tick != 202 {
		t.Fatalf("expected a horizontal velocity to force a correction")
	}
	if r.sendCore.Vel != core.Vel || r.core.Vel != core.Vel {
		t.Fatalf("expected the anchor and shadow reset to the real core")
	}
}

func TestFreeFallStampsEveryTick(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	c := w.spawn(0, mgl32.Vec2{320, 320})

	stamps := 0
	for i := 0; i < 10; i++ {
		w.step(c)
		if c.reckoning.tick == w.tick {
			stamps++
		}
	}

	if c.core.Vel[1] <= 0 {
		t.Fatalf("expected the character to be falling, got %v", c.core.Vel)
	}
	if stamps != 10 {
		t.Fatalf("expected a correction on every falling tick, got %d", stamps)
	}
}

func TestReckoningAdvanceAppliesGravity(t *testing.T) {
	w := newFakeWorld(open(), &fakeController{})
	var r reckoning
	r.core.Reset()
	r.core.Pos = mgl32.Vec2{320, 320}

	r.advance(w.col, w.core.Tuning)

	if r.core.Vel[1] != w.core.Tuning.Gravity {
		t.Fatalf("expected one tick of gravity, got %v", r.core.Vel)
	}
}

func TestReckoningSnapshot(t *testing.T) {
	var live gamecore.CharacterCore
	live.Pos = mgl32.Vec2{100, 200}

	var r reckoning
	out := r.snapshot(&live, false)
	if out.Tick != 0 || out.X != 100 {
		t.Fatalf("expected the live core before any anchor, got %+v", out)
	}

	r.tick = 42
	r.sendCore.Pos = mgl32.Vec2{50, 60}
	out = r.snapshot(&live, false)
	if out.Tick != 42 || out.X != 50 || out.Y != 60 {
		t.Fatalf("expected the anchor, got %+v", out)
	}

	out = r.snapshot(&live, true)
	if out.Tick != 0 || out.X != 100 {
		t.Fatalf("expected the live core while paused, got %+v", out)
	}
}
