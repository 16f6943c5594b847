package core

import (
	"testing"

	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/shared/leveldata"
	"github.com/automoto/teerace/shared/messages"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// testLevel is a 40x30 map with a floor, a wall on the left and two spawn
// points on the floor, 192 units apart.
func testLevel() *ServerLevel {
	level := leveldata.NewLevel(40, 30)
	for x := 0; x < 40; x++ {
		level.Set(x, 29, netconfig.ColFlagSolid)
	}
	for y := 0; y < 30; y++ {
		level.Set(0, y, netconfig.ColFlagSolid)
	}
	level.SpawnPoints = []leveldata.SpawnPoint{
		{X: 5*leveldata.TileSize + 16, Y: 28*leveldata.TileSize + 16, Index: 0},
		{X: 11*leveldata.TileSize + 16, Y: 28*leveldata.TileSize + 16, Index: 1},
	}
	return NewServerLevel("test", level)
}

type sent struct {
	cid int
	msg any
}

type fakeOutbox struct {
	msgs []sent
}

func (o *fakeOutbox) SendTo(cid int, msg any) {
	o.msgs = append(o.msgs, sent{cid: cid, msg: msg})
}

// to returns the messages sent to cid.
func (o *fakeOutbox) to(cid int) []any {
	var out []any
	for _, m := range o.msgs {
		if m.cid == cid {
			out = append(out, m.msg)
		}
	}
	return out
}

// chats returns the chat lines seen by client 0.
func (o *fakeOutbox) chats() []string {
	var out []string
	for _, msg := range o.to(0) {
		if chat, ok := msg.(messages.ChatMessage); ok {
			out = append(out, chat.Text)
		}
	}
	return out
}

func (o *fakeOutbox) sounds(sound netconfig.SoundID) int {
	n := 0
	for _, msg := range o.to(0) {
		if ev, ok := msg.(messages.SoundEvent); ok && ev.SoundID == int(sound) {
			n++
		}
	}
	return n
}

type testWorld struct {
	*GameWorld
	out  *fakeOutbox
	hook *test.Hook
}

func newTestWorld(t *testing.T, mode config.GameMode) *testWorld {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Mode = mode
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	out := &fakeOutbox{}

	w, err := NewGameWorld(cfg, testLevel(), out, log)
	if err != nil {
		t.Fatalf("expected world, got error %v", err)
	}
	return &testWorld{GameWorld: w, out: out, hook: hook}
}

// join adds a player and steps once so it spawns.
func (w *testWorld) join(t *testing.T, name string) *Player {
	t.Helper()

	p, err := w.AddPlayer(name)
	if err != nil {
		t.Fatalf("expected %s to join, got %v", name, err)
	}
	w.Step()
	if p.Character() == nil {
		t.Fatalf("expected %s to spawn", name)
	}
	return p
}

func spawnPoint(w *testWorld, i int) mgl32.Vec2 {
	sp := w.level.SpawnPoints[i]
	return mgl32.Vec2{sp.X, sp.Y}
}
