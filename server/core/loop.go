package core

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/sirupsen/logrus"
)

type tickable interface {
	Tick()
}

// GameLoop runs the server at a fixed tick rate. A panic inside a tick is
// reported to sentry and logged, and the loop carries on with the next tick.
type GameLoop struct {
	server   tickable
	tickRate int
	log      logrus.FieldLogger
	running  bool
	stopChan chan struct{}
}

func NewGameLoop(server tickable, tickRate int, log logrus.FieldLogger) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		log:      log.WithField("component", "loop"),
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Infof("game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running = false
			g.log.Info("game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) tick() {
	defer func() {
		if err := recover(); err != nil {
			sentry.CurrentHub().Recover(err)
			g.log.WithField("panic", err).Error("tick panicked")
		}
	}()

	start := time.Now()
	g.server.Tick()
	if took := time.Since(start); took > time.Second/time.Duration(g.tickRate) {
		g.log.WithField("took", took).Warn("tick overran its slot")
	}

	if err := srvsync.DoSync(); err != nil {
		g.log.Warnf("sync error: %v", err)
	}
}
