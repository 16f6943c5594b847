package core

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/shared/messages"
	"github.com/automoto/teerace/shared/netconfig"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

const maxNameLength = 15

// Conn is a connected network client.
type Conn interface {
	Id() string
	SendMessage(msg any) error
}

// Server owns the game world and its client connections. Network callbacks
// only queue commands; the game loop runs them before each tick so the world
// is touched by one goroutine.
type Server struct {
	cfg       *config.Config
	log       logrus.FieldLogger
	level     *ServerLevel
	game      *GameWorld
	ecs       donburi.World
	mirror    *mirror
	loop      *GameLoop
	transport *transports.WsServerTransport

	mu       sync.Mutex
	commands []func()

	// only touched by the game loop
	clients map[Conn]int
	byCID   [netconfig.MaxClients]Conn

	playerCount atomic.Int32
}

// NewServer creates a server running cfg on level.
func NewServer(cfg *config.Config, level *ServerLevel, log logrus.FieldLogger) (*Server, error) {
	s, err := newServer(cfg, level, log)
	if err != nil {
		return nil, err
	}
	srvsync.UseEsync(s.ecs)
	s.setupRouterCallbacks()
	return s, nil
}

func newServer(cfg *config.Config, level *ServerLevel, log logrus.FieldLogger) (*Server, error) {
	ecs := donburi.NewWorld()
	s := &Server{
		cfg:     cfg,
		log:     log.WithField("component", "server"),
		level:   level,
		ecs:     ecs,
		mirror:  newMirror(ecs),
		clients: make(map[Conn]int),
	}

	game, err := NewGameWorld(cfg, level, s, log)
	if err != nil {
		return nil, err
	}
	s.game = game
	s.loop = NewGameLoop(s, cfg.Server.TickRate, log)
	return s, nil
}

// Start runs the game loop and serves websocket clients on port. It blocks
// until the transport fails.
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop stops the game loop.
func (s *Server) Stop() {
	s.loop.Stop()
}

// Game returns the simulated world. Only the game loop may use it.
func (s *Server) Game() *GameWorld { return s.game }

// PlayerCount returns the number of joined players. Safe for any goroutine.
func (s *Server) PlayerCount() int {
	return int(s.playerCount.Load())
}

// TogglePause pauses or resumes the game on the next tick.
func (s *Server) TogglePause() {
	s.enqueue(func() {
		s.game.SetPaused(!s.game.Paused())
	})
}

// RestartRound clears the map and respawns everyone on the next tick.
func (s *Server) RestartRound() {
	s.enqueue(s.game.Reset)
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.onConnect(client)
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.handleJoin(client, req) })
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.enqueue(func() { s.handleInput(client, input) })
	})

	router.On(func(client *router.NetworkClient, msg messages.SetTeam) {
		s.enqueue(func() { s.handleSetTeam(client, msg) })
	})

	router.On(func(client *router.NetworkClient, msg messages.SetSpectatorMode) {
		s.enqueue(func() { s.handleSetSpectatorMode(client, msg) })
	})

	router.On(func(client *router.NetworkClient, msg messages.RequestPartner) {
		s.enqueue(func() { s.handleRequestPartner(client, msg) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.Warnf("client error: %v", err)
	})
}

func (s *Server) enqueue(cmd func()) {
	s.mu.Lock()
	s.commands = append(s.commands, cmd)
	s.mu.Unlock()
}

// ProcessCommands runs the commands queued by network callbacks.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	cmds := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

// Tick runs one game tick and publishes the result.
func (s *Server) Tick() {
	s.ProcessCommands()
	s.game.Step()

	if err := s.mirror.sync(s.game); err != nil {
		s.log.Warnf("mirror world: %v", err)
	}
	s.sendSnapshots()
}

// sendSnapshots sends each player the full view of the character it
// follows.
func (s *Server) sendSnapshots() {
	for _, p := range s.game.Players() {
		chr := p.Character()
		if p.team == netconfig.TeamSpectators {
			chr = nil
			if target := s.game.GetPlayer(p.spectatorID); target != nil {
				chr = target.Character()
			}
		}
		if chr == nil {
			continue
		}
		if data, ok := chr.Snap(p.cid); ok {
			s.SendTo(p.cid, messages.CharacterSnapshot{Tick: s.game.Tick(), Character: data})
		}
	}
}

// SendTo delivers msg to the client of cid, if it is connected.
func (s *Server) SendTo(cid int, msg any) {
	if cid < 0 || cid >= netconfig.MaxClients || s.byCID[cid] == nil {
		return
	}
	if err := s.byCID[cid].SendMessage(msg); err != nil {
		s.log.Debugf("send %T to cid=%d: %v", msg, cid, err)
	}
}

func (s *Server) onConnect(c Conn) {
	s.log.Infof("client connected: %s", c.Id())
	s.enqueue(func() {
		s.clients[c] = -1
	})
}

func (s *Server) onDisconnect(c Conn, err error) {
	if err != nil {
		s.log.Infof("client %s disconnected with error: %v", c.Id(), err)
	} else {
		s.log.Infof("client %s disconnected", c.Id())
	}

	s.enqueue(func() {
		cid, ok := s.clients[c]
		delete(s.clients, c)
		if !ok || cid < 0 {
			return
		}
		s.byCID[cid] = nil
		s.game.RemovePlayer(cid)
		s.playerCount.Add(-1)
	})
}

func (s *Server) reject(c Conn, reason string) {
	if err := c.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
		s.log.Debugf("send join rejection to %s: %v", c.Id(), err)
	}
}

func (s *Server) handleJoin(c Conn, req messages.JoinRequest) {
	cid, ok := s.clients[c]
	if !ok || cid >= 0 {
		return
	}

	if v := s.cfg.Server.Version; v != "" && req.Version != v {
		s.log.Infof("rejecting %s: version %q, want %q", c.Id(), req.Version, v)
		s.reject(c, fmt.Sprintf("version mismatch: server runs %s", v))
		return
	}

	p, err := s.game.AddPlayer(s.uniqueName(req.PlayerName))
	if err != nil {
		s.reject(c, err.Error())
		return
	}
	s.clients[c] = p.cid
	s.byCID[p.cid] = c
	s.playerCount.Add(1)

	if err := s.mirror.sync(s.game); err != nil {
		s.log.Warnf("mirror world: %v", err)
	}
	nid, _ := s.mirror.playerNetworkID(p)

	s.SendTo(p.cid, messages.JoinAccepted{
		NetworkID:   nid,
		ClientID:    p.cid,
		ServerName:  s.cfg.Server.Name,
		TickRate:    s.cfg.Server.TickRate,
		Mode:        string(s.cfg.Server.Mode),
		Map:         s.level.Name,
		MapChecksum: s.level.Level.Checksum,
	})
}

// uniqueName trims name and numbers it when another player uses it.
func (s *Server) uniqueName(name string) string {
	name = strings.TrimSpace(name)
	for utf8.RuneCountInString(name) > maxNameLength {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	if name == "" {
		name = "nameless tee"
	}

	taken := func(n string) bool {
		for _, p := range s.game.Players() {
			if p.name == n {
				return true
			}
		}
		return false
	}
	if !taken(name) {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("(%d)%s", i, name)
		if !taken(candidate) {
			return candidate
		}
	}
}

func (s *Server) player(c Conn) *Player {
	cid, ok := s.clients[c]
	if !ok {
		return nil
	}
	return s.game.GetPlayer(cid)
}

func (s *Server) handleInput(c Conn, input messages.PlayerInput) {
	if p := s.player(c); p != nil {
		p.OnInput(input.Core())
	}
}

func (s *Server) handleSetTeam(c Conn, msg messages.SetTeam) {
	p := s.player(c)
	if p == nil {
		return
	}
	if err := p.SetTeam(msg.Team); err != nil {
		s.log.Debugf("cid=%d set team %d: %v", p.cid, msg.Team, err)
	}
}

func (s *Server) handleSetSpectatorMode(c Conn, msg messages.SetSpectatorMode) {
	p := s.player(c)
	if p == nil {
		return
	}
	if err := p.SetSpectatorMode(msg.SpectatorID); err != nil {
		s.log.Debugf("cid=%d spectate %d: %v", p.cid, msg.SpectatorID, err)
	}
}

func (s *Server) handleRequestPartner(c Conn, msg messages.RequestPartner) {
	p := s.player(c)
	if p == nil {
		return
	}
	if err := p.RequestPartner(msg.ClientID); err != nil {
		s.log.Debugf("cid=%d partner %d: %v", p.cid, msg.ClientID, err)
		s.SendTo(p.cid, messages.Broadcast{Text: err.Error()})
	}
}
