package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/automoto/teerace/config"
	"github.com/automoto/teerace/master"
	"github.com/sirupsen/logrus"
)

const heartbeatInterval = 30 * time.Second

var errUnknownServer = errors.New("master does not know this server")

// PlayerCounter reports the current number of players.
type PlayerCounter interface {
	PlayerCount() int
}

// Registration keeps the server listed on the master: it registers once,
// then heartbeats the player count and registers again when the master has
// expired the entry.
type Registration struct {
	masterURL string
	info      master.RegisterRequest
	serverID  string
	players   PlayerCounter
	client    *http.Client
	log       logrus.FieldLogger
	interval  time.Duration
	stopCh    chan struct{}
}

// NewRegistration announces the server described by cfg to cfg.MasterURL.
func NewRegistration(cfg config.ServerConfig, players PlayerCounter, log logrus.FieldLogger) *Registration {
	return &Registration{
		masterURL: cfg.MasterURL,
		info: master.RegisterRequest{
			Name:       cfg.Name,
			Address:    cfg.Address,
			MaxPlayers: cfg.MaxPlayers,
			Version:    cfg.Version,
			Region:     cfg.Region,
			Mode:       string(cfg.Mode),
			Map:        cfg.Map,
		},
		players:  players,
		client:   &http.Client{Timeout: 5 * time.Second},
		log:      log.WithField("component", "registration"),
		interval: heartbeatInterval,
		stopCh:   make(chan struct{}),
	}
}

func (r *Registration) Start() {
	if err := r.register(); err != nil {
		r.log.Warnf("initial registration failed: %v", err)
	}
	go r.heartbeatLoop()
}

func (r *Registration) Stop() {
	close(r.stopCh)
}

func (r *Registration) register() error {
	req := r.info
	req.Players = r.players.PlayerCount()

	var result master.RegisterResponse
	if err := r.post("/servers/register", req, http.StatusCreated, &result); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	r.serverID = result.ID
	r.log.WithFields(logrus.Fields{"id": r.serverID, "mode": req.Mode, "map": req.Map}).Info("registered with master")
	return nil
}

func (r *Registration) heartbeatLoop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			if err := r.sendHeartbeat(); err != nil {
				r.log.Warnf("heartbeat failed: %v", err)
			}
		}
	}
}

func (r *Registration) sendHeartbeat() error {
	err := r.post("/servers/heartbeat", master.HeartbeatRequest{
		ID:      r.serverID,
		Players: r.players.PlayerCount(),
	}, http.StatusOK, nil)
	if errors.Is(err, errUnknownServer) {
		r.log.Info("master lost our registration, re-registering")
		return r.register()
	}
	if err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	return nil
}

// post sends body as JSON to path and decodes the reply into out when out
// is not nil. A 404 maps to errUnknownServer.
func (r *Registration) post(path string, body any, want int, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	resp, err := r.client.Post(r.masterURL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case want:
	case http.StatusNotFound:
		return errUnknownServer
	default:
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
