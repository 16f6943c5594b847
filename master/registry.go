// Package master is the server list: game servers register and send
// heartbeats, clients list the servers that are still alive.
package master

import (
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ServerInfo describes a game server visible to clients.
type ServerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
	Mode       string `json:"mode"`
	Map        string `json:"map"`
}

// Filter selects servers in List. Empty fields match everything.
type Filter struct {
	Mode    string
	Region  string
	NotFull bool
}

func (f Filter) match(info ServerInfo) bool {
	if f.Mode != "" && info.Mode != f.Mode {
		return false
	}
	if f.Region != "" && info.Region != f.Region {
		return false
	}
	return !f.NotFull || info.Players < info.MaxPlayers
}

type serverRecord struct {
	ServerInfo
	LastSeen time.Time
}

// Registry is an in-memory store of active game servers with TTL-based expiry.
type Registry struct {
	mu      sync.RWMutex
	servers map[string]*serverRecord
	ttl     time.Duration
	now     func() time.Time
	log     logrus.FieldLogger
	stopCh  chan struct{}
}

// NewRegistry creates an empty registry. Call Run to expire silent servers.
func NewRegistry(ttl time.Duration, log logrus.FieldLogger) *Registry {
	return &Registry{
		servers: make(map[string]*serverRecord),
		ttl:     ttl,
		now:     time.Now,
		log:     log.WithField("component", "master"),
		stopCh:  make(chan struct{}),
	}
}

// Run expires servers every interval until Stop is called.
func (r *Registry) Run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}

func (r *Registry) Stop() {
	close(r.stopCh)
}

// Register stores info under a new random id and returns the id.
func (r *Registry) Register(info ServerInfo) string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	id := fmt.Sprintf("%x", b)

	info.ID = id

	r.mu.Lock()
	r.servers[id] = &serverRecord{
		ServerInfo: info,
		LastSeen:   r.now(),
	}
	r.mu.Unlock()

	return id
}

// Heartbeat refreshes server id. It reports false for unknown ids.
func (r *Registry) Heartbeat(id string, players int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.servers[id]
	if !ok {
		return false
	}
	rec.LastSeen = r.now()
	rec.Players = players
	return true
}

// List returns the servers matching f, fullest first.
func (r *Registry) List(f Filter) []ServerInfo {
	r.mu.RLock()
	result := make([]ServerInfo, 0, len(r.servers))
	for _, rec := range r.servers {
		if f.match(rec.ServerInfo) {
			result = append(result, rec.ServerInfo)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Players != result[j].Players {
			return result[i].Players > result[j].Players
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Expire drops servers that have not been seen for the TTL.
func (r *Registry) Expire() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, rec := range r.servers {
		if now.Sub(rec.LastSeen) >= r.ttl {
			r.log.Infof("expired server %q (id=%s, last seen %s ago)",
				rec.Name, id, now.Sub(rec.LastSeen).Round(time.Second))
			delete(r.servers, id)
		}
	}
}
