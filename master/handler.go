package master

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// RegisterRequest is posted by a game server to /servers/register.
type RegisterRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
	Mode       string `json:"mode"`
	Map        string `json:"map"`
}

type RegisterResponse struct {
	ID string `json:"id"`
}

// HeartbeatRequest is posted by a game server to /servers/heartbeat.
type HeartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

const maxRequestBody = 1 << 16 // 64 KB

// NewMux routes the master HTTP API to reg.
func NewMux(reg *Registry, log logrus.FieldLogger) *http.ServeMux {
	log = log.WithField("component", "master")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /servers", ListServers(reg, log))
	mux.HandleFunc("POST /servers/register", RegisterServer(reg, log))
	mux.HandleFunc("POST /servers/heartbeat", Heartbeat(reg))
	mux.HandleFunc("GET /health", Health())
	return mux
}

// ListServers serves the live servers. The mode, region and notfull query
// parameters narrow the list.
func ListServers(reg *Registry, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		q := r.URL.Query()
		servers := reg.List(Filter{
			Mode:    q.Get("mode"),
			Region:  q.Get("region"),
			NotFull: q.Get("notfull") == "1",
		})
		if err := json.NewEncoder(w).Encode(servers); err != nil {
			log.Warnf("list encode error: %v", err)
		}
	}
}

func RegisterServer(reg *Registry, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		if req.Name == "" || req.Address == "" {
			http.Error(w, `{"error":"name and address required"}`, http.StatusBadRequest)
			return
		}

		id := reg.Register(ServerInfo{
			Name:       req.Name,
			Address:    req.Address,
			Players:    req.Players,
			MaxPlayers: req.MaxPlayers,
			Version:    req.Version,
			Region:     req.Region,
			Mode:       req.Mode,
			Map:        req.Map,
		})

		log.Infof("registered server %q at %s (id=%s, mode=%s, map=%s)", req.Name, req.Address, id, req.Mode, req.Map)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(RegisterResponse{ID: id})
	}
}

func Heartbeat(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		var req HeartbeatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}

		if !reg.Heartbeat(req.ID, req.Players) {
			http.Error(w, `{"error":"unknown server"}`, http.StatusNotFound)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
