package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"iceberg_farmer/internal/config"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
	"iceberg_farmer/internal/ws"
)

// StateSource reports what the farming loop is doing.
type StateSource interface {
	State() model.EngineState
}

// PassLister reads the pass journal.
type PassLister interface {
	ListPassReports(ctx context.Context, limit int) ([]model.PassReport, error)
}

type Options struct {
	Cfg     config.Config
	Bus     *logbus.Bus
	Engine  StateSource
	Journal PassLister
}

// Server is the read-only status surface next to the farming loop.
type Server struct {
	cfg     config.Config
	bus     *logbus.Bus
	engine  StateSource
	journal PassLister
	ws      *ws.Handler
}

func New(opts Options) *Server {
	return &Server{
		cfg:     opts.Cfg,
		bus:     opts.Bus,
		engine:  opts.Engine,
		journal: opts.Journal,
		ws:      ws.NewHandler(opts.Bus, opts.Cfg.Server.Cors.AllowOrigins),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/ws", s.ws)

	api := http.NewServeMux()
	api.HandleFunc("/api/v1/state", s.handleState)
	api.HandleFunc("/api/v1/logs", s.handleLogs)
	api.HandleFunc("/api/v1/passes", s.handlePasses)

	mux.Handle("/api/", corsMiddleware(s.cfg.Server.Cors, api))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.engine == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "engine unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": s.engine.State()})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	msgs := s.bus.Snapshot()
	if typ := r.URL.Query().Get("type"); typ != "" {
		filtered := msgs[:0]
		for _, m := range msgs {
			if m.Type == typ {
				filtered = append(filtered, m)
			}
		}
		msgs = filtered
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": msgs})
}

func (s *Server) handlePasses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.journal == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "pass journal is disabled"})
		return
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	passes, err := s.journal.ListPassReports(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": passes})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
