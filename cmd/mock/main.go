package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// mock serves a local stand-in for the farming site, the ad network and the
// exit-IP service so the bot can be exercised without real accounts.
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	farmFor := flag.Duration("farm", 6*time.Hour, "length of a farming cycle")
	flag.Parse()

	st := &state{users: map[string]*user{}, farmFor: *farmFor, base: "http://" + hostFor(*addr)}

	mux := http.NewServeMux()
	mux.HandleFunc("/mock/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	mux.HandleFunc("/ipify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ip": strings.Split(r.RemoteAddr, ":")[0]})
	})

	mux.HandleFunc("/api/v1/web-app/balance/", st.withUser(func(w http.ResponseWriter, r *http.Request, u *user) {
		writeJSON(w, http.StatusOK, map[string]any{"amount": u.balance, "count_reset": 0})
	}))

	mux.HandleFunc("/api/v1/web-app/farming/", st.withUser(func(w http.ResponseWriter, r *http.Request, u *user) {
		switch r.Method {
		case http.MethodGet:
			if u.farmStart.IsZero() {
				writeJSON(w, http.StatusOK, map[string]any{})
				return
			}
			writeJSON(w, http.StatusOK, farmBody(u))
		case http.MethodPost:
			u.farmStart = time.Now().UTC()
			u.farmStop = u.farmStart.Add(st.farmFor)
			writeJSON(w, http.StatusOK, farmBody(u))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/api/v1/web-app/farming/collect/", st.withUser(func(w http.ResponseWriter, r *http.Request, u *user) {
		if r.Method != http.MethodDelete {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		u.balance += 100
		u.farmStart, u.farmStop = time.Time{}, time.Time{}
		writeJSON(w, http.StatusOK, map[string]any{"amount": u.balance})
	}))

	mux.HandleFunc("/api/v1/web-app/tasks/", st.withUser(func(w http.ResponseWriter, r *http.Request, u *user) {
		if r.Method == http.MethodGet && r.URL.Path == "/api/v1/web-app/tasks/" {
			writeJSON(w, http.StatusOK, u.tasks)
			return
		}
		if r.Method != http.MethodPatch {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/web-app/tasks/task/"), "/")
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for i := range u.tasks {
			if u.tasks[i]["id"] == id {
				u.tasks[i]["status"] = body.Status
				if body.Status == "collected" {
					u.balance += 50
				}
				writeJSON(w, http.StatusOK, map[string]any{"success": true})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": false})
	}))

	mux.HandleFunc("/api/v1/users/user/current-user/", st.withUser(func(w http.ResponseWriter, r *http.Request, u *user) {
		writeJSON(w, http.StatusOK, map[string]any{"adsgram_counter": u.adsgram, "chat_id": u.chatID})
	}))

	mux.HandleFunc("/adv", func(w http.ResponseWriter, r *http.Request) {
		tgID := r.URL.Query().Get("tg_id")
		if tgID == "" || r.URL.Query().Get("blockId") == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing params"})
			return
		}
		track := func(kind string) map[string]any {
			return map[string]any{"name": kind, "value": st.base + "/track?kind=" + kind + "&tg_id=" + tgID}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"banner": map[string]any{
				"trackings": []any{track("render"), track("show"), track("reward")},
			},
		})
	})

	mux.HandleFunc("/track", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("kind") == "reward" {
			st.reward(r.URL.Query().Get("tg_id"))
		}
		w.WriteHeader(http.StatusOK)
	})

	log.Printf("mock listening on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}

type user struct {
	chatID    string
	balance   int
	adsgram   int
	farmStart time.Time
	farmStop  time.Time
	tasks     []map[string]any
}

type state struct {
	mu      sync.Mutex
	users   map[string]*user
	farmFor time.Duration
	base    string
}

// withUser resolves the caller from the init-data header. Handlers run under
// the state lock.
func (s *state) withUser(h func(http.ResponseWriter, *http.Request, *user)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("X-Telegram-Auth")
		if auth == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "not authenticated"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		h(w, r, s.userFor(auth))
	}
}

func (s *state) userFor(auth string) *user {
	if u, ok := s.users[auth]; ok {
		return u
	}
	u := &user{
		chatID:  chatIDFromAuth(auth),
		balance: 1000,
		tasks: []map[string]any{
			{"id": "1", "description": "Join channel", "price": 100, "status": "new"},
			{"id": "2", "description": "Follow on X", "price": 150, "status": "new"},
			{"id": "3", "description": "Invite a friend", "price": 500, "status": "collected"},
		},
	}
	s.users[auth] = u
	return u
}

func (s *state) reward(chatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.chatID == chatID && u.adsgram < 20 {
			u.adsgram++
			return
		}
	}
}

func chatIDFromAuth(auth string) string {
	i := strings.Index(auth, "%22id%22%3A")
	if i < 0 {
		return "1"
	}
	rest := auth[i+len("%22id%22%3A"):]
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end <= 0 {
		return "1"
	}
	return rest[:end]
}

func farmBody(u *user) map[string]any {
	return map[string]any{
		"start_time": u.farmStart.Format("2006-01-02T15:04:05.000000Z"),
		"stop_time":  u.farmStop.Format("2006-01-02T15:04:05.000000Z"),
	}
}

func hostFor(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	return addr
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
