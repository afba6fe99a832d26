// Package api provides the HTTP API for observing the affect state.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/talgya/temperament/internal/engine"
	"github.com/talgya/temperament/internal/journal"
)

// Server serves affect snapshots over HTTP. Handlers never touch the agent
// directly; the tick loop publishes consistent snapshots.
type Server struct {
	Eng      *engine.Engine
	DB       *journal.DB // optional: enables the history endpoints
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	mu   sync.RWMutex
	snap engine.Snapshot
}

// Publish makes a fresh snapshot visible to handlers. Called from the tick
// goroutine once per tick.
func (s *Server) Publish(snap engine.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

func (s *Server) latest() engine.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	limiter := NewRateLimiter(600, time.Minute)

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", RateLimitMiddleware(limiter, s.handleStatus))
	mux.HandleFunc("/api/v1/traits", RateLimitMiddleware(limiter, s.handleTraits))
	mux.HandleFunc("/api/v1/emotions", RateLimitMiddleware(limiter, s.handleEmotions))
	mux.HandleFunc("/api/v1/mood", RateLimitMiddleware(limiter, s.handleMood))
	mux.HandleFunc("/api/v1/history", RateLimitMiddleware(limiter, s.handleHistory))
	mux.HandleFunc("/api/v1/events", RateLimitMiddleware(limiter, s.handleEvents))

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("encode response failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.latest()
	status := map[string]any{
		"name":              snap.Name,
		"tick":              snap.Tick,
		"age":               snap.Age,
		"maturity":          snap.Maturity,
		"mood":              snap.Mood.Mood,
		"mood_intensity":    snap.Mood.Intensity,
		"emotion":           snap.Emotion.Dominant,
		"emotion_intensity": snap.Emotion.Intensity,
	}
	if s.Eng != nil {
		status["speed"] = s.Eng.Speed
		status["running"] = s.Eng.Running
	}
	writeJSON(w, status)
}

func (s *Server) handleTraits(w http.ResponseWriter, r *http.Request) {
	snap := s.latest()
	writeJSON(w, map[string]any{
		"tick":     snap.Tick,
		"age":      snap.Age,
		"maturity": snap.Maturity,
		"traits":   snap.Traits,
	})
}

func (s *Server) handleEmotions(w http.ResponseWriter, r *http.Request) {
	snap := s.latest()
	writeJSON(w, snap.Emotion)
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	snap := s.latest()
	writeJSON(w, snap.Mood)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}
	limit := 100
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	rows, err := s.DB.RecentSnapshots(limit)
	if err != nil {
		slog.Error("history query failed", "error", err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}
	events, err := s.DB.RecentEvents(100)
	if err != nil {
		slog.Error("events query failed", "error", err)
		http.Error(w, "events unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, events)
}

// adminOnly gates a handler behind the bearer token. POST only.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.Speed < 0 || req.Speed > 100 {
		http.Error(w, "speed out of range", http.StatusBadRequest)
		return
	}
	s.Eng.Speed = req.Speed
	slog.Info("speed changed", "speed", req.Speed)
	writeJSON(w, map[string]any{"speed": req.Speed})
}
