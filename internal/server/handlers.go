package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleHealth is a liveness probe
// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// handleSystemStatus reports database health and basic counters
// GET /api/system/status
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"database":       "ok",
	}

	if err := s.db.Conn().Ping(); err != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	} else {
		var tradeCount int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM trades").Scan(&tradeCount); err == nil {
			status["trades"] = tradeCount
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status)
}
