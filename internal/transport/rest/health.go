package rest

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

// HealthHandler reports process and backend health. db is nil when the
// remote backend is not configured; that is a healthy local-only setup.
type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Remote    string    `json:"remote"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Remote:    "disabled",
		Timestamp: time.Now().UTC(),
	}

	status := http.StatusOK
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Remote = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Remote = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"message":"pong"}`))
}
