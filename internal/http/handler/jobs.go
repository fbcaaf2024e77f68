package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookd/internal/jobs"
)

type JobHandler struct {
	Repo *jobs.Repo
}

type jobDTO struct {
	ID          uint64          `json:"id"`
	Status      string          `json:"status"`
	Payload     json.RawMessage `json:"payload"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	Attempts    int             `json:"attempts"`
	LastError   *string         `json:"last_error"`
	RunCount    int             `json:"run_count"`
	LastRunAt   *time.Time      `json:"last_run_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type createJobReq struct {
	Payload     json.RawMessage `json:"payload"`
	ScheduledAt *string         `json:"scheduled_at"` // RFC3339, defaults to now
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	runAt := time.Now()
	if req.ScheduledAt != nil && strings.TrimSpace(*req.ScheduledAt) != "" {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			http.Error(w, "invalid scheduled_at (RFC3339)", http.StatusBadRequest)
			return
		}
		runAt = t
	}

	j, err := h.Repo.Enqueue(r.Context(), req.Payload, runAt)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": j.ID})
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	rows, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]jobDTO, 0, len(rows))
	for _, j := range rows {
		out = append(out, jobDTO{
			ID:          j.ID,
			Status:      j.Status,
			Payload:     j.Payload,
			ScheduledAt: j.ScheduledAt,
			Attempts:    j.Attempts,
			LastError:   j.LastError,
			RunCount:    j.RunCount,
			LastRunAt:   j.LastRunAt,
			UpdatedAt:   j.UpdatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
