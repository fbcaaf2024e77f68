package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookd/internal/auth"
	"bookd/internal/reservation"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type ReservationHandler struct {
	Svc *reservation.Service
}

type createReservationReq struct {
	StartAt      string          `json:"start_at"` // RFC3339
	EndAt        string          `json:"end_at"`   // RFC3339
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Service      string          `json:"service"`
	ServiceID    *uint64         `json:"service_id"`
	StaffID      *uint64         `json:"staff_id"`
	Status       string          `json:"status"`
	Tags         []string        `json:"tags"`
	Metadata     json.RawMessage `json:"metadata"`
}

type reservationDTO struct {
	ID           uint64          `json:"id"`
	TenantID     string          `json:"tenant_id"`
	StartAt      time.Time       `json:"start_at"`
	EndAt        time.Time       `json:"end_at"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone"`
	Service      string          `json:"service"`
	StaffID      *uint64         `json:"staff_id,omitempty"`
	Tags         []string        `json:"tags"`
	Metadata     json.RawMessage `json:"metadata"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toDTO(r *reservation.Reservation) reservationDTO {
	return reservationDTO{
		ID:           r.ID,
		TenantID:     r.TenantID,
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		Status:       r.Status,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Service:      r.Service,
		StaffID:      r.StaffID,
		Tags:         []string(r.Tags),
		Metadata:     r.Metadata,
		CreatedAt:    r.CreatedAt,
	}
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenant, _ := auth.TenantFromContext(r.Context())

	var req createReservationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	startAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartAt))
	if err != nil {
		http.Error(w, "invalid start_at (RFC3339)", http.StatusBadRequest)
		return
	}
	endAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.EndAt))
	if err != nil {
		http.Error(w, "invalid end_at (RFC3339)", http.StatusBadRequest)
		return
	}

	res, err := h.Svc.Create(r.Context(), reservation.CreateInput{
		TenantID:     tenant,
		StartAt:      startAt,
		EndAt:        endAt,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		Service:      strings.TrimSpace(req.Service),
		ServiceID:    req.ServiceID,
		StaffID:      req.StaffID,
		Status:       strings.TrimSpace(req.Status),
		Tags:         req.Tags,
		Metadata:     req.Metadata,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrConflict):
			http.Error(w, "slot unavailable", http.StatusConflict)
		case errors.Is(err, reservation.ErrInvalidInput):
			http.Error(w, "invalid input", http.StatusBadRequest)
		default:
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(res))
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant, _ := auth.TenantFromContext(r.Context())

	var f reservation.ListFilter
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid from (RFC3339)", http.StatusBadRequest)
			return
		}
		f.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid to (RFC3339)", http.StatusBadRequest)
			return
		}
		f.To = &t
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		f.Limit = n
	}

	rows, err := h.Svc.List(r.Context(), tenant, f)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]reservationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant, _ := auth.TenantFromContext(r.Context())

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	res, err := h.Svc.Get(r.Context(), tenant, id64)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(res))
}
