package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"bookd/internal/auth"
	"bookd/internal/reminder"

	"gorm.io/gorm"
)

type ReminderHandler struct {
	DB *gorm.DB
}

type reminderDTO struct {
	ID            uint64     `json:"id"`
	TenantID      string     `json:"tenant_id"`
	ReservationID *uint64    `json:"reservation_id,omitempty"`
	RemindAt      time.Time  `json:"remind_at"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	Attempts      int        `json:"attempts"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant, _ := auth.TenantFromContext(r.Context())

	q := h.DB.WithContext(r.Context()).Where("tenant_id = ?", tenant)
	if st := r.URL.Query().Get("status"); st != "" {
		q = q.Where("status = ?", st)
	}

	var rows []reminder.Reminder
	if err := q.Order("remind_at desc").Limit(100).Find(&rows).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]reminderDTO, 0, len(rows))
	for _, rm := range rows {
		out = append(out, reminderDTO{
			ID:            rm.ID,
			TenantID:      rm.TenantID,
			ReservationID: rm.ReservationID,
			RemindAt:      rm.RemindAt,
			Method:        rm.Method,
			Status:        rm.Status,
			Attempts:      rm.Attempts,
			SentAt:        rm.SentAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
