package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// EmitHandler is the generic payload job handler: it stages an arbitrary
// event for publication through the outbox.
type EmitHandler struct {
	DB *gorm.DB
}

type emitPayload struct {
	Event      string          `json:"event"`
	TenantID   string          `json:"tenant_id"`
	LocationID *string         `json:"location_id"`
	Payload    json.RawMessage `json:"payload"`
}

func (h *EmitHandler) Handle(ctx context.Context, payload json.RawMessage) error {
	var p emitPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("bad emit payload: %w", err)
	}
	if p.Event == "" || p.TenantID == "" {
		return errors.New("emit payload requires event and tenant_id")
	}
	if len(p.Payload) == 0 {
		p.Payload = json.RawMessage(`{}`)
	}

	row := OutboxEvent{
		Type:       p.Event,
		TenantID:   p.TenantID,
		LocationID: p.LocationID,
		Payload:    p.Payload,
	}
	return h.DB.WithContext(ctx).Create(&row).Error
}
