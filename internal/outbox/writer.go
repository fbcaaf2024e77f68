package outbox

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Append stages an event for publication. tx is the caller's transaction so
// the outbox row commits or rolls back together with the primary write.
func Append(tx *gorm.DB, typ, tenantID string, locationID *string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	row := OutboxEvent{
		Type:       typ,
		TenantID:   tenantID,
		LocationID: locationID,
		Payload:    raw,
	}
	return tx.Create(&row).Error
}
