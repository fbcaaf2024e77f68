package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookd/internal/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageDispatcher delivers outbound reservation messages. It is the
// fallback job handler for payloads that carry a message_id.
type MessageDispatcher struct {
	DB       *gorm.DB
	Notifier notify.Notifier
	Log      *zap.Logger
}

type messagePayload struct {
	MessageID uint64 `json:"message_id"`
}

func (d *MessageDispatcher) Handle(ctx context.Context, payload json.RawMessage) error {
	var p messagePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("bad message payload: %w", err)
	}
	if p.MessageID == 0 {
		return errors.New("message payload missing message_id")
	}

	var msg Message
	err := d.DB.WithContext(ctx).First(&msg, p.MessageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// message was deleted out from under the job; nothing to redo
		d.Log.Warn("message not found", zap.Uint64("message_id", p.MessageID))
		return nil
	}
	if err != nil {
		return err
	}
	if msg.Status == MessageSent {
		return nil
	}

	ok, response := d.Notifier.Send(ctx, msg.TenantID, msg.To, msg.Body)
	if !ok {
		// leave the row pending; the job retry policy owns the backoff
		_ = d.DB.WithContext(ctx).Model(&Message{}).Where("id = ?", msg.ID).Updates(map[string]any{
			"raw_response": response,
			"updated_at":   time.Now(),
		}).Error
		return fmt.Errorf("send message %d: %s", msg.ID, response)
	}

	return d.DB.WithContext(ctx).Model(&Message{}).Where("id = ?", msg.ID).Updates(map[string]any{
		"status":       MessageSent,
		"raw_response": response,
		"sent_at":      time.Now(),
		"updated_at":   time.Now(),
	}).Error
}
