package outbox

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewEventMapsOutboxRow(t *testing.T) {
	loc := "loc-9"
	now := time.Now()
	row := &OutboxEvent{
		ID:         12,
		Type:       "booking.created",
		TenantID:   "t1",
		LocationID: &loc,
		Payload:    []byte(`{"reservation_id":5}`),
		CreatedAt:  now.Add(-time.Minute),
	}

	ev := newEvent(row, now)

	if ev.Event != "booking.created" {
		t.Errorf("Event = %q, want booking.created", ev.Event)
	}
	if ev.TenantID != "t1" {
		t.Errorf("TenantID = %q, want t1", ev.TenantID)
	}
	if ev.LocationID == nil || *ev.LocationID != "loc-9" {
		t.Errorf("LocationID = %v, want loc-9", ev.LocationID)
	}
	if string(ev.Payload) != `{"reservation_id":5}` {
		t.Errorf("Payload = %s", ev.Payload)
	}
	if ev.Version != 1 {
		t.Errorf("Version = %d, want 1", ev.Version)
	}
	if !ev.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want dispatch time %v", ev.CreatedAt, now)
	}
	if ev.ID == uuid.Nil {
		t.Error("ID is nil, want a fresh uuid")
	}
}

func TestNewEventIDsAreUnique(t *testing.T) {
	row := &OutboxEvent{Type: "x", TenantID: "t1"}
	a := newEvent(row, time.Now())
	b := newEvent(row, time.Now())
	if a.ID == b.ID {
		t.Error("two events share an id; downstream dedup depends on unique ids")
	}
}
