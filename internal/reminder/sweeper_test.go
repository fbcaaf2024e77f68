package reminder

import (
	"testing"
	"time"
)

func TestResolveDeliveryFromRaw(t *testing.T) {
	d, err := resolveDelivery([]byte(`{"to":"+15551234","message":"See you at 10"}`), nil)
	if err != nil {
		t.Fatalf("resolveDelivery: %v", err)
	}
	if d.To != "+15551234" || d.Message != "See you at 10" {
		t.Errorf("delivery = %+v", d)
	}
}

func TestResolveDeliveryFromReservation(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	res := &reservationRow{ID: 1, TenantID: "t1", StartAt: start, Phone: "+15550000"}

	d, err := resolveDelivery(nil, res)
	if err != nil {
		t.Fatalf("resolveDelivery: %v", err)
	}
	if d.To != "+15550000" {
		t.Errorf("To = %q, want reservation phone", d.To)
	}
	if d.Message != DefaultMessage(start) {
		t.Errorf("Message = %q, want default", d.Message)
	}
}

func TestResolveDeliveryPrefersRawOverReservation(t *testing.T) {
	res := &reservationRow{Phone: "+15550000", StartAt: time.Now()}

	d, err := resolveDelivery([]byte(`{"to":"+19998888","message":"custom"}`), res)
	if err != nil {
		t.Fatalf("resolveDelivery: %v", err)
	}
	if d.To != "+19998888" || d.Message != "custom" {
		t.Errorf("delivery = %+v, want raw values", d)
	}
}

func TestResolveDeliveryUnresolvable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		res  *reservationRow
	}{
		{"nothing at all", ``, nil},
		{"message without destination", `{"message":"hi"}`, nil},
		{"reservation without phone", ``, &reservationRow{StartAt: time.Now()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := resolveDelivery([]byte(tt.raw), tt.res); err == nil {
				t.Error("resolveDelivery succeeded, want error")
			}
		})
	}
}

func TestNextStateCeiling(t *testing.T) {
	tests := []struct {
		attempts     int
		ok           bool
		wantStatus   string
		wantAttempts int
	}{
		{0, false, StatusPending, 1},
		{1, false, StatusPending, 2},
		{2, false, StatusFailed, 3},
		{0, true, StatusSent, 0},
		{2, true, StatusSent, 2},
	}
	for _, tt := range tests {
		status, attempts := nextState(tt.attempts, tt.ok)
		if status != tt.wantStatus || attempts != tt.wantAttempts {
			t.Errorf("nextState(%d, %v) = (%s, %d), want (%s, %d)",
				tt.attempts, tt.ok, status, attempts, tt.wantStatus, tt.wantAttempts)
		}
	}
}

func TestNextStateThirdAttemptCanStillSucceed(t *testing.T) {
	// Two failures leave the reminder pending; a success on the final
	// attempt still marks it sent.
	status, attempts := nextState(0, false)
	if status != StatusPending || attempts != 1 {
		t.Fatalf("after 1st failure: (%s, %d)", status, attempts)
	}
	status, attempts = nextState(attempts, false)
	if status != StatusPending || attempts != 2 {
		t.Fatalf("after 2nd failure: (%s, %d)", status, attempts)
	}
	status, _ = nextState(attempts, true)
	if status != StatusSent {
		t.Fatalf("after 3rd attempt success: %s, want sent", status)
	}
}
