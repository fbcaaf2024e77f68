package jobs

import (
	"testing"
	"time"
)

func TestBackoffDoubles(t *testing.T) {
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{1, 2 * time.Minute},
		{2, 4 * time.Minute},
		{3, 8 * time.Minute},
		{4, 16 * time.Minute},
	}

	for _, tt := range tests {
		if got := Backoff(tt.attempts); got != tt.want {
			t.Errorf("Backoff(%d) = %v, want %v", tt.attempts, got, tt.want)
		}
	}
}

func TestRecurringInterval(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    time.Duration
		ok      bool
	}{
		{"hourly", `{"job_type":"process_reminders","_recurring":{"interval_minutes":60}}`, time.Hour, true},
		{"zero interval", `{"_recurring":{"interval_minutes":0}}`, 0, false},
		{"negative interval", `{"_recurring":{"interval_minutes":-5}}`, 0, false},
		{"no recurring block", `{"job_type":"emit_event"}`, 0, false},
		{"empty payload", ``, 0, false},
		{"invalid json", `{`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RecurringInterval([]byte(tt.payload))
			if ok != tt.ok || got != tt.want {
				t.Errorf("RecurringInterval = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
