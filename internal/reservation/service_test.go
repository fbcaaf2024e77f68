package reservation

import (
	"errors"
	"testing"
	"time"
)

func ts(h, m int) time.Time {
	return time.Date(2026, 1, 10, h, m, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   CreateInput
		ok   bool
	}{
		{"valid", CreateInput{TenantID: "t1", StartAt: ts(10, 0), EndAt: ts(11, 0)}, true},
		{"missing tenant", CreateInput{StartAt: ts(10, 0), EndAt: ts(11, 0)}, false},
		{"zero start", CreateInput{TenantID: "t1", EndAt: ts(11, 0)}, false},
		{"zero end", CreateInput{TenantID: "t1", StartAt: ts(10, 0)}, false},
		{"start equals end", CreateInput{TenantID: "t1", StartAt: ts(10, 0), EndAt: ts(10, 0)}, false},
		{"start after end", CreateInput{TenantID: "t1", StartAt: ts(11, 0), EndAt: ts(10, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.validate()
			if tt.ok && err != nil {
				t.Errorf("validate: %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("validate: %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint before", ts(8, 0), ts(9, 0), ts(10, 0), ts(11, 0), false},
		{"disjoint after", ts(12, 0), ts(13, 0), ts(10, 0), ts(11, 0), false},
		{"back to back, a first", ts(9, 0), ts(10, 0), ts(10, 0), ts(11, 0), false},
		{"back to back, b first", ts(11, 0), ts(12, 0), ts(10, 0), ts(11, 0), false},
		{"partial overlap left", ts(9, 30), ts(10, 30), ts(10, 0), ts(11, 0), true},
		{"partial overlap right", ts(10, 30), ts(11, 30), ts(10, 0), ts(11, 0), true},
		{"contained", ts(10, 15), ts(10, 45), ts(10, 0), ts(11, 0), true},
		{"containing", ts(9, 0), ts(12, 0), ts(10, 0), ts(11, 0), true},
		{"identical", ts(10, 0), ts(11, 0), ts(10, 0), ts(11, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("overlaps = %v, want %v", got, tt.want)
			}
			// the predicate is symmetric
			if got := overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("overlaps (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReminderTimes(t *testing.T) {
	start := time.Date(2026, 4, 1, 14, 0, 0, 0, time.UTC)
	long, short := ReminderTimes(start)

	if want := start.Add(-24 * time.Hour); !long.Equal(want) {
		t.Errorf("long lead = %v, want %v", long, want)
	}
	if want := start.Add(-2 * time.Hour); !short.Equal(want) {
		t.Errorf("short lead = %v, want %v", short, want)
	}
}
