package jobs

import (
	"encoding/json"
	"time"
)

// MaxAttempts is the terminal-failure ceiling: a job whose claim-time
// attempts counter reaches this value is failed instead of rescheduled.
const MaxAttempts = 5

// Backoff returns the retry delay after a failed run. attempts is the value
// already incremented by the claim, so consecutive failures wait
// 2, 4, 8, 16 minutes before the terminal attempt.
func Backoff(attempts int) time.Duration {
	return time.Duration(1<<attempts) * time.Minute
}

type Recurring struct {
	IntervalMinutes int `json:"interval_minutes"`
}

type recurringEnvelope struct {
	Recurring *Recurring `json:"_recurring"`
}

// RecurringInterval reports whether the payload marks the job as recurring
// and, if so, the reschedule interval.
func RecurringInterval(payload json.RawMessage) (time.Duration, bool) {
	if len(payload) == 0 {
		return 0, false
	}
	var env recurringEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return 0, false
	}
	if env.Recurring == nil || env.Recurring.IntervalMinutes <= 0 {
		return 0, false
	}
	return time.Duration(env.Recurring.IntervalMinutes) * time.Minute, true
}
