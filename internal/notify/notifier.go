// Package notify abstracts the external notification channel. The channel's
// own auth, rate limits and retries are its problem; callers only see ok/not-ok
// plus a raw response for the audit trail.
package notify

import "context"

type Notifier interface {
	Send(ctx context.Context, tenantID, to, message string) (ok bool, response string)
}
