package jobs

import (
	"context"
	"encoding/json"
)

// Handler executes one kind of background work against a job payload.
type Handler interface {
	Handle(ctx context.Context, payload json.RawMessage) error
}

type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

func (f HandlerFunc) Handle(ctx context.Context, payload json.RawMessage) error {
	return f(ctx, payload)
}

// typeAliases folds legacy discriminant spellings into canonical names.
var typeAliases = map[string]string{
	"reminders:process": "process_reminders",
}

// Registry maps a payload discriminant to a handler. Handlers are registered
// once at startup; resolution never loads code at runtime.
type Registry struct {
	handlers map[string]Handler

	// message handles payloads that carry a message_id but no job_type.
	message Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

func (r *Registry) Register(jobType string, h Handler) {
	r.handlers[jobType] = h
}

// RegisterMessage installs the fallback handler used when a payload carries
// a message identifier instead of an explicit job_type.
func (r *Registry) RegisterMessage(h Handler) {
	r.message = h
}

type payloadEnvelope struct {
	JobType   string `json:"job_type"`
	MessageID uint64 `json:"message_id"`
}

// Resolve returns the handler for a job payload, or nil when no handler
// matches (a structural failure, never retried).
func (r *Registry) Resolve(payload json.RawMessage) Handler {
	var env payloadEnvelope
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &env); err != nil {
			return nil
		}
	}

	typ := env.JobType
	if canon, ok := typeAliases[typ]; ok {
		typ = canon
	}
	if typ != "" {
		return r.handlers[typ]
	}
	if env.MessageID != 0 {
		return r.message
	}
	return nil
}
