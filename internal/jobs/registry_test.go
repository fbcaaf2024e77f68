package jobs

import (
	"context"
	"encoding/json"
	"testing"
)

func named(name string, calls *[]string) Handler {
	return HandlerFunc(func(ctx context.Context, payload json.RawMessage) error {
		*calls = append(*calls, name)
		return nil
	})
}

func TestResolveExplicitType(t *testing.T) {
	var calls []string
	r := NewRegistry()
	r.Register("process_reminders", named("sweep", &calls))
	r.Register("emit_event", named("emit", &calls))

	h := r.Resolve([]byte(`{"job_type":"process_reminders","limit":10}`))
	if h == nil {
		t.Fatal("Resolve returned nil for registered type")
	}
	_ = h.Handle(context.Background(), nil)
	if len(calls) != 1 || calls[0] != "sweep" {
		t.Errorf("calls = %v, want [sweep]", calls)
	}
}

func TestResolveAlias(t *testing.T) {
	var calls []string
	r := NewRegistry()
	r.Register("process_reminders", named("sweep", &calls))

	h := r.Resolve([]byte(`{"job_type":"reminders:process"}`))
	if h == nil {
		t.Fatal("Resolve returned nil for aliased type")
	}
	_ = h.Handle(context.Background(), nil)
	if len(calls) != 1 || calls[0] != "sweep" {
		t.Errorf("calls = %v, want [sweep]", calls)
	}
}

func TestResolveMessageFallback(t *testing.T) {
	var calls []string
	r := NewRegistry()
	r.Register("emit_event", named("emit", &calls))
	r.RegisterMessage(named("message", &calls))

	h := r.Resolve([]byte(`{"message_id":77}`))
	if h == nil {
		t.Fatal("Resolve returned nil for message payload")
	}
	_ = h.Handle(context.Background(), nil)
	if len(calls) != 1 || calls[0] != "message" {
		t.Errorf("calls = %v, want [message]", calls)
	}
}

func TestResolveMiss(t *testing.T) {
	r := NewRegistry()
	r.Register("emit_event", HandlerFunc(func(ctx context.Context, p json.RawMessage) error { return nil }))

	tests := []struct {
		name    string
		payload string
	}{
		{"unknown type", `{"job_type":"does_not_exist"}`},
		{"no discriminant", `{"foo":"bar"}`},
		{"empty payload", ``},
		{"invalid json", `{`},
		{"message without handler", `{"message_id":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if h := r.Resolve([]byte(tt.payload)); h != nil {
				t.Error("Resolve returned a handler, want nil")
			}
		})
	}
}
