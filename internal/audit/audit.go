// Package audit defines the audit event values the triage core supplies to
// its external audit collaborator, plus recorder implementations: a logrus
// recorder for structured log sinks and an in-memory recorder for tests.
//
// The core only produces these events; durable recording is the
// collaborator's responsibility.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// Action identifies what happened to an entity.
type Action string

const (
	ActionEvaluated  Action = "triage.evaluated"
	ActionConfirmed  Action = "disposition.confirmed"
	ActionOverridden Action = "disposition.overridden"
)

// Event is one immutable audit record: who did what to which entity, the
// tier movement where applicable, and the rule-set hash that produced the
// decision.
type Event struct {
	ID          string         `json:"id"`
	Actor       string         `json:"actor"`
	Action      Action         `json:"action"`
	Entity      string         `json:"entity"`
	BeforeTier  domain.Tier    `json:"before_tier,omitempty"`
	AfterTier   domain.Tier    `json:"after_tier,omitempty"`
	RuleSetHash string         `json:"ruleset_hash,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Details     map[string]any `json:"details,omitempty"`
}

// NewEvent creates an audit event with id and timestamp assigned.
func NewEvent(actor string, action Action, entity string) Event {
	return Event{
		ID:         uuid.NewString(),
		Actor:      actor,
		Action:     action,
		Entity:     entity,
		OccurredAt: time.Now().UTC(),
	}
}

// Recorder receives audit events from the core.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

// LogRecorder writes audit events as structured log entries.
type LogRecorder struct {
	logger *logrus.Logger
}

// NewLogRecorder creates a logrus-backed audit recorder.
func NewLogRecorder(logger *logrus.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

// Record logs the event with structured fields.
func (r *LogRecorder) Record(_ context.Context, event Event) error {
	r.logger.WithFields(logrus.Fields{
		"audit_id":     event.ID,
		"actor":        event.Actor,
		"action":       string(event.Action),
		"entity":       event.Entity,
		"before_tier":  event.BeforeTier.String(),
		"after_tier":   event.AfterTier.String(),
		"ruleset_hash": event.RuleSetHash,
		"occurred_at":  event.OccurredAt,
	}).Info("Audit event")
	return nil
}

// MemoryRecorder collects audit events in memory for tests.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryRecorder creates an empty in-memory audit recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Record appends the event.
func (r *MemoryRecorder) Record(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of the recorded events.
func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]Event, len(r.events))
	copy(copied, r.events)
	return copied
}
