// Package channel defines the uniform contract every distribution target
// implements, plus the shared rule-table machinery adapters use to decide
// whether a vendor error is worth one fallback attempt.
package channel

import (
	"context"

	"eventcast/internal/domain/event"
)

type Name string

const (
	Facebook   Name = "facebook"
	Eventbrite Name = "eventbrite"
	Press      Name = "press"
)

// All is the sentinel channel selector meaning every ready channel.
const All = "all"

// Content is the editable payload posted alongside the event identity.
// None of it participates in fingerprints.
type Content struct {
	Body      string
	HTML      string
	ImageURLs []string
}

// Request is one adapter invocation's read-only input.
type Request struct {
	Event   event.Event
	Venue   event.Venue
	Content Content
}

// Result is created once per adapter invocation and never mutated after
// construction; the coordinator folds it into the aggregated report.
type Result struct {
	Channel      Name
	Success      bool
	ExternalID   string
	URL          string
	Error        string
	UsedFallback bool
	Replayed     bool
}

// Readiness reports whether a channel's required configuration is present.
// It is a precondition check, not a connectivity test.
type Readiness struct {
	Ready   bool
	Missing []string
}

// Adapter is a stateless per-call distribution target. Distribute performs
// at most two outbound calls: the primary strategy and, after a
// fallback-eligible failure, exactly one fallback.
type Adapter interface {
	Name() Name
	Readiness() Readiness
	// Fingerprint derives the idempotency key for this request on this
	// channel. The adapter does not persist it.
	Fingerprint(req Request) string
	Distribute(ctx context.Context, req Request) Result
}

// Failure converts an attempt error into a terminal Result.
func Failure(name Name, err error, usedFallback bool) Result {
	return Result{Channel: name, Error: err.Error(), UsedFallback: usedFallback}
}
