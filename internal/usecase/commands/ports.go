package commands

import (
	"context"
	"time"

	"eventcast/internal/infra/repository"
)

// FingerprintStore is the durable idempotency collaborator. SetIfAbsent is
// the check-and-set: it must be concurrency-safe across processes.
type FingerprintStore interface {
	SetIfAbsent(ctx context.Context, fingerprint, channelName string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, fingerprint string) (*repository.FingerprintRecord, error)
	MarkCompleted(ctx context.Context, fingerprint, externalID string, expiresAt time.Time) error
	Release(ctx context.Context, fingerprint string) error
}

type MetricsRecorder interface {
	Distribution(channelName, outcome string)
	Fallback(channelName string)
}
