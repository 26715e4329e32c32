// Package repository implements the durable side of distribution
// idempotency: a fingerprint store with check-and-set semantics backed by
// a unique key, so concurrent requests for the same event identity race
// safely at the database rather than in process memory.
package repository

import (
	"context"
	"errors"
	"time"

	"eventcast/internal/infra"
	"eventcast/internal/pkg/clock"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// FingerprintRecord is one distributed (or in-flight) event identity on
// one channel.
type FingerprintRecord struct {
	Fingerprint string
	Channel     string
	Status      string
	ExternalID  string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

type FingerprintRepository struct {
	db    *pgxpool.Pool
	clock clock.Clock
}

func NewFingerprintRepository(db *pgxpool.Pool, clock clock.Clock) *FingerprintRepository {
	return &FingerprintRepository{db: db, clock: clock}
}

// SetIfAbsent claims a fingerprint for distribution. It returns true when
// this caller won the claim; false when a live record already exists. An
// expired leftover row is reclaimed in place.
func (r *FingerprintRepository) SetIfAbsent(ctx context.Context, fingerprint, channelName string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO distribution_fingerprints (fingerprint, channel, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (fingerprint) DO UPDATE
			SET status = EXCLUDED.status,
			    external_id = '',
			    created_at = EXCLUDED.created_at,
			    expires_at = EXCLUDED.expires_at
			WHERE distribution_fingerprints.expires_at <= $4`,
		fingerprint, channelName, StatusPending, r.clock.Now(), expiresAt,
	)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to claim fingerprint", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Get returns the live record for a fingerprint, or KindNotFound.
func (r *FingerprintRepository) Get(ctx context.Context, fingerprint string) (*FingerprintRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT fingerprint, channel, status, external_id, created_at, expires_at
		FROM distribution_fingerprints
		WHERE fingerprint = $1 AND expires_at > $2`,
		fingerprint, r.clock.Now(),
	)

	var rec FingerprintRecord
	err := row.Scan(&rec.Fingerprint, &rec.Channel, &rec.Status, &rec.ExternalID, &rec.CreatedAt, &rec.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "fingerprint not found", err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load fingerprint", err)
	}
	return &rec, nil
}

// MarkCompleted records a successful distribution with its external id and
// extends the record to the long retention window.
func (r *FingerprintRepository) MarkCompleted(ctx context.Context, fingerprint, externalID string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE distribution_fingerprints
		SET status = $2, external_id = $3, expires_at = $4
		WHERE fingerprint = $1`,
		fingerprint, StatusCompleted, externalID, expiresAt,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to complete fingerprint", err)
	}
	return nil
}

// Release drops a pending claim after a failed attempt so the next request
// may retry the channel.
func (r *FingerprintRepository) Release(ctx context.Context, fingerprint string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM distribution_fingerprints
		WHERE fingerprint = $1 AND status = $2`,
		fingerprint, StatusPending,
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to release fingerprint", err)
	}
	return nil
}

// DeleteExpired removes rows past their retention window.
func (r *FingerprintRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM distribution_fingerprints
		WHERE expires_at <= $1`,
		r.clock.Now(),
	)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to delete expired fingerprints", err)
	}
	return tag.RowsAffected(), nil
}
