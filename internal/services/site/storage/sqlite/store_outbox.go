package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/northlinerail/website/internal/services/site/outbox"
)

// leaseExpiredError is recorded when a lease lapses before the send completed.
const leaseExpiredError = "lease expired before delivery completed"

const outboxColumns = `
	id,
	inquiry_id,
	recipients_json,
	reply_to,
	subject,
	body,
	status,
	attempt_count,
	next_attempt_at,
	lease_owner,
	lease_expires_at,
	last_error,
	provider_id,
	created_at,
	updated_at`

// LeaseOutbox leases due pending messages, and messages whose lease expired,
// to owner. Reclaiming an expired lease counts as a spent attempt so a message
// whose send never completes still reaches the dispatcher's attempt limit.
func (s *Store) LeaseOutbox(ctx context.Context, owner string, limit int, now time.Time, leaseTTL time.Duration) ([]outbox.Message, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("lease owner is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	if leaseTTL <= 0 {
		return nil, fmt.Errorf("lease ttl must be greater than zero")
	}
	if now.IsZero() {
		now = time.Now()
	}
	nowMillis := toMillis(now)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("start lease transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx, `
SELECT id
FROM mail_outbox
WHERE (status = ? AND next_attempt_at <= ?)
   OR (status = ? AND lease_expires_at IS NOT NULL AND lease_expires_at <= ?)
ORDER BY next_attempt_at ASC, created_at ASC, id ASC
LIMIT ?
`, outbox.StatusPending, nowMillis, outbox.StatusLeased, nowMillis, limit)
	if err != nil {
		return nil, fmt.Errorf("select lease candidates: %w", err)
	}
	var candidates []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan lease candidate: %w", err)
		}
		candidates = append(candidates, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate lease candidates: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("close lease candidates: %w", err)
	}

	leased := make([]outbox.Message, 0, len(candidates))
	for _, id := range candidates {
		result, err := tx.ExecContext(ctx, `
UPDATE mail_outbox
SET status = ?, lease_owner = ?, lease_expires_at = ?, updated_at = ?,
	attempt_count = attempt_count + CASE WHEN status = ? THEN 1 ELSE 0 END,
	last_error = CASE WHEN status = ? THEN ? ELSE last_error END
WHERE id = ?
AND (
	(status = ? AND next_attempt_at <= ?)
	OR (status = ? AND lease_expires_at IS NOT NULL AND lease_expires_at <= ?)
)
`,
			outbox.StatusLeased, owner, toMillis(now.Add(leaseTTL)), nowMillis,
			outbox.StatusLeased,
			outbox.StatusLeased, leaseExpiredError,
			id,
			outbox.StatusPending, nowMillis,
			outbox.StatusLeased, nowMillis,
		)
		if err != nil {
			return nil, fmt.Errorf("lease outbox message %s: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("lease rows affected for %s: %w", id, err)
		}
		if affected == 0 {
			continue
		}
		msg, err := scanOutbox(tx.QueryRowContext(ctx, `SELECT `+outboxColumns+` FROM mail_outbox WHERE id = ?`, id).Scan)
		if err != nil {
			return nil, fmt.Errorf("scan leased outbox message %s: %w", id, err)
		}
		leased = append(leased, msg)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit lease transaction: %w", err)
	}
	return leased, nil
}

// MarkOutboxSent completes a leased message.
func (s *Store) MarkOutboxSent(ctx context.Context, id, owner, providerID string, sentAt time.Time) error {
	if sentAt.IsZero() {
		sentAt = time.Now()
	}
	return s.finishLease(ctx, "mark outbox sent", id, owner, `
UPDATE mail_outbox
SET status = ?, lease_owner = '', lease_expires_at = NULL, last_error = '',
	provider_id = ?, processed_at = ?, updated_at = ?
WHERE id = ? AND status = ? AND lease_owner = ?
`, outbox.StatusSent, strings.TrimSpace(providerID), toMillis(sentAt), toMillis(sentAt))
}

// MarkOutboxRetry releases a leased message for another attempt at
// nextAttemptAt.
func (s *Store) MarkOutboxRetry(ctx context.Context, id, owner string, nextAttemptAt time.Time, lastError string) error {
	if nextAttemptAt.IsZero() {
		return fmt.Errorf("next attempt at is required")
	}
	return s.finishLease(ctx, "mark outbox retry", id, owner, `
UPDATE mail_outbox
SET status = ?, attempt_count = attempt_count + 1, next_attempt_at = ?,
	lease_owner = '', lease_expires_at = NULL, last_error = ?, updated_at = ?
WHERE id = ? AND status = ? AND lease_owner = ?
`, outbox.StatusPending, toMillis(nextAttemptAt), strings.TrimSpace(lastError), toMillis(time.Now()))
}

// MarkOutboxFailed stops retrying a leased message.
func (s *Store) MarkOutboxFailed(ctx context.Context, id, owner, lastError string, failedAt time.Time) error {
	if failedAt.IsZero() {
		failedAt = time.Now()
	}
	return s.finishLease(ctx, "mark outbox failed", id, owner, `
UPDATE mail_outbox
SET status = ?, attempt_count = attempt_count + 1, lease_owner = '',
	lease_expires_at = NULL, last_error = ?, processed_at = ?, updated_at = ?
WHERE id = ? AND status = ? AND lease_owner = ?
`, outbox.StatusFailed, strings.TrimSpace(lastError), toMillis(failedAt), toMillis(failedAt))
}

// finishLease runs a lease-completing update. args are the SET arguments; the
// id, leased status, and owner guards are appended.
func (s *Store) finishLease(ctx context.Context, op, id, owner, query string, args ...any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	owner = strings.TrimSpace(owner)
	if id == "" {
		return fmt.Errorf("outbox id is required")
	}
	if owner == "" {
		return fmt.Errorf("lease owner is required")
	}
	args = append(args, id, outbox.StatusLeased, owner)
	result, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return outbox.ErrNotFound
	}
	return nil
}

// GetOutboxMessage returns one outbox message by id.
func (s *Store) GetOutboxMessage(ctx context.Context, id string) (outbox.Message, error) {
	if err := s.ready(ctx); err != nil {
		return outbox.Message{}, err
	}
	msg, err := scanOutbox(s.sqlDB.QueryRowContext(ctx, `SELECT `+outboxColumns+` FROM mail_outbox WHERE id = ?`, strings.TrimSpace(id)).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return outbox.Message{}, outbox.ErrNotFound
	}
	if err != nil {
		return outbox.Message{}, fmt.Errorf("get outbox message: %w", err)
	}
	return msg, nil
}

type outboxScanner func(dest ...any) error

func scanOutbox(scan outboxScanner) (outbox.Message, error) {
	var (
		msg            outbox.Message
		recipients     string
		status         string
		nextAttemptAt  int64
		leaseExpiresAt sql.NullInt64
		createdAt      int64
		updatedAt      int64
	)
	if err := scan(
		&msg.ID,
		&msg.InquiryID,
		&recipients,
		&msg.ReplyTo,
		&msg.Subject,
		&msg.Body,
		&status,
		&msg.AttemptCount,
		&nextAttemptAt,
		&msg.LeaseOwner,
		&leaseExpiresAt,
		&msg.LastError,
		&msg.ProviderID,
		&createdAt,
		&updatedAt,
	); err != nil {
		return outbox.Message{}, err
	}
	if err := json.Unmarshal([]byte(recipients), &msg.Recipients); err != nil {
		return outbox.Message{}, fmt.Errorf("decode recipients: %w", err)
	}
	msg.Status = outbox.Status(status)
	msg.NextAttemptAt = fromMillis(nextAttemptAt)
	if leaseExpiresAt.Valid {
		msg.LeaseExpiresAt = fromMillis(leaseExpiresAt.Int64)
	}
	msg.CreatedAt = fromMillis(createdAt)
	msg.UpdatedAt = fromMillis(updatedAt)
	return msg, nil
}
