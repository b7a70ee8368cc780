package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/northlinerail/website/internal/services/site/inquiry"
	"github.com/northlinerail/website/internal/services/site/outbox"
	"github.com/northlinerail/website/internal/services/site/storage"
)

const maxListLimit = 500

// CreateInquiry stores inq and its notification in one transaction.
func (s *Store) CreateInquiry(ctx context.Context, inq inquiry.Inquiry, notification outbox.Message) (err error) {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(inq.ID) == "" {
		return fmt.Errorf("inquiry id is required")
	}
	if strings.TrimSpace(notification.ID) == "" {
		return fmt.Errorf("outbox id is required")
	}
	if notification.InquiryID != inq.ID {
		return fmt.Errorf("outbox message %s does not belong to inquiry %s", notification.ID, inq.ID)
	}
	recipients, err := json.Marshal(notification.Recipients)
	if err != nil {
		return fmt.Errorf("encode recipients: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin inquiry transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
INSERT INTO inquiries (id, kind, name, email, phone, company, part_number, message, remote_addr, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		inq.ID,
		string(inq.Kind),
		inq.Name,
		inq.Email,
		inq.Phone,
		inq.Company,
		inq.PartNumber,
		inq.Message,
		inq.RemoteAddr,
		toMillis(inq.CreatedAt),
	); err != nil {
		return fmt.Errorf("insert inquiry: %w", err)
	}

	status := notification.Status
	if status == "" {
		status = outbox.StatusPending
	}
	createdAt := notification.CreatedAt
	if createdAt.IsZero() {
		createdAt = inq.CreatedAt
	}
	nextAttemptAt := notification.NextAttemptAt
	if nextAttemptAt.IsZero() {
		nextAttemptAt = createdAt
	}
	if _, err = tx.ExecContext(ctx, `
INSERT INTO mail_outbox (
	id, inquiry_id, recipients_json, reply_to, subject, body, status,
	attempt_count, next_attempt_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
`,
		notification.ID,
		inq.ID,
		string(recipients),
		notification.ReplyTo,
		notification.Subject,
		notification.Body,
		string(status),
		toMillis(nextAttemptAt),
		toMillis(createdAt),
		toMillis(createdAt),
	); err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit inquiry transaction: %w", err)
	}
	return nil
}

// ListInquiries returns the newest inquiries with their latest mail status.
func (s *Store) ListInquiries(ctx context.Context, limit int) ([]storage.InquirySummary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	limit = min(limit, maxListLimit)

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	i.id,
	i.kind,
	i.name,
	i.email,
	i.phone,
	i.company,
	i.part_number,
	i.message,
	i.remote_addr,
	i.created_at,
	COALESCE(o.status, ''),
	COALESCE(o.last_error, '')
FROM inquiries i
LEFT JOIN mail_outbox o ON o.inquiry_id = i.id
ORDER BY i.created_at DESC, i.id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	out := make([]storage.InquirySummary, 0, limit)
	for rows.Next() {
		var (
			summary   storage.InquirySummary
			kind      string
			status    string
			createdAt int64
		)
		inq := &summary.Inquiry
		if err := rows.Scan(
			&inq.ID,
			&kind,
			&inq.Name,
			&inq.Email,
			&inq.Phone,
			&inq.Company,
			&inq.PartNumber,
			&inq.Message,
			&inq.RemoteAddr,
			&createdAt,
			&status,
			&summary.MailError,
		); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		inq.Kind = inquiry.Kind(kind)
		inq.CreatedAt = fromMillis(createdAt)
		summary.MailStatus = outbox.Status(status)
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}
	return out, nil
}

// GetInquiry returns one inquiry by id.
func (s *Store) GetInquiry(ctx context.Context, id string) (inquiry.Inquiry, error) {
	if err := s.ready(ctx); err != nil {
		return inquiry.Inquiry{}, err
	}
	var (
		inq       inquiry.Inquiry
		kind      string
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT id, kind, name, email, phone, company, part_number, message, remote_addr, created_at
FROM inquiries
WHERE id = ?
`, strings.TrimSpace(id)).Scan(
		&inq.ID, &kind, &inq.Name, &inq.Email, &inq.Phone, &inq.Company, &inq.PartNumber, &inq.Message, &inq.RemoteAddr, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return inquiry.Inquiry{}, storage.ErrNotFound
	}
	if err != nil {
		return inquiry.Inquiry{}, fmt.Errorf("get inquiry: %w", err)
	}
	inq.Kind = inquiry.Kind(kind)
	inq.CreatedAt = fromMillis(createdAt)
	return inq, nil
}
