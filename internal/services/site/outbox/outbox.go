// Package outbox delivers queued notification email.
package outbox

import (
	"context"
	"errors"
	"time"
)

// Status is the delivery state of one outbox message.
type Status string

const (
	StatusPending Status = "pending"
	StatusLeased  Status = "leased"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// ErrNotFound reports a missing or no-longer-leased outbox message.
var ErrNotFound = errors.New("outbox message not found")

// Message is one queued email.
type Message struct {
	ID             string
	InquiryID      string
	Recipients     []string
	ReplyTo        string
	Subject        string
	Body           string
	Status         Status
	AttemptCount   int
	NextAttemptAt  time.Time
	LeaseOwner     string
	LeaseExpiresAt time.Time
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Store persists outbox state transitions.
type Store interface {
	LeaseOutbox(ctx context.Context, owner string, limit int, now time.Time, leaseTTL time.Duration) ([]Message, error)
	MarkOutboxSent(ctx context.Context, id, owner, providerID string, sentAt time.Time) error
	MarkOutboxRetry(ctx context.Context, id, owner string, nextAttemptAt time.Time, lastError string) error
	MarkOutboxFailed(ctx context.Context, id, owner, lastError string, failedAt time.Time) error
}
