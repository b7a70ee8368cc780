// Package storage declares the persistence contracts of the site service.
package storage

import (
	"context"
	"errors"

	"github.com/northlinerail/website/internal/services/site/inquiry"
	"github.com/northlinerail/website/internal/services/site/outbox"
)

// ErrNotFound reports a missing record.
var ErrNotFound = errors.New("record not found")

// InquirySummary pairs an inquiry with the state of its notification email.
type InquirySummary struct {
	Inquiry    inquiry.Inquiry
	MailStatus outbox.Status
	MailError  string
}

// InquiryReader lists stored inquiries, newest first.
type InquiryReader interface {
	ListInquiries(ctx context.Context, limit int) ([]InquirySummary, error)
}

// Store is the full site persistence surface.
type Store interface {
	inquiry.Store
	InquiryReader
	outbox.Store
	Close() error
}
