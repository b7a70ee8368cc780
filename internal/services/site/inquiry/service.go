package inquiry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/northlinerail/website/internal/services/site/outbox"
)

// Store persists an inquiry together with its notification email.
type Store interface {
	CreateInquiry(ctx context.Context, inquiry Inquiry, notification outbox.Message) error
}

// Service accepts submissions.
type Service struct {
	store      Store
	recipients []string
	siteName   string
	now        func() time.Time
	newID      func() string
}

// ServiceConfig configures NewService.
type ServiceConfig struct {
	// Recipients receive the notification email for every inquiry.
	Recipients []string
	SiteName   string
	Now        func() time.Time
}

// NewService builds a submission service.
func NewService(store Store, cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:      store,
		recipients: cfg.Recipients,
		siteName:   cfg.SiteName,
		now:        now,
		newID:      uuid.NewString,
	}
}

// Submit validates sub and stores it with a queued notification. Validation
// failures return a *ValidationError.
func (s *Service) Submit(ctx context.Context, sub Submission, remoteAddr string) (Inquiry, error) {
	if s == nil || s.store == nil {
		return Inquiry{}, fmt.Errorf("inquiry service is not configured")
	}
	clean, err := Validate(sub)
	if err != nil {
		return Inquiry{}, err
	}
	kind, _ := ParseKind(clean.Kind)
	now := s.now().UTC()
	inq := Inquiry{
		ID:         s.newID(),
		Kind:       kind,
		Name:       clean.Name,
		Email:      clean.Email,
		Phone:      clean.Phone,
		Company:    clean.Company,
		PartNumber: clean.PartNumber,
		Message:    clean.Message,
		RemoteAddr: strings.TrimSpace(remoteAddr),
		CreatedAt:  now,
	}
	notification := outbox.Message{
		ID:            s.newID(),
		InquiryID:     inq.ID,
		Recipients:    append([]string(nil), s.recipients...),
		ReplyTo:       inq.Email,
		Subject:       Subject(s.siteName, inq),
		Body:          Body(inq),
		Status:        outbox.StatusPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateInquiry(ctx, inq, notification); err != nil {
		return Inquiry{}, fmt.Errorf("store inquiry: %w", err)
	}
	return inq, nil
}

// Subject formats the notification subject line.
func Subject(siteName string, inq Inquiry) string {
	label := map[Kind]string{
		KindGeneral: "General inquiry",
		KindQuote:   "Parts quote request",
		KindService: "Service request",
	}[inq.Kind]
	subject := label + " from " + inq.Name
	if inq.Company != "" {
		subject += " (" + inq.Company + ")"
	}
	if siteName != "" {
		subject = "[" + siteName + "] " + subject
	}
	return subject
}

// Body formats the notification body.
func Body(inq Inquiry) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	line("Inquiry", inq.ID)
	line("Type", string(inq.Kind))
	line("Received", inq.CreatedAt.UTC().Format(time.RFC1123))
	line("Name", inq.Name)
	line("Email", inq.Email)
	line("Phone", inq.Phone)
	line("Company", inq.Company)
	line("Part or unit", inq.PartNumber)
	b.WriteString("\n")
	b.WriteString(inq.Message)
	b.WriteString("\n")
	return b.String()
}
