// Package mail composes notification email and delivers it through the
// Gmail API.
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is one plain-text email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

var (
	// ErrNoRecipients reports a message without valid recipients.
	ErrNoRecipients = errors.New("mail: at least one recipient is required")
	// ErrInvalidAddress reports an unparsable address.
	ErrInvalidAddress = errors.New("mail: invalid address")
)

// Validate checks addresses and required fields.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	for _, addr := range m.To {
		if _, err := mail.ParseAddress(addr); err != nil {
			return fmt.Errorf("%w: to %q", ErrInvalidAddress, addr)
		}
	}
	if strings.TrimSpace(m.From) != "" {
		if _, err := mail.ParseAddress(m.From); err != nil {
			return fmt.Errorf("%w: from %q", ErrInvalidAddress, m.From)
		}
	}
	if strings.TrimSpace(m.ReplyTo) != "" {
		if _, err := mail.ParseAddress(m.ReplyTo); err != nil {
			return fmt.Errorf("%w: reply-to %q", ErrInvalidAddress, m.ReplyTo)
		}
	}
	return nil
}

// RFC2822 renders the message as an RFC 2822 document with a quoted-printable
// UTF-8 body.
func (m Message) RFC2822(date time.Time) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	header := func(name, value string) {
		if value == "" {
			return
		}
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(stripNewlines(value))
		buf.WriteString("\r\n")
	}
	header("From", m.From)
	header("To", strings.Join(m.To, ", "))
	header("Reply-To", m.ReplyTo)
	header("Subject", mime.QEncoding.Encode("utf-8", stripNewlines(m.Subject)))
	header("Date", date.Format(time.RFC1123Z))
	header("Message-ID", "<"+uuid.NewString()+"@northlinerail.mail>")
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(strings.ReplaceAll(m.Body, "\n", "\r\n"))); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return buf.Bytes(), nil
}

func stripNewlines(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
}
