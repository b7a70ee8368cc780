// Package inquiry validates and records contact form submissions.
package inquiry

import (
	"errors"
	"net/mail"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind classifies an inquiry.
type Kind string

const (
	KindGeneral Kind = "general"
	KindQuote   Kind = "quote"
	KindService Kind = "service"
)

// Kinds returns the selectable kinds in display order.
func Kinds() []Kind {
	return []Kind{KindGeneral, KindQuote, KindService}
}

// ParseKind reports whether raw names a known kind.
func ParseKind(raw string) (Kind, bool) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Kinds() {
		if kind == known {
			return kind, true
		}
	}
	return "", false
}

// Field length limits in characters.
const (
	MaxNameLength       = 120
	MaxEmailLength      = 254
	MaxPhoneLength      = 40
	MaxCompanyLength    = 160
	MaxPartNumberLength = 80
	MaxMessageLength    = 5000
)

// Submission is raw form input.
type Submission struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	PartNumber string `json:"part_number"`
	Message    string `json:"message"`
}

// Inquiry is a validated, stored submission.
type Inquiry struct {
	ID         string
	Kind       Kind
	Name       string
	Email      string
	Phone      string
	Company    string
	PartNumber string
	Message    string
	RemoteAddr string
	CreatedAt  time.Time
}

// Field validation codes. Each maps to the form.error.<code> message.
const (
	CodeRequired = "required"
	CodeTooLong  = "too_long"
	CodeEmail    = "email"
	CodeKind     = "kind"
)

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("invalid inquiry")

// ValidationError lists per-field failures.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid inquiry: " + strings.Join(parts, ", ")
}

// Is matches ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Normalize trims whitespace and canonicalizes the kind and email.
func (s Submission) Normalize() Submission {
	s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
	if s.Kind == "" {
		s.Kind = string(KindGeneral)
	}
	s.Name = collapseSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Company = collapseSpace(s.Company)
	s.PartNumber = strings.TrimSpace(s.PartNumber)
	s.Message = strings.TrimSpace(strings.ReplaceAll(s.Message, "\r\n", "\n"))
	return s
}

// Validate normalizes s and returns a ValidationError describing every
// failing field.
func Validate(s Submission) (Submission, error) {
	s = s.Normalize()
	fields := map[string]string{}

	if _, ok := ParseKind(s.Kind); !ok {
		fields["kind"] = CodeKind
	}
	checkText(fields, "name", s.Name, true, MaxNameLength)
	checkText(fields, "message", s.Message, true, MaxMessageLength)
	checkText(fields, "phone", s.Phone, false, MaxPhoneLength)
	checkText(fields, "company", s.Company, false, MaxCompanyLength)
	checkText(fields, "part_number", s.PartNumber, false, MaxPartNumberLength)

	switch {
	case s.Email == "":
		fields["email"] = CodeRequired
	case utf8.RuneCountInString(s.Email) > MaxEmailLength:
		fields["email"] = CodeTooLong
	case !validEmail(s.Email):
		fields["email"] = CodeEmail
	}

	if len(fields) > 0 {
		return s, &ValidationError{Fields: fields}
	}
	return s, nil
}

func checkText(fields map[string]string, name, value string, required bool, limit int) {
	switch {
	case value == "" && required:
		fields[name] = CodeRequired
	case utf8.RuneCountInString(value) > limit:
		fields[name] = CodeTooLong
	}
}

// validEmail accepts a bare addr-spec with a dotted domain.
func validEmail(raw string) bool {
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(raw, "@")
	if at <= 0 {
		return false
	}
	domain := raw[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func collapseSpace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
