// Package inquiries serves the contact page and accepts contact form
// submissions.
package inquiries

import (
	"context"
	"errors"
	"net/http"

	"github.com/northlinerail/website/internal/services/site/inquiry"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/platform/requestmeta"
	"github.com/northlinerail/website/internal/services/site/routepath"
)

var errMissingSubmitter = errors.New("inquiries module requires a submitter")

// Submitter records a contact form submission.
type Submitter interface {
	Submit(ctx context.Context, sub inquiry.Submission, remoteAddr string) (inquiry.Inquiry, error)
}

// Module provides the contact page and contact API routes.
type Module struct {
	base      module.Base
	submitter Submitter
	policy    requestmeta.SchemePolicy
}

// New returns an inquiries module. policy decides which origins may post the
// form.
func New(base module.Base, submitter Submitter, policy requestmeta.SchemePolicy) Module {
	return Module{base: base, submitter: submitter, policy: policy}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "inquiries" }

// Mount wires contact route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.submitter == nil {
		return module.Mount{}, errMissingSubmitter
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.base, m.submitter, m.policy))
	return module.Mount{
		Paths:   []string{routepath.Contact, routepath.APIContact},
		Handler: mux,
	}, nil
}
