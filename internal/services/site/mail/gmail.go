package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/northlinerail/website/internal/platform/timeouts"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// GmailSendScope is the only scope the site requests.
	GmailSendScope = "https://www.googleapis.com/auth/gmail.send"

	defaultGmailAPI = "https://gmail.googleapis.com"
	sendPath        = "/gmail/v1/users/me/messages/send"
)

// ErrPermanent marks delivery failures that retrying cannot fix.
var ErrPermanent = errors.New("mail: permanent delivery failure")

// GmailConfig configures the Gmail API sender.
type GmailConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	// Sender is the From address; it must belong to the authorized account.
	Sender string
	// APIBaseURL and TokenURL override Google endpoints.
	APIBaseURL string
	TokenURL   string
	// HTTPClient is the transport used for both token refresh and API calls.
	HTTPClient *http.Client
	Timeout    time.Duration
	Now        func() time.Time
}

// Enabled reports whether credentials are configured.
func (c GmailConfig) Enabled() bool {
	return strings.TrimSpace(c.ClientID) != "" &&
		strings.TrimSpace(c.ClientSecret) != "" &&
		strings.TrimSpace(c.RefreshToken) != ""
}

// OAuthConfig returns the OAuth2 client configuration for the Gmail send scope.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{GmailSendScope},
	}
}

// Gmail delivers messages through users.messages.send.
type Gmail struct {
	client *http.Client
	base   string
	sender string
	now    func() time.Time
}

// NewGmail builds a sender that refreshes access tokens from the refresh token.
func NewGmail(ctx context.Context, cfg GmailConfig) (*Gmail, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("gmail client id, client secret, and refresh token are required")
	}
	if strings.TrimSpace(cfg.Sender) == "" {
		return nil, fmt.Errorf("gmail sender address is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.MailSend
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if base == "" {
		base = defaultGmailAPI
	}

	conf := OAuthConfig(cfg.ClientID, cfg.ClientSecret, "")
	if cfg.TokenURL != "" {
		conf.Endpoint.TokenURL = cfg.TokenURL
	}
	transport := cfg.HTTPClient
	if transport == nil {
		transport = &http.Client{Timeout: timeout}
	}
	// Token refresh reads the transport from the context.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, transport)
	source := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	client := oauth2.NewClient(ctx, source)
	client.Timeout = timeout

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Gmail{client: client, base: base, sender: cfg.Sender, now: now}, nil
}

type sendRequest struct {
	Raw string `json:"raw"`
}

type sendResponse struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
}

// Send delivers msg and returns the Gmail message id.
func (g *Gmail) Send(ctx context.Context, msg Message) (string, error) {
	if msg.From == "" {
		msg.From = g.sender
	}
	raw, err := msg.RFC2822(g.now())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPermanent, err)
	}
	payload, err := json.Marshal(sendRequest{Raw: base64.RawURLEncoding.EncodeToString(raw)})
	if err != nil {
		return "", fmt.Errorf("encode gmail request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base+sendPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build gmail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
			return "", fmt.Errorf("%w: refresh token rejected: %w", ErrPermanent, err)
		}
		return "", fmt.Errorf("send gmail message: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("gmail send status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if permanentStatus(resp.StatusCode) {
			return "", fmt.Errorf("%w: %w", ErrPermanent, err)
		}
		return "", err
	}
	var decoded sendResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode gmail response: %w", err)
	}
	return decoded.ID, nil
}

func permanentStatus(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusRequestEntityTooLarge:
		return true
	default:
		return false
	}
}
