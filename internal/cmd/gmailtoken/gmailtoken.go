// Package gmailtoken runs the interactive OAuth flow that issues the Gmail
// refresh token used by the site mailer.
package gmailtoken

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	entrypoint "github.com/northlinerail/website/internal/platform/cmd"
	"github.com/northlinerail/website/internal/platform/config"
	"github.com/northlinerail/website/internal/platform/timeouts"
	"github.com/northlinerail/website/internal/services/site/mail"
	"golang.org/x/oauth2"
)

const defaultRedirectURL = "http://127.0.0.1"

// Config holds gmail-token command configuration.
type Config struct {
	ClientID     string `env:"NORTHLINE_GMAIL_CLIENT_ID"`
	ClientSecret string `env:"NORTHLINE_GMAIL_CLIENT_SECRET"`
	RedirectURL  string `env:"NORTHLINE_GMAIL_REDIRECT_URL" envDefault:"http://127.0.0.1"`

	// AuthURL and TokenURL override the Google endpoints.
	AuthURL  string
	TokenURL string
}

// ParseConfig parses the process environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return ParseConfigFrom(fs, args, config.Environ())
}

// ParseConfigFrom parses environment and flags into a Config.
func ParseConfigFrom(fs *flag.FlagSet, args []string, environment map[string]string) (Config, error) {
	var cfg Config
	if err := config.ParseEnvFrom(&cfg, environment); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.ClientID, "client-id", cfg.ClientID, "Google OAuth client id")
	fs.StringVar(&cfg.ClientSecret, "client-secret", cfg.ClientSecret, "Google OAuth client secret")
	fs.StringVar(&cfg.RedirectURL, "redirect-url", cfg.RedirectURL, "Redirect URL registered for the OAuth client")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return Config{}, errors.New("client id and client secret are required (NORTHLINE_GMAIL_CLIENT_ID, NORTHLINE_GMAIL_CLIENT_SECRET)")
	}
	return cfg, nil
}

// Run prints the consent URL, reads the authorization code from in, and
// writes the resulting credentials to out as environment lines.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	redirect := strings.TrimSpace(cfg.RedirectURL)
	if redirect == "" {
		redirect = defaultRedirectURL
	}
	conf := mail.OAuthConfig(cfg.ClientID, cfg.ClientSecret, redirect)
	if cfg.AuthURL != "" {
		conf.Endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		conf.Endpoint.TokenURL = cfg.TokenURL
	}

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	consentURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(out, "Open this URL in a browser signed in as the sending account:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, consentURL)
	fmt.Fprintln(out)
	fmt.Fprint(out, "Paste the authorization code or the full redirect URL: ")

	line, err := readLine(in)
	if err != nil {
		return err
	}
	code, err := ParseCode(line, state)
	if err != nil {
		return err
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, timeouts.OAuthExchange)
	defer cancel()
	token, err := conf.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return errors.New("no refresh token returned; revoke the app's access in the Google account and run again")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Add these to the site environment:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "NORTHLINE_GMAIL_CLIENT_ID=%s\n", cfg.ClientID)
	fmt.Fprintf(out, "NORTHLINE_GMAIL_CLIENT_SECRET=%s\n", cfg.ClientSecret)
	fmt.Fprintf(out, "NORTHLINE_GMAIL_REFRESH_TOKEN=%s\n", token.RefreshToken)
	return nil
}

func readLine(in io.Reader) (string, error) {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read authorization code: %w", err)
		}
		return "", errors.New("read authorization code: no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// ParseCode extracts the authorization code from raw, which is either the bare
// code or the redirect URL the browser landed on. A state parameter in the
// redirect URL must match state.
func ParseCode(raw, state string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("authorization code is required")
	}
	if !strings.Contains(raw, "code=") && !strings.Contains(raw, "error=") {
		return raw, nil
	}
	query := raw
	if idx := strings.Index(raw, "?"); idx >= 0 {
		query = raw[idx+1:]
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return "", fmt.Errorf("parse redirect url: %w", err)
	}
	if reason := values.Get("error"); reason != "" {
		return "", fmt.Errorf("authorization denied: %s", reason)
	}
	if got := values.Get("state"); got != "" && got != state {
		return "", errors.New("redirect state does not match this session")
	}
	code := values.Get("code")
	if code == "" {
		return "", errors.New("redirect url has no code parameter")
	}
	return code, nil
}
