// Package site parses site command flags and launches the website process.
package site

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/northlinerail/website/internal/platform/assets/imagecdn"
	"github.com/northlinerail/website/internal/platform/branding"
	entrypoint "github.com/northlinerail/website/internal/platform/cmd"
	"github.com/northlinerail/website/internal/platform/config"
	"github.com/northlinerail/website/internal/platform/logging"
	"github.com/northlinerail/website/internal/platform/seo"
	sitesvc "github.com/northlinerail/website/internal/services/site"
	siteapp "github.com/northlinerail/website/internal/services/site/app"
	"github.com/northlinerail/website/internal/services/site/catalog"
	"github.com/northlinerail/website/internal/services/site/inquiry"
	"github.com/northlinerail/website/internal/services/site/mail"
	"github.com/northlinerail/website/internal/services/site/outbox"
	"github.com/northlinerail/website/internal/services/site/platform/requestmeta"
	sitesqlite "github.com/northlinerail/website/internal/services/site/storage/sqlite"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Site URL variables in precedence order. NEXT_PUBLIC_SITE_URL is honored so
// existing deployment environments keep working.
var siteURLKeys = []string{"NORTHLINE_SITE_URL", "NEXT_PUBLIC_SITE_URL"}

// Config holds site command configuration.
type Config struct {
	HTTPAddr            string        `env:"NORTHLINE_HTTP_ADDR" envDefault:":8080"`
	SiteURL             string
	ImageCDNURL         string        `env:"NORTHLINE_IMAGE_CDN_URL"`
	DBPath              string        `env:"NORTHLINE_DB_PATH" envDefault:"data/site.db"`
	LogLevel            string        `env:"NORTHLINE_LOG_LEVEL" envDefault:"info"`
	LogDevelopment      bool          `env:"NORTHLINE_LOG_DEVELOPMENT"`
	AdminUser           string        `env:"NORTHLINE_ADMIN_USER"`
	AdminPassword       string        `env:"NORTHLINE_ADMIN_PASSWORD"`
	InquiryRecipients   []string      `env:"NORTHLINE_INQUIRY_RECIPIENTS" envSeparator:","`
	PublicOrigins       []string      `env:"NORTHLINE_PUBLIC_ORIGINS" envSeparator:","`
	TrustForwardedProto bool          `env:"NORTHLINE_TRUST_FORWARDED_PROTO"`
	GmailClientID       string        `env:"NORTHLINE_GMAIL_CLIENT_ID"`
	GmailClientSecret   string        `env:"NORTHLINE_GMAIL_CLIENT_SECRET"`
	GmailRefreshToken   string        `env:"NORTHLINE_GMAIL_REFRESH_TOKEN"`
	GmailSender         string        `env:"NORTHLINE_GMAIL_SENDER"`
	MailPollInterval    time.Duration `env:"NORTHLINE_MAIL_POLL_INTERVAL" envDefault:"5s"`
	MailLeaseTTL        time.Duration `env:"NORTHLINE_MAIL_LEASE_TTL" envDefault:"1m"`
	MailMaxAttempts     int           `env:"NORTHLINE_MAIL_MAX_ATTEMPTS" envDefault:"8"`
	MailRetryBackoff    time.Duration `env:"NORTHLINE_MAIL_RETRY_BACKOFF" envDefault:"30s"`
	MailRetryMaxDelay   time.Duration `env:"NORTHLINE_MAIL_RETRY_MAX_DELAY" envDefault:"1h"`
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
	cfg.SiteURL = SiteURL(environment)
	if len(cfg.InquiryRecipients) == 0 {
		cfg.InquiryRecipients = []string{branding.SalesEmail}
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.SiteURL, "site-url", cfg.SiteURL, "Public base URL used for canonical links, robots, and the sitemap")
	fs.StringVar(&cfg.ImageCDNURL, "image-cdn-url", cfg.ImageCDNURL, "Image CDN base URL; empty serves images through /_image")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The site SQLite database path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, or error")
	fs.BoolVar(&cfg.LogDevelopment, "log-development", cfg.LogDevelopment, "Use human-readable development logging")
	fs.DurationVar(&cfg.MailPollInterval, "mail-poll-interval", cfg.MailPollInterval, "Mail outbox poll interval")
	fs.DurationVar(&cfg.MailLeaseTTL, "mail-lease-ttl", cfg.MailLeaseTTL, "Mail outbox lease duration")
	fs.IntVar(&cfg.MailMaxAttempts, "mail-max-attempts", cfg.MailMaxAttempts, "Maximum delivery attempts before a message is marked failed")
	fs.DurationVar(&cfg.MailRetryBackoff, "mail-retry-backoff", cfg.MailRetryBackoff, "Base mail retry backoff delay")
	fs.DurationVar(&cfg.MailRetryMaxDelay, "mail-retry-max-delay", cfg.MailRetryMaxDelay, "Maximum mail retry delay")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	if (cfg.AdminUser == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("NORTHLINE_ADMIN_USER and NORTHLINE_ADMIN_PASSWORD must be set together")
	}
	return cfg, nil
}

// SiteURL resolves the public base URL from environment, falling back to
// the production domain.
func SiteURL(environment map[string]string) string {
	if value, ok := config.FirstNonEmpty(environment, siteURLKeys...); ok {
		return strings.TrimRight(value, "/")
	}
	return branding.DefaultSiteURL
}

// Gmail returns the mail sender configuration.
func (c Config) Gmail() mail.GmailConfig {
	return mail.GmailConfig{
		ClientID:     c.GmailClientID,
		ClientSecret: c.GmailClientSecret,
		RefreshToken: c.GmailRefreshToken,
		Sender:       c.GmailSender,
	}
}

// Outbox returns the dispatcher configuration.
func (c Config) Outbox() outbox.Config {
	owner := "site"
	if host, err := os.Hostname(); err == nil && host != "" {
		owner = "site@" + host
	}
	return outbox.Config{
		Owner:         owner,
		PollInterval:  c.MailPollInterval,
		LeaseTTL:      c.MailLeaseTTL,
		MaxAttempts:   c.MailMaxAttempts,
		RetryBackoff:  c.MailRetryBackoff,
		RetryMaxDelay: c.MailRetryMaxDelay,
	}
}

// SEOSite returns the site-wide SEO defaults.
func (c Config) SEOSite() seo.Site {
	return seo.Site{
		BaseURL:            c.SiteURL,
		Name:               branding.AppName,
		DefaultTitle:       branding.AppName + " | Locomotive Parts and Services",
		DefaultDescription: branding.Tagline,
		DefaultKeywords:    branding.DefaultKeywords(),
		DefaultImage:       branding.DefaultSocialImage,
		Locale:             "en_US",
	}
}

// Run starts the site HTTP server and mail dispatcher.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(entrypoint.ServiceSite, logging.Options{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceSite, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return run(ctx, cfg, logger)
	})
}

func run(ctx context.Context, cfg Config, logger *zap.Logger) error {
	cat, err := catalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	store, err := sitesqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open site store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close site store", zap.Error(err))
		}
	}()

	submitter := inquiry.NewService(store, inquiry.ServiceConfig{
		Recipients: cfg.InquiryRecipients,
		SiteName:   branding.AppName,
	})
	server, err := sitesvc.NewServer(ctx, sitesvc.Config{
		HTTPAddr:  cfg.HTTPAddr,
		SEO:       cfg.SEOSite(),
		Images:    imagecdn.New(cfg.ImageCDNURL, imagecdn.DefaultConfig()),
		Catalog:   cat,
		Submitter: submitter,
		Inquiries: store,
		Admin:     siteapp.Credentials{Username: cfg.AdminUser, Password: cfg.AdminPassword},
		Policy: requestmeta.SchemePolicy{
			TrustForwardedProto: cfg.TrustForwardedProto,
			PublicOrigins:       append([]string{cfg.SiteURL}, cfg.PublicOrigins...),
		},
		Logger: logger,
		Ready:  store.Ping,
	})
	if err != nil {
		return fmt.Errorf("init site server: %w", err)
	}
	defer server.Close()

	var dispatcher *outbox.Dispatcher
	if gmailCfg := cfg.Gmail(); gmailCfg.Enabled() {
		sender, err := mail.NewGmail(ctx, gmailCfg)
		if err != nil {
			return fmt.Errorf("init gmail sender: %w", err)
		}
		dispatcher = outbox.NewDispatcher(store, sender, gmailCfg.Sender, cfg.Outbox(), logger.Named("outbox"))
	} else {
		logger.Warn("gmail credentials not configured; inquiries are stored but not emailed")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.ListenAndServe(groupCtx)
	})
	if dispatcher != nil {
		group.Go(func() error {
			return dispatcher.Run(groupCtx)
		})
	}
	return group.Wait()
}
