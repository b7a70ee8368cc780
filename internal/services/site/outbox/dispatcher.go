package outbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/northlinerail/website/internal/services/site/mail"
	"go.uber.org/zap"
)

const (
	defaultOwner         = "site-mailer"
	defaultPollInterval  = 5 * time.Second
	defaultLeaseTTL      = time.Minute
	defaultBatchSize     = 10
	defaultMaxAttempts   = 8
	defaultRetryBackoff  = 30 * time.Second
	defaultRetryMaxDelay = time.Hour
	maxErrorLength       = 1024
)

// Sender delivers one email and returns the provider message id.
type Sender interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

// Config controls dispatcher polling and retry behavior.
type Config struct {
	Owner         string
	PollInterval  time.Duration
	LeaseTTL      time.Duration
	BatchSize     int
	MaxAttempts   int
	RetryBackoff  time.Duration
	RetryMaxDelay time.Duration
}

func (c Config) normalized() Config {
	if strings.TrimSpace(c.Owner) == "" {
		c.Owner = defaultOwner
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.LeaseTTL <= 0 {
		c.LeaseTTL = defaultLeaseTTL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = defaultRetryBackoff
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = defaultRetryMaxDelay
	}
	if c.RetryMaxDelay < c.RetryBackoff {
		c.RetryMaxDelay = c.RetryBackoff
	}
	return c
}

// Dispatcher polls the outbox and sends due messages.
type Dispatcher struct {
	store  Store
	sender Sender
	from   string
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewDispatcher builds a dispatcher. from is the envelope sender address.
func NewDispatcher(store Store, sender Sender, from string, cfg Config, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		store:  store,
		sender: sender,
		from:   from,
		cfg:    cfg.normalized(),
		logger: logger,
		now:    time.Now,
	}
}

// Run polls until ctx is canceled.
func (d *Dispatcher) Run(ctx context.Context) error {
	if d == nil || d.store == nil || d.sender == nil {
		return fmt.Errorf("outbox dispatcher is not configured")
	}
	d.logger.Info("mail dispatcher started", zap.Duration("poll_interval", d.cfg.PollInterval))
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := d.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Warn("mail dispatch pass failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			d.logger.Info("mail dispatcher stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce leases one batch of due messages and attempts each. It returns the
// number of messages sent.
func (d *Dispatcher) RunOnce(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	messages, err := d.store.LeaseOutbox(ctx, d.cfg.Owner, d.cfg.BatchSize, d.now().UTC(), d.cfg.LeaseTTL)
	if err != nil {
		return 0, fmt.Errorf("lease outbox: %w", err)
	}
	sent := 0
	for _, msg := range messages {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		ok, err := d.deliver(ctx, msg)
		if err != nil {
			return sent, err
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) (bool, error) {
	log := d.logger.With(zap.String("outbox_id", msg.ID), zap.String("inquiry_id", msg.InquiryID), zap.Int("attempt", msg.AttemptCount+1))

	// Expired leases are counted by the store, so a message can arrive here
	// with its attempts already spent.
	if msg.AttemptCount >= d.cfg.MaxAttempts {
		lastError := msg.LastError
		if lastError == "" {
			lastError = "attempt limit reached"
		}
		if err := d.store.MarkOutboxFailed(ctx, msg.ID, d.cfg.Owner, truncate(lastError), d.now().UTC()); err != nil {
			return false, fmt.Errorf("mark outbox %s failed: %w", msg.ID, err)
		}
		log.Error("inquiry email abandoned after attempt limit", zap.String("last_error", lastError))
		return false, nil
	}

	providerID, sendErr := d.sender.Send(ctx, mail.Message{
		From:    d.from,
		To:      msg.Recipients,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Body:    msg.Body,
	})
	now := d.now().UTC()
	if sendErr == nil {
		if err := d.store.MarkOutboxSent(ctx, msg.ID, d.cfg.Owner, providerID, now); err != nil {
			return false, fmt.Errorf("mark outbox %s sent: %w", msg.ID, err)
		}
		log.Info("inquiry email sent", zap.String("provider_id", providerID))
		return true, nil
	}

	lastError := truncate(sendErr.Error())
	attempts := msg.AttemptCount + 1
	if errors.Is(sendErr, mail.ErrPermanent) || attempts >= d.cfg.MaxAttempts {
		if err := d.store.MarkOutboxFailed(ctx, msg.ID, d.cfg.Owner, lastError, now); err != nil {
			return false, fmt.Errorf("mark outbox %s failed: %w", msg.ID, err)
		}
		log.Error("inquiry email failed permanently", zap.Error(sendErr))
		return false, nil
	}

	next := now.Add(d.Backoff(attempts))
	if err := d.store.MarkOutboxRetry(ctx, msg.ID, d.cfg.Owner, next, lastError); err != nil {
		return false, fmt.Errorf("mark outbox %s retry: %w", msg.ID, err)
	}
	log.Warn("inquiry email retry scheduled", zap.Time("next_attempt_at", next), zap.Error(sendErr))
	return false, nil
}

// Backoff returns the delay after the given number of failed attempts:
// RetryBackoff doubled per attempt, capped at RetryMaxDelay.
func (d *Dispatcher) Backoff(attempts int) time.Duration {
	delay := d.cfg.RetryBackoff
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= d.cfg.RetryMaxDelay {
			return d.cfg.RetryMaxDelay
		}
	}
	return min(delay, d.cfg.RetryMaxDelay)
}

func truncate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) <= maxErrorLength {
		return value
	}
	return value[:maxErrorLength]
}
