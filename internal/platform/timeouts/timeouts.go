// Package timeouts defines shared timeout constants for the site processes.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Write caps the time spent writing a single response.
const Write = 30 * time.Second

// Idle bounds keep-alive connections between requests.
const Idle = 2 * time.Minute

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// MailSend caps one Gmail API send call, token refresh included.
const MailSend = 15 * time.Second

// OAuthExchange caps the authorization code exchange in the token tool.
const OAuthExchange = 30 * time.Second
