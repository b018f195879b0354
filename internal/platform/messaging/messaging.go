// Package messaging sends best-effort status notifications to an external
// WhatsApp-style HTTP gateway. Delivery is fire-and-forget: one attempt, a
// bounded deadline, and every failure mode collapses into a false return so a
// notification can never fail the operation that triggered it.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout bounds the single delivery attempt.
	DefaultTimeout = 5 * time.Second

	// chatSuffix is the gateway's destination domain marker.
	chatSuffix = "@c.us"
)

// Sender is the notification capability consumed by the appointment service.
type Sender interface {
	Send(ctx context.Context, destination, message string) bool
}

// Config holds the gateway endpoint and the phone number shape it accepts.
type Config struct {
	GatewayURL  string
	PhonePrefix string        // country code the destination must start with, e.g. "994"
	LocalDigits int           // digits after the country code
	Timeout     time.Duration // zero means DefaultTimeout
}

// Client is the HTTP implementation of Sender.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client used for deliveries.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NormalizeDestination strips a leading "+" and all whitespace, then checks
// that the remainder is the configured country prefix followed by exactly
// LocalDigits digits. The normalized number and false are returned on any
// mismatch.
func (c *Client) NormalizeDestination(destination string) (string, bool) {
	s := strings.TrimPrefix(destination, "+")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	if !strings.HasPrefix(s, c.cfg.PhonePrefix) {
		return "", false
	}
	if len(s) != len(c.cfg.PhonePrefix)+c.cfg.LocalDigits {
		return "", false
	}
	return s, true
}

type gatewayPayload struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

// Send pushes one message to the gateway and reports success. It never returns
// an error: validation failures skip network I/O entirely, and network errors,
// timeouts, and non-2xx responses are logged and surface as false.
func (c *Client) Send(ctx context.Context, destination, message string) bool {
	number, ok := c.NormalizeDestination(destination)
	if !ok {
		c.logger.Warn().Str("destination", destination).Msg("notification skipped: invalid destination")
		return false
	}

	payload, err := json.Marshal(gatewayPayload{
		PhoneNumber: number + chatSuffix,
		Message:     message,
	})
	if err != nil {
		c.logger.Warn().Err(err).Msg("notification skipped: marshal payload")
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn().Err(err).Msg("notification failed: build request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("gateway", c.cfg.GatewayURL).Msg("notification failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("notification failed: non-2xx response")
		return false
	}
	return true
}
