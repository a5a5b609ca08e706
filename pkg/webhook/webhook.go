package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/hookrelay/pkg/relay"
)

// Sender performs single webhook delivery attempts and classifies their
// outcome. It implements relay.Deliverer; retries are the caller's concern.
// Zero value is not usable; use NewSender to create instances.
type Sender struct {
	// client is reused across requests for connection pooling
	client      *http.Client
	urlTemplate string
	userAgent   string
	headers     map[string]string
	timeout     time.Duration
	onDelivery  DeliveryHook
}

var _ relay.Deliverer = (*Sender)(nil)

// NewSender creates a webhook sender. Dialing and the TLS handshake are bounded
// by the connect timeout, waiting for the response by the read timeout.
func NewSender(opts ...Option) *Sender {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	client := o.httpClient
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   o.connectTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   o.connectTimeout,
				ResponseHeaderTimeout: o.readTimeout,
				MaxIdleConns:          100,              // Total connections across all hosts
				MaxIdleConnsPerHost:   10,               // Connections per webhook endpoint
				IdleConnTimeout:       90 * time.Second, // Close idle connections after 90s
			},
		}
	}

	return &Sender{
		client:      client,
		urlTemplate: o.urlTemplate,
		userAgent:   o.userAgent,
		headers:     o.headers,
		timeout:     o.connectTimeout + o.readTimeout,
		onDelivery:  o.onDelivery,
	}
}

// URL renders the delivery URL for dest. The result embeds the destination
// token and must never be logged.
func (s *Sender) URL(dest relay.Destination) string {
	return fmt.Sprintf(s.urlTemplate, url.PathEscape(dest.ID), url.PathEscape(dest.Token))
}

// Deliver makes exactly one POST of payload to the destination URL.
//
// 2xx is Success. 400 and 403 are PermanentFailure: the payload or the
// destination credentials are wrong and retrying cannot help. Every other
// status, a network error or a timeout is RetryableFailure.
func (s *Sender) Deliver(ctx context.Context, dest relay.Destination, payload relay.Payload, attempt int) relay.Result {
	result := s.attemptDelivery(ctx, dest, payload)
	result.Attempt = attempt

	if s.onDelivery != nil {
		s.onDelivery(result)
	}

	return relay.Result{
		Outcome:    result.Outcome,
		StatusCode: result.StatusCode,
		Err:        result.Error,
		Body:       result.Body,
	}
}

// validateURL fails fast on a rendered URL the client could never dial, which
// only a misconfigured template produces. Destinations and payloads are sent
// as given.
func validateURL(webhookURL string) error {
	// The parse error is dropped: it would echo the URL and with it the token.
	u, err := url.Parse(webhookURL)
	if err != nil {
		return fmt.Errorf("%w: cannot parse delivery URL", ErrInvalidURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	return nil
}

// attemptDelivery makes a single HTTP request attempt with timing and error capture.
func (s *Sender) attemptDelivery(ctx context.Context, dest relay.Destination, payload relay.Payload) DeliveryResult {
	start := time.Now()
	result := DeliveryResult{Destination: dest}

	webhookURL := s.URL(dest)
	if err := validateURL(webhookURL); err != nil {
		result.Outcome = relay.PermanentFailure
		result.Error = fmt.Errorf("%w: %w", ErrPermanentFailure, err)
		return result
	}

	// Layer timeout on top of parent context to respect both constraints
	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		result.Duration = time.Since(start)
		result.Outcome = relay.PermanentFailure
		result.Error = fmt.Errorf("%w: failed to create request: %w", ErrPermanentFailure, stripURL(err))
		return result
	}

	// Custom headers first so the fixed ones cannot be overridden.
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	result.Duration = time.Since(start)

	if err != nil {
		result.Outcome = relay.RetryableFailure
		if isTimeout(reqCtx, err) {
			result.Error = fmt.Errorf("%w: %w", ErrTimeout, stripURL(err))
		} else {
			result.Error = fmt.Errorf("%w: %w", ErrTemporaryFailure, stripURL(err))
		}
		return result
	}

	defer func() { _ = resp.Body.Close() }()
	result.StatusCode = resp.StatusCode
	result.Outcome = Classify(resp.StatusCode)

	if result.Outcome == relay.Success {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return result
	}

	// Read response body for error context (64KB limit prevents memory exhaustion)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if len(body) > 0 {
		result.Body = body
	}
	errMsg := fmt.Sprintf("webhook returned status %d", resp.StatusCode)
	if excerpt := bodyExcerpt(body); excerpt != "" {
		errMsg += ": " + excerpt
	}

	if result.Outcome == relay.PermanentFailure {
		result.Error = fmt.Errorf("%w: %s", ErrPermanentFailure, errMsg)
	} else {
		result.Error = fmt.Errorf("%w: %s", ErrTemporaryFailure, errMsg)
	}
	return result
}

// Classify maps an HTTP status code to a delivery outcome.
func Classify(statusCode int) relay.Outcome {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return relay.Success
	case statusCode == http.StatusBadRequest, statusCode == http.StatusForbidden:
		return relay.PermanentFailure
	default:
		return relay.RetryableFailure
	}
}

const (
	maxResponseBody = 64 * 1024
	maxExcerpt      = 200
)

// bodyExcerpt flattens and truncates a response body for the error message.
// The cut never splits a UTF-8 sequence.
func bodyExcerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	if len(s) <= maxExcerpt {
		return s
	}
	cut := maxExcerpt
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// stripURL unwraps *url.Error so the request URL, which carries the
// destination token, never reaches an error message.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

func isTimeout(reqCtx context.Context, err error) bool {
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
