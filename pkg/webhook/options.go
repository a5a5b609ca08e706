package webhook

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/hookrelay/pkg/relay"
)

const (
	// DefaultURLTemplate points at the Discord webhook execute endpoint.
	// The two verbs receive the path-escaped destination id and token.
	DefaultURLTemplate    = "https://discord.com/api/webhooks/%s/%s?wait=true"
	DefaultUserAgent      = "hookrelay-webhook/1.0"
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 30 * time.Second
)

// DeliveryResult contains information about a single webhook delivery attempt.
type DeliveryResult struct {
	Destination relay.Destination
	Outcome     relay.Outcome
	StatusCode  int
	Attempt     int
	Duration    time.Duration
	Error       error
	Body        []byte // response body of a non-2xx reply, up to 64 KiB
}

// DeliveryHook is called after each delivery attempt.
type DeliveryHook func(result DeliveryResult)

type senderOptions struct {
	urlTemplate    string
	userAgent      string
	connectTimeout time.Duration
	readTimeout    time.Duration
	headers        map[string]string
	httpClient     *http.Client
	onDelivery     DeliveryHook
}

func defaultOptions() *senderOptions {
	return &senderOptions{
		urlTemplate:    DefaultURLTemplate,
		userAgent:      DefaultUserAgent,
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
		headers:        make(map[string]string),
	}
}

// Option is a functional option for configuring a Sender.
type Option func(*senderOptions)

// WithURLTemplate sets the fmt template used to build delivery URLs.
// It must contain exactly two %s verbs: id then token.
func WithURLTemplate(tpl string) Option {
	return func(o *senderOptions) {
		if tpl != "" {
			o.urlTemplate = tpl
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *senderOptions) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithConnectTimeout bounds dialing and the TLS handshake.
// Default is 10 seconds.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *senderOptions) {
		if d > 0 {
			o.connectTimeout = d
		}
	}
}

// WithReadTimeout bounds waiting for the response.
// Default is 30 seconds.
func WithReadTimeout(d time.Duration) Option {
	return func(o *senderOptions) {
		if d > 0 {
			o.readTimeout = d
		}
	}
}

// WithHeader adds a custom header to every request.
// Content-Type and User-Agent cannot be overridden this way.
func WithHeader(key, value string) Option {
	return func(o *senderOptions) {
		if key != "" && value != "" {
			o.headers[key] = value
		}
	}
}

// WithHeaders adds multiple custom headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(o *senderOptions) {
		for k, v := range headers {
			if k != "" && v != "" {
				o.headers[k] = v
			}
		}
	}
}

// WithHTTPClient sets a custom HTTP client. The connect and read timeouts
// are then the client's responsibility; the per-attempt deadline still applies.
func WithHTTPClient(client *http.Client) Option {
	return func(o *senderOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithOnDelivery sets a callback that's invoked after each delivery attempt.
// Useful for metrics or tracing.
func WithOnDelivery(hook DeliveryHook) Option {
	return func(o *senderOptions) {
		o.onDelivery = hook
	}
}
