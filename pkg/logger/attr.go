package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Destination records a webhook destination under the key "destination".
// Pass a value implementing slog.LogValuer so secrets are masked.
func Destination(dest slog.LogValuer) slog.Attr {
	if dest == nil {
		return slog.Attr{}
	}
	return slog.Any("destination", dest)
}

// DeliveryID records the per-payload delivery identifier under "delivery_id".
func DeliveryID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("delivery_id", id)
}

// Attempt records the zero-based attempt number under the key "attempt".
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// StatusCode records an HTTP status code. Zero (no response) yields an empty Attr.
func StatusCode(code int) slog.Attr {
	if code == 0 {
		return slog.Attr{}
	}
	return slog.Int("status_code", code)
}

// Backoff records the pause before the next attempt under the key "backoff".
func Backoff(d time.Duration) slog.Attr {
	return slog.Duration("backoff", d)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Count records a quantity under the key "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// ClientIP records the caller address under the key "client_ip".
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// ResponseBody records a destination's response body under the key
// "response_body". An empty body yields an empty Attr.
func ResponseBody(body []byte) slog.Attr {
	if len(body) == 0 {
		return slog.Attr{}
	}
	return slog.String("response_body", string(body))
}
