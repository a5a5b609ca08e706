package relay

import "log/slog"

const maskedToken = "****"

// Destination identifies one webhook endpoint. It is comparable and used as the
// registry key. Token is a secret and is never rendered by String or LogValue.
type Destination struct {
	ID    string
	Token string
}

// String returns the identifier with the token masked.
func (d Destination) String() string {
	return d.ID + ":" + maskedToken
}

// GoString keeps the token out of %#v output.
func (d Destination) GoString() string {
	return "relay.Destination{ID:" + d.ID + ", Token:" + maskedToken + "}"
}

// LogValue implements slog.LogValuer.
func (d Destination) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", d.ID),
		slog.String("token", maskedToken),
	)
}

// Payload is one serialized message body ready to be sent as is.
// Submit takes ownership: callers must not modify the slice afterwards.
type Payload []byte
