package deadletter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/hookrelay/pkg/relay"
)

const (
	DefaultKey        = "hookrelay:deadletters"
	DefaultMaxEntries = 1000
)

// Entry is the archived form of a relay.DeadLetter.
type Entry struct {
	ID            string    `json:"id"`
	DestinationID string    `json:"destination_id"`
	StatusCode    int       `json:"status_code,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	ResponseBody  string    `json:"response_body,omitempty"`
	Payload       string    `json:"payload"`
	Attempts      int       `json:"attempts"`
	FailedAt      time.Time `json:"failed_at"`
}

// Store archives dead letters and lists the most recent ones.
type Store interface {
	relay.DeadLetterSink
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// NewEntry converts a dead letter into an Entry. The destination token is dropped.
func NewEntry(dl relay.DeadLetter) Entry {
	e := Entry{
		ID:            uuid.NewString(),
		DestinationID: dl.Destination.ID,
		StatusCode:    dl.StatusCode,
		ResponseBody:  string(dl.Body),
		Payload:       string(dl.Payload),
		Attempts:      dl.Attempts,
		FailedAt:      dl.FailedAt,
	}
	if dl.Reason != nil {
		e.Reason = dl.Reason.Error()
	}
	if e.FailedAt.IsZero() {
		e.FailedAt = time.Now().UTC()
	}
	return e
}
