// Package leads delivers captured early-access signups to the lead-capture
// collaborators: a local journal, a SQLite store and an optional webhook.
//
// The form hands leads to a Dispatcher, which never blocks the caller and
// never reports delivery failures back; failures end up in the log.
package leads

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/boardpack/internal/widget"
)

// SourceTerminal tags leads captured by the terminal page.
const SourceTerminal = "terminal"

// ErrClosed is returned by sinks used after Close.
var ErrClosed = errors.New("leads: closed")

// Lead is one early-access signup.
type Lead struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Role       widget.Role `json:"role"`
	Source     string      `json:"source"`
	CapturedAt time.Time   `json:"captured_at"`
}

// New stamps a lead with a fresh ID and the capture time.
func New(email string, role widget.Role, source string, now time.Time) Lead {
	if now.IsZero() {
		now = time.Now()
	}
	return Lead{
		ID:         uuid.NewString(),
		Email:      strings.TrimSpace(email),
		Role:       role,
		Source:     source,
		CapturedAt: now.UTC(),
	}
}

// Sink is one delivery target.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, lead Lead) error
}

// Logger records delivery status. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}
