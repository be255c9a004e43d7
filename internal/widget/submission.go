package widget

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultResetDelay is how long the confirmation stays up before the form
// clears itself.
const DefaultResetDelay = 3 * time.Second

// Phase is the discrete state of the submission flow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if p != PhaseIdle && p != PhaseSubmitted {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "idle":
		*p = PhaseIdle
	case "submitted":
		*p = PhaseSubmitted
	default:
		return fmt.Errorf("unknown phase %q", string(text))
	}
	return nil
}

// Reporter receives captured leads. Implementations must not block; delivery
// happens elsewhere and its outcome never flows back into the form.
type Reporter interface {
	Report(email string, role Role)
}

// ReporterFunc adapts a function into a Reporter.
type ReporterFunc func(email string, role Role)

// Report calls f(email, role).
func (f ReporterFunc) Report(email string, role Role) {
	if f == nil {
		return
	}
	f(email, role)
}

// Logger records diagnostics. It matches logging.Logger's signature.
type Logger interface {
	Printf(format string, args ...any)
}

// SubmissionState is the serializable view of a Submission.
type SubmissionState struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Phase Phase  `json:"phase"`
}

// SubmissionOption customizes Submission construction.
type SubmissionOption func(*Submission)

// WithResetDelay overrides how long the Submitted phase lasts.
func WithResetDelay(d time.Duration) SubmissionOption {
	return func(s *Submission) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithScheduler sets the scheduler that arms the reset timer.
func WithScheduler(scheduler Scheduler) SubmissionOption {
	return func(s *Submission) {
		if scheduler != nil {
			s.scheduler = scheduler
		}
	}
}

// WithValidator replaces the email rule.
func WithValidator(v Validator) SubmissionOption {
	return func(s *Submission) {
		if v != nil {
			s.validate = v
		}
	}
}

// WithReporter sets the lead-capture collaborator.
func WithReporter(r Reporter) SubmissionOption {
	return func(s *Submission) {
		s.reporter = r
	}
}

// WithLogger injects a logger for reporter failures.
func WithLogger(logger Logger) SubmissionOption {
	return func(s *Submission) {
		s.logger = logger
	}
}

// Submission is the early-access form: an email field, the buyer/agent
// choice and an Idle/Submitted phase that falls back to Idle on its own.
// Its methods and the reset callback serialise on an internal mutex, so any
// Scheduler may be used, including one that fires on its own goroutine.
type Submission struct {
	mu sync.Mutex

	email  string
	choice Choice
	phase  Phase

	delay     time.Duration
	scheduler Scheduler
	validate  Validator
	reporter  Reporter
	logger    Logger

	// pending is the reset timer, held only while Submitted.
	pending Timer
	// generation invalidates callbacks from timers that were released.
	generation uint64
	closed     bool
}

// NewSubmission returns an Idle form with an empty email and the buyer role.
func NewSubmission(opts ...SubmissionOption) *Submission {
	s := &Submission{
		delay:     DefaultResetDelay,
		scheduler: WallClock,
		validate:  NativeEmail,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Email returns the current field contents.
func (s *Submission) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// Role returns the selected audience.
func (s *Submission) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.choice.Selected
}

// Phase returns the current phase.
func (s *Submission) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// ResetDelay returns the configured confirmation window.
func (s *Submission) ResetDelay() time.Duration { return s.delay }

// CanSubmit reports whether the submit control is enabled.
func (s *Submission) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSubmit()
}

func (s *Submission) canSubmit() bool {
	return !s.closed && s.phase == PhaseIdle
}

// Snapshot returns a copy of the state.
func (s *Submission) Snapshot() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SubmissionState{Email: s.email, Role: s.choice.Selected, Phase: s.phase}
}

// SetEmail replaces the field contents.
func (s *Submission) SetEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.email = email
}

// SelectRole picks the audience tag for the next submission.
func (s *Submission) SelectRole(r Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.choice = s.choice.Select(r)
}

// Submit moves Idle to Submitted when the email passes validation, arms the
// reset timer and reports the lead. It returns false, changing nothing, when
// the email is rejected or the form is already Submitted.
func (s *Submission) Submit() bool {
	s.mu.Lock()
	if !s.canSubmit() || !s.validate(s.email) {
		s.mu.Unlock()
		return false
	}
	s.phase = PhaseSubmitted
	s.arm()
	email, role := strings.TrimSpace(s.email), s.choice.Selected
	s.mu.Unlock()

	// The reporter runs unlocked so it may read the form back.
	s.report(email, role)
	return true
}

// Close tears the form down. A pending reset is cancelled and any callback
// already in flight becomes a no-op. Close is idempotent.
func (s *Submission) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.release()
	s.closed = true
}

// arm and release expect s.mu to be held; expire takes it itself.
func (s *Submission) arm() {
	s.release()
	gen := s.generation
	s.pending = s.scheduler.AfterFunc(s.delay, func() {
		s.expire(gen)
	})
}

// release stops the pending timer and bumps the generation so a callback
// that already fired cannot act.
func (s *Submission) release() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.generation++
}

func (s *Submission) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation || s.phase != PhaseSubmitted {
		return
	}
	s.pending = nil
	s.generation++
	s.phase = PhaseIdle
	s.email = ""
}

func (s *Submission) report(email string, role Role) {
	if s.reporter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && s.logger != nil {
			s.logger.Printf("submission: lead reporter panicked: %v", r)
		}
	}()
	s.reporter.Report(email, role)
}
