package leads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kingrea/boardpack/internal/widget"
)

const (
	defaultQueueSize       = 64
	defaultDeliveryTimeout = 10 * time.Second
)

// DispatcherOption customizes Dispatcher construction.
type DispatcherOption func(*Dispatcher)

// WithQueueSize overrides how many undelivered leads are buffered.
func WithQueueSize(size int) DispatcherOption {
	return func(d *Dispatcher) {
		if size > 0 {
			d.queueSize = size
		}
	}
}

// WithDeliveryTimeout bounds each lead's delivery to all sinks.
func WithDeliveryTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithLogger injects a logger for drops and delivery failures.
func WithLogger(logger Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithSource sets the Source recorded on every lead.
func WithSource(source string) DispatcherOption {
	return func(d *Dispatcher) {
		if source != "" {
			d.source = source
		}
	}
}

// WithClock overrides the capture timestamp source.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// Dispatcher queues leads and delivers them to every sink on a background
// worker. It implements widget.Reporter: Report never blocks and never fails.
// When the queue is full the oldest undelivered lead is dropped.
type Dispatcher struct {
	sinks     []Sink
	queueSize int
	timeout   time.Duration
	source    string
	logger    Logger
	now       func() time.Time

	mu     sync.Mutex
	queue  chan Lead
	closed bool
	done   chan struct{}
}

var _ widget.Reporter = (*Dispatcher)(nil)

// NewDispatcher starts a dispatcher delivering to sinks. Nil sinks are skipped.
func NewDispatcher(sinks []Sink, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		queueSize: defaultQueueSize,
		timeout:   defaultDeliveryTimeout,
		source:    SourceTerminal,
		now:       time.Now,
		done:      make(chan struct{}),
	}
	for _, sink := range sinks {
		if sink != nil {
			d.sinks = append(d.sinks, sink)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	d.queue = make(chan Lead, d.queueSize)
	go d.run()
	return d
}

// Report stamps and enqueues a lead.
func (d *Dispatcher) Report(email string, role widget.Role) {
	d.Enqueue(New(email, role, d.source, d.now()))
}

// Enqueue buffers an already stamped lead.
func (d *Dispatcher) Enqueue(lead Lead) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logf("leads: dropped %s (dispatcher closed)", lead.ID)
		return
	}
	for {
		select {
		case d.queue <- lead:
			return
		default:
		}
		// Full. Holding d.mu keeps other producers out, so dropping one lead
		// here frees a slot unless the worker already did.
		select {
		case oldest := <-d.queue:
			d.logf("leads: dropped %s (queue full, limit %d)", oldest.ID, d.queueSize)
		default:
		}
	}
}

// Close stops accepting leads and waits until queued ones are delivered or
// ctx ends. It is safe to call more than once.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for lead := range d.queue {
		d.deliver(lead)
	}
}

func (d *Dispatcher) deliver(lead Lead) {
	if len(d.sinks) == 0 {
		d.logf("leads: captured %s (%s) with no sinks configured", lead.ID, lead.Role)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	var g errgroup.Group
	for _, sink := range d.sinks {
		sink := sink
		g.Go(func() error {
			if err := deliverSafely(ctx, sink, lead); err != nil {
				d.logf("leads: %s delivery of %s failed: %v", sink.Name(), lead.ID, err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return
	}
	d.logf("leads: delivered %s (%s) to %d sink(s)", lead.ID, lead.Role, len(d.sinks))
}

// deliverSafely turns a panicking sink into an ordinary delivery error.
func deliverSafely(ctx context.Context, sink Sink, lead Lead) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return sink.Deliver(ctx, lead)
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.logger == nil {
		return
	}
	d.logger.Printf(format, args...)
}
