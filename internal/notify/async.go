package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDispatchTimeout bounds a single background delivery.
const DefaultDispatchTimeout = 5 * time.Second

// Dispatcher delivers notifications in the background so request handlers never wait on
// delivery. Failures are logged. Close waits for in-flight deliveries.
type Dispatcher struct {
	next    Notifier
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher wraps next. A non-positive timeout uses DefaultDispatchTimeout.
func NewDispatcher(next Notifier, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{next: next, logger: logger, timeout: timeout}
}

// Notify schedules delivery and returns immediately. The request context is not used for
// the delivery itself, so a finished RPC does not cancel it. After Close it is a no-op.
func (d *Dispatcher) Notify(ctx context.Context, email, code string) error {
	if d.next == nil {
		return nil
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.WarnContext(ctx, "notification dropped after shutdown", "email", email)
		return nil
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		if err := d.next.Notify(sendCtx, email, code); err != nil {
			d.logger.ErrorContext(sendCtx, "otp delivery failed", "email", email, "error", err)
		}
	}()
	return nil
}

// Close stops accepting work and waits for in-flight deliveries or ctx, whichever ends first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
