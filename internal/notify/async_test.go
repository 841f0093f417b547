package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type recordingNotifier struct {
	mu    sync.Mutex
	sent  map[string]string
	err   error
	delay time.Duration
}

func (r *recordingNotifier) Notify(ctx context.Context, email, code string) error {
	if r.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.delay):
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sent == nil {
		r.sent = make(map[string]string)
	}
	r.sent[email] = code
	return r.err
}

func (r *recordingNotifier) get(email string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sent[email]
	return c, ok
}

func TestDispatcher_DeliversInBackground(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recordingNotifier{}
	d := NewDispatcher(rec, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), time.Second)
	if err := d.Notify(context.Background(), "a@x.io", "1234"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := d.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if code, ok := rec.get("a@x.io"); !ok || code != "1234" {
		t.Errorf("delivered = %q %v", code, ok)
	}
}

func TestDispatcher_RequestCancellationDoesNotAbortDelivery(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recordingNotifier{delay: 20 * time.Millisecond}
	d := NewDispatcher(rec, nil, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	_ = d.Notify(ctx, "a@x.io", "1234")
	cancel()
	_ = d.Close(context.Background())
	if _, ok := rec.get("a@x.io"); !ok {
		t.Error("delivery should complete after request context is canceled")
	}
}

func TestDispatcher_LogsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	var buf bytes.Buffer
	var mu sync.Mutex
	logger := slog.New(slog.NewTextHandler(&lockedWriter{w: &buf, mu: &mu}, nil))
	d := NewDispatcher(&recordingNotifier{err: errors.New("relay down")}, logger, time.Second)
	_ = d.Notify(context.Background(), "a@x.io", "1234")
	_ = d.Close(context.Background())

	mu.Lock()
	out := buf.String()
	mu.Unlock()
	if !strings.Contains(out, "otp delivery failed") || !strings.Contains(out, "relay down") {
		t.Errorf("log output = %q", out)
	}
	if strings.Contains(out, "1234") {
		t.Error("code must not be logged")
	}
}

func TestDispatcher_TimeoutBoundsDelivery(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recordingNotifier{delay: time.Second}
	d := NewDispatcher(rec, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), 10*time.Millisecond)
	_ = d.Notify(context.Background(), "a@x.io", "1234")
	start := time.Now()
	_ = d.Close(context.Background())
	if time.Since(start) > 500*time.Millisecond {
		t.Error("delivery should be bounded by the dispatch timeout")
	}
	if _, ok := rec.get("a@x.io"); ok {
		t.Error("timed-out delivery should not be recorded")
	}
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recordingNotifier{}
	d := NewDispatcher(rec, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), time.Second)
	_ = d.Close(context.Background())
	_ = d.Notify(context.Background(), "a@x.io", "1234")
	if _, ok := rec.get("a@x.io"); ok {
		t.Error("notify after close should be dropped")
	}
}

func TestDispatcher_CloseHonorsContext(t *testing.T) {
	rec := &recordingNotifier{delay: 200 * time.Millisecond}
	d := NewDispatcher(rec, nil, time.Second)
	_ = d.Notify(context.Background(), "a@x.io", "1234")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	if err := d.Close(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Close err = %v, want deadline exceeded", err)
	}
	_ = d.Close(context.Background())
}

func TestDispatcher_NilNext(t *testing.T) {
	d := NewDispatcher(nil, nil, 0)
	if err := d.Notify(context.Background(), "a@x.io", "1234"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if d.timeout != DefaultDispatchTimeout {
		t.Errorf("timeout = %v", d.timeout)
	}
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
