package notify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, string, string) error { return f.err }

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}
	errBoom := errors.New("boom")
	m := Multi{a, nil, failingNotifier{err: errBoom}, b}

	err := m.Notify(context.Background(), "a@x.io", "0001")
	if !errors.Is(err, errBoom) {
		t.Errorf("err = %v, want boom", err)
	}
	for _, r := range []*recordingNotifier{a, b} {
		if code, ok := r.get("a@x.io"); !ok || code != "0001" {
			t.Errorf("notifier missed delivery: %q %v", code, ok)
		}
	}
}

func TestMulti_Empty(t *testing.T) {
	if err := (Multi{}).Notify(context.Background(), "a@x.io", "0001"); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestLogNotifier_DoesNotLogCode(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	if err := n.Notify(context.Background(), "a@x.io", "9876"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "a@x.io") {
		t.Errorf("log should mention email: %q", out)
	}
	if strings.Contains(out, "9876") {
		t.Error("log must not contain the code")
	}
}
