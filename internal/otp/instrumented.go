package otp

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "quickswap/backend/internal/otp"

// Result attribute values recorded on registry counters.
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultNotVerified = "not_verified"
	ResultError       = "error"
)

// InstrumentedRegistry records per-operation counters around another Registry.
type InstrumentedRegistry struct {
	next Registry
	ops  metric.Int64Counter
}

// NewInstrumentedRegistry wraps next with counters from mp. The counter is named
// otp.operations and carries operation and result attributes.
func NewInstrumentedRegistry(next Registry, mp metric.MeterProvider) (*InstrumentedRegistry, error) {
	ops, err := mp.Meter(meterName).Int64Counter(
		"otp.operations",
		metric.WithDescription("OTP registry operations by outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}
	return &InstrumentedRegistry{next: next, ops: ops}, nil
}

func (r *InstrumentedRegistry) record(ctx context.Context, op string, err error) {
	result := ResultOK
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidOTP):
		result = ResultInvalid
	case errors.Is(err, ErrNotVerified):
		result = ResultNotVerified
	default:
		result = ResultError
	}
	r.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("result", result),
	))
}

func (r *InstrumentedRegistry) Issue(ctx context.Context, email string) (string, error) {
	code, err := r.next.Issue(ctx, email)
	r.record(ctx, "issue", err)
	return code, err
}

func (r *InstrumentedRegistry) Verify(ctx context.Context, email, code string) error {
	err := r.next.Verify(ctx, email, code)
	r.record(ctx, "verify", err)
	return err
}

func (r *InstrumentedRegistry) Consume(ctx context.Context, email string) (Entry, error) {
	e, err := r.next.Consume(ctx, email)
	r.record(ctx, "consume", err)
	return e, err
}

func (r *InstrumentedRegistry) Restore(ctx context.Context, email string, e Entry) error {
	err := r.next.Restore(ctx, email, e)
	r.record(ctx, "restore", err)
	return err
}

var _ Registry = (*InstrumentedRegistry)(nil)
