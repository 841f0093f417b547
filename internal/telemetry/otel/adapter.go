package otel

import (
	"context"
	"log/slog"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const instrumentationName = "quickswap/backend"

// recordEmitter is the part of otellog.Logger the handler uses.
type recordEmitter interface {
	Emit(ctx context.Context, record otellog.Record)
}

// SlogHandler forwards slog records to an OTel Logger so they reach the collector next to
// traces. Attributes are flattened with dotted group prefixes.
type SlogHandler struct {
	logger recordEmitter
	level  slog.Leveler
	attrs  []otellog.KeyValue
	group  string
}

// NewSlogHandler returns a handler emitting to provider. A nil provider yields nil, which
// callers treat as "no bridge".
func NewSlogHandler(provider *sdklog.LoggerProvider, level slog.Leveler) *SlogHandler {
	if provider == nil {
		return nil
	}
	return NewSlogHandlerWithLogger(provider.Logger(instrumentationName), level)
}

// NewSlogHandlerWithLogger returns a handler that emits to logger.
func NewSlogHandlerWithLogger(logger recordEmitter, level slog.Leveler) *SlogHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &SlogHandler{logger: logger, level: level}
}

func (h *SlogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	var rec otellog.Record
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	rec.SetTimestamp(ts)
	rec.SetBody(otellog.StringValue(r.Message))
	rec.SetSeverity(severity(r.Level))
	rec.SetSeverityText(r.Level.String())
	rec.AddAttributes(h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		rec.AddAttributes(convertAttr(h.group, a)...)
		return true
	})
	h.logger.Emit(ctx, rec)
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]otellog.KeyValue(nil), h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, convertAttr(h.group, a)...)
	}
	return &next
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = prefixed(h.group, name)
	return &next
}

func prefixed(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func convertAttr(group string, a slog.Attr) []otellog.KeyValue {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return nil
	}
	key := prefixed(group, a.Key)
	switch a.Value.Kind() {
	case slog.KindGroup:
		var out []otellog.KeyValue
		for _, ga := range a.Value.Group() {
			out = append(out, convertAttr(key, ga)...)
		}
		return out
	case slog.KindString:
		return []otellog.KeyValue{otellog.String(key, a.Value.String())}
	case slog.KindInt64:
		return []otellog.KeyValue{otellog.Int64(key, a.Value.Int64())}
	case slog.KindUint64:
		return []otellog.KeyValue{otellog.Int64(key, int64(a.Value.Uint64()))}
	case slog.KindFloat64:
		return []otellog.KeyValue{otellog.Float64(key, a.Value.Float64())}
	case slog.KindBool:
		return []otellog.KeyValue{otellog.Bool(key, a.Value.Bool())}
	case slog.KindDuration:
		return []otellog.KeyValue{otellog.Int64(key, a.Value.Duration().Milliseconds())}
	default:
		return []otellog.KeyValue{otellog.String(key, a.Value.String())}
	}
}

func severity(l slog.Level) otellog.Severity {
	switch {
	case l >= slog.LevelError:
		return otellog.SeverityError
	case l >= slog.LevelWarn:
		return otellog.SeverityWarn
	case l >= slog.LevelInfo:
		return otellog.SeverityInfo
	default:
		return otellog.SeverityDebug
	}
}
