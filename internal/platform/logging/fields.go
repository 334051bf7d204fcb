package logging

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// maxLoggedBytes keeps record payloads, several KiB each, out of the logs; the length and a hex prefix identify them.
const maxLoggedBytes = 16

func traceFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{zap.Stringer("trace_id", sc.TraceID()), zap.Stringer("span_id", sc.SpanID())}
}

// zapFields converts slog-style pairs. A non-string key is logged as "arg"; a dangling key gets a nil value.
func zapFields(args []any) []zap.Field {
	fields := make([]zap.Field, 0, (len(args)+1)/2)
	for len(args) > 0 {
		key, _ := args[0].(string)
		if key == "" {
			key = "arg"
		}
		if len(args) == 1 {
			fields = append(fields, zap.Any(key, nil))
			break
		}
		fields = append(fields, field(key, args[1])...)
		args = args[2:]
	}
	return fields
}

func field(key string, value any) []zap.Field {
	switch v := value.(type) {
	case error:
		return []zap.Field{zap.NamedError(key, v)}
	case []byte:
		if len(v) <= maxLoggedBytes {
			return []zap.Field{zap.String(key, hex.EncodeToString(v))}
		}
		return []zap.Field{
			zap.String(key, hex.EncodeToString(v[:maxLoggedBytes])+"..."),
			zap.Int(key+"_len", len(v)),
		}
	case time.Duration:
		return []zap.Field{zap.Duration(key, v)}
	case time.Time:
		return []zap.Field{zap.Time(key, v)}
	case fmt.Stringer:
		return []zap.Field{zap.Stringer(key, v)}
	}
	return []zap.Field{zap.Any(key, value)}
}
