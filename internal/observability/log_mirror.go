package observability

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"

	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

const (
	logInstrumentation = "pkmnfoundations/internal/platform/logging"
	accessLogMessage   = "http_request"
	// nested values below this depth are flattened with fmt
	maxValueDepth = 3
	// record payloads run to several KiB; only short keys and ids are copied
	maxMirroredBytes = 64
)

// probe and dashboard polling stays in the local log only
var quietPaths = []string{"/healthz", "/v1/stats"}

// logMirror copies zap records into the OTel log pipeline that uptrace exports.
type logMirror struct {
	otel otellog.Logger
}

func newLogMirror(serviceVersion string) logging.MirrorFunc {
	m := logMirror{otel: otelglobal.Logger(logInstrumentation, otellog.WithInstrumentationVersion(serviceVersion))}
	return m.emit
}

func (m logMirror) emit(ctx context.Context, level logging.Level, msg string, args ...any) {
	if quietAccessLog(msg, args) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	severity := severityOf(level)
	if !m.otel.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
		return
	}

	var rec otellog.Record
	now := time.Now().UTC()
	rec.SetTimestamp(now)
	rec.SetObservedTimestamp(now)
	rec.SetSeverity(severity)
	rec.SetSeverityText(strings.ToUpper(level.String()))
	rec.SetEventName(msg)
	rec.SetBody(otellog.StringValue(msg))
	rec.AddAttributes(attributes(args)...)
	m.otel.Emit(ctx, rec)
}

func quietAccessLog(msg string, args []any) bool {
	if msg != accessLogMessage {
		return false
	}
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == "http_path" {
			path, _ := args[i+1].(string)
			return slices.Contains(quietPaths, path)
		}
	}
	return false
}

// attributes pairs up slog-style args. A non-string key becomes arg_N, a dangling key an empty value.
func attributes(args []any) []otellog.KeyValue {
	out := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if strings.TrimSpace(key) == "" {
			key = "arg_" + strconv.Itoa(i/2)
		}
		if i+1 == len(args) {
			out = append(out, otellog.Empty(key))
			break
		}
		out = append(out, otellog.KeyValue{Key: key, Value: valueOf(args[i+1], 0)})
	}
	return out
}

func severityOf(level zapcore.Level) otellog.Severity {
	switch level {
	case zapcore.DebugLevel:
		return otellog.SeverityDebug
	case zapcore.InfoLevel:
		return otellog.SeverityInfo
	case zapcore.WarnLevel:
		return otellog.SeverityWarn
	case zapcore.ErrorLevel:
		return otellog.SeverityError
	}
	if level < zapcore.DebugLevel {
		return otellog.SeverityDebug
	}
	return otellog.SeverityFatal
}

func bytesValue(b []byte) otellog.Value {
	if len(b) > maxMirroredBytes {
		return otellog.StringValue(fmt.Sprintf("<%d bytes>", len(b)))
	}
	return otellog.BytesValue(slices.Clone(b))
}

// valueOf handles the named types first so generation.Generation logs as "gen5", not 5.
func valueOf(value any, depth int) otellog.Value {
	switch v := value.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case []byte:
		return bytesValue(v)
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case time.Duration:
		return otellog.StringValue(v.String())
	case error:
		return otellog.StringValue(v.Error())
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	}
	if depth >= maxValueDepth {
		return otellog.StringValue(fmt.Sprint(value))
	}

	rv := reflect.ValueOf(value)
	switch {
	case rv.CanInt():
		return otellog.Int64Value(rv.Int())
	case rv.CanUint():
		if u := rv.Uint(); u <= math.MaxInt64 {
			return otellog.Int64Value(int64(u))
		}
		return otellog.StringValue(strconv.FormatUint(rv.Uint(), 10))
	case rv.CanFloat():
		return otellog.Float64Value(rv.Float())
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return valueOf(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return bytesValue(b)
		}
		items := make([]otellog.Value, rv.Len())
		for i := range items {
			items[i] = valueOf(rv.Index(i).Interface(), depth+1)
		}
		return otellog.SliceValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		kvs := make([]otellog.KeyValue, 0, rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			kvs = append(kvs, otellog.KeyValue{Key: iter.Key().String(), Value: valueOf(iter.Value().Interface(), depth+1)})
		}
		slices.SortFunc(kvs, func(a, b otellog.KeyValue) int { return strings.Compare(a.Key, b.Key) })
		return otellog.MapValue(kvs...)
	}
	return otellog.StringValue(fmt.Sprint(value))
}
