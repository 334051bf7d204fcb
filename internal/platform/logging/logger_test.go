package logging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.InfoContext(context.Background(), "gts deposit refused", "pid", int32(1000), "error", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, int32(1000), fields["pid"])
	require.Equal(t, "boom", fields["error"])
}

func TestMirrorSeesRecordsAboveLevel(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("dropped")
	logger.WarnContext(context.Background(), "kept", "k", "v")

	require.Equal(t, []string{"warn:kept"}, got)
}

func TestNew_ConsoleFormatWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Format: FormatConsole, Output: &buf})

	logger.Debug("hidden")
	logger.Info("restore finished", "applied", 2)
	require.NoError(t, logger.Sync())

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "INFO")
	require.Contains(t, out, "restore finished")
	require.Contains(t, out, `"applied": 2`)
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})
	logger.Debug("gts search", "species", 25)

	require.Contains(t, buf.String(), `"msg":"gts search"`)
	require.Contains(t, buf.String(), `"species":25`)
}

type genName int

func (g genName) String() string { return fmt.Sprintf("gen%d", int(g)) }

func TestZapFields_BytesAndStringers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	payload := bytes.Repeat([]byte{0xAB}, 540)
	logger.Info("upload", "payload", payload, "pid", []byte{1, 2}, "generation", genName(4))

	fields := logs.All()[0].ContextMap()
	require.Equal(t, strings.Repeat("ab", maxLoggedBytes)+"...", fields["payload"])
	require.Equal(t, int64(540), fields["payload_len"])
	require.Equal(t, "0102", fields["pid"])
	require.Equal(t, "gen4", fields["generation"])
}

func TestWith_CarriesFieldsAndOddArgs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("command", "restore")

	logger.Warn("odd args", 42, "x", "dangling")

	fields := logs.All()[0].ContextMap()
	require.Equal(t, "restore", fields["command"])
	require.Equal(t, "x", fields["arg"])
	require.Contains(t, fields, "dangling")
	require.Nil(t, fields["dangling"])
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var logger *Logger
	logger.Info("via default")
	require.NoError(t, logger.Sync())
	require.Equal(t, 1, logs.Len())
}
