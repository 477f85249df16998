package logger

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCaptureHandler(buf *bytes.Buffer, format logFormat) (*structuredHandler, *asyncWriter) {
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:    slog.LevelInfo,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	return h, aw
}

func TestKVLineLeadsWithOrderedKeys(t *testing.T) {
	buf := &bytes.Buffer{}
	h, aw := newCaptureHandler(buf, formatKV)

	ctx := WithRID(Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)
	log := slog.New(h).With("component", "app")
	LogEvent(ctx, log, slog.LevelInfo, "test.event",
		slog.String("status", "ok"),
		slog.String("cause", "unit"),
	)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)
	tokens := strings.Split(line, " ")
	require.GreaterOrEqual(t, len(tokens), 6, "line: %s", line)
	prefixes := []string{"ts=", "level=INFO", "component=app", "event=test.event", "status=ok", "rid=rid-123"}
	for i, prefix := range prefixes {
		assert.Truef(t, strings.HasPrefix(tokens[i], prefix),
			"token %d = %s, expected prefix %s", i, tokens[i], prefix)
	}
}

func TestJSONLineKeepsKeyOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	h, aw := newCaptureHandler(buf, formatJSON)

	ctx := WithRID(Background(), "rid-json")
	ctx = WithUpdateMeta(ctx, 11, 22, 33)
	log := slog.New(h).With("component", "store")
	LogEvent(ctx, log, slog.LevelError, "store.save_failed",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
	)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())

	line := strings.TrimSpace(buf.String())
	require.True(t, strings.HasPrefix(line, "{"), "expected JSON, got %s", line)
	pos := -1
	for _, pref := range []string{`{"ts":`, `"level":"ERROR"`, `"component":"store"`, `"event":"store.save_failed"`, `"status":"fail"`, `"rid":"rid-json"`} {
		idx := strings.Index(line, pref)
		require.Truef(t, idx > pos, "prefix %s out of order in %s", pref, line)
		pos = idx
	}
	assert.Contains(t, line, `"ts_unix_nano"`)
}

func TestRIDCompactedInOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	h, aw := newCaptureHandler(buf, formatKV)

	rawRID := "123:456:789"
	ctx := WithRID(Background(), rawRID)
	LogEvent(ctx, slog.New(h).With("component", "app"), slog.LevelInfo, "rid.test",
		slog.String("status", "ok"),
	)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "rid="+CompactRID(rawRID))
	assert.NotContains(t, line, "rid_full=", "rid_full is JSON-only")
}

func TestRIDFullPreservedInJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	h, aw := newCaptureHandler(buf, formatJSON)

	rawRID := "12:34:56"
	ctx := WithRID(Background(), rawRID)
	LogEvent(ctx, slog.New(h).With("component", "app"), slog.LevelInfo, "rid.test",
		slog.String("status", "ok"),
	)
	require.NoError(t, aw.Flush())
	require.NoError(t, aw.Close())

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, `"rid":"`+CompactRID(rawRID)+`"`)
	assert.Contains(t, line, `"rid_full":"`+rawRID+`"`)
}

func TestCompactRIDRejectsNonNumeric(t *testing.T) {
	assert.Equal(t, "abc:def:ghi", CompactRID("abc:def:ghi"))
	assert.Equal(t, "1:2", CompactRID("1:2"))
	assert.Equal(t, "", CompactRID("  "))
	assert.Equal(t, "1.2.z", CompactRID("1:2:35"))
}

func TestSanitizeLimitStripsControls(t *testing.T) {
	assert.Equal(t, "ab", SanitizeLimit("a\x00b", 10))
	assert.Equal(t, "a\tb", SanitizeLimit("a\tb", 10))
	assert.Equal(t, "abc", SanitizeLimit("abcdef", 3))
	assert.Equal(t, "", SanitizeLimit("abc", 0))
}
