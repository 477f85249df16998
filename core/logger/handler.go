package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

type logFormat string

const (
	formatJSON logFormat = "json"
	formatKV   logFormat = "kv"

	timeFormatMillis = "2006-01-02T15:04:05.000Z07:00"
)

type handlerConfig struct {
	level    slog.Leveler
	writer   *asyncWriter
	format   logFormat
	keyOrder []string
}

// record is the flattened field set of a single log line.
type record map[string]any

// structuredHandler is the single slog.Handler behind every logger in the
// process. It flattens groups, pulls update metadata out of the context,
// normalizes enum-ish attributes, and emits one line per record in either
// JSON or key=value form with a stable key order.
type structuredHandler struct {
	cfg    handlerConfig
	attrs  []slog.Attr
	groups []string
}

func newStructuredHandler(cfg handlerConfig) *structuredHandler {
	if cfg.level == nil {
		cfg.level = slog.LevelInfo
	}
	if cfg.keyOrder == nil {
		cfg.keyOrder = append([]string(nil), defaultKeyOrder...)
	}
	return &structuredHandler{cfg: cfg}
}

func (h *structuredHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.cfg.level.Level()
}

func (h *structuredHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg.writer == nil {
		return fmt.Errorf("logger: writer not initialized")
	}

	isJSON := h.cfg.format == formatJSON
	ts := r.Time.UTC()

	rec := make(record, 16)
	rec["ts"] = ts.Truncate(time.Millisecond).Format(timeFormatMillis)
	rec["level"] = normalizeLevel(r.Level.String())
	if isJSON {
		rec["ts_unix_nano"] = ts.UnixNano()
	}

	for _, a := range h.attrs {
		h.collect(rec, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.collect(rec, a)
		return true
	})
	rec.fromContext(ctx)
	rec.compactRID(isJSON)

	if event, ok := rec.str("event"); !ok || event == "" {
		rec["event"] = r.Message
		if r.Message == "" {
			rec["event"] = "unknown"
		}
	}
	if component, ok := rec.str("component"); !ok || component == "" {
		rec["component"] = "app"
	}

	rec.sanitize()
	rec.prune()

	line, err := h.render(rec)
	if err != nil {
		return err
	}
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}
	return h.cfg.writer.Write(line)
}

func (h *structuredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *structuredHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *structuredHandler) collect(rec record, attr slog.Attr) {
	flattenAttr(strings.Join(h.groups, "."), attr, func(k string, v slog.Value) {
		if k == "" {
			return
		}
		if key, val, ok := normalizeAttr(k, v); ok {
			rec[key] = val
		}
	})
}

func (h *structuredHandler) render(rec record) ([]byte, error) {
	if h.cfg.format == formatJSON {
		return rec.jsonLine(h.cfg.keyOrder)
	}
	return rec.kvLine(h.cfg.keyOrder), nil
}

func flattenAttr(prefix string, attr slog.Attr, fn func(string, slog.Value)) {
	key := attr.Key
	if key == "" {
		key = prefix
	} else if prefix != "" {
		key = prefix + "." + key
	}
	if attr.Value.Kind() == slog.KindGroup {
		for _, child := range attr.Value.Group() {
			flattenAttr(key, child, fn)
		}
		return
	}
	fn(key, attr.Value)
}

// durationKey renames duration attributes so the unit is visible in the key.
func durationKey(key string) string {
	switch {
	case key == "duration":
		return "duration_ms"
	case strings.HasSuffix(key, "_duration"):
		return strings.TrimSuffix(key, "_duration") + "_duration_ms"
	case strings.HasSuffix(key, "_ms"):
		return key
	}
	return key + "_ms"
}

func normalizeAttr(key string, val slog.Value) (string, any, bool) {
	if key == "" {
		return "", nil, false
	}
	switch val.Kind() {
	case slog.KindString:
		return key, strings.TrimSpace(val.String()), true
	case slog.KindBool:
		return key, val.Bool(), true
	case slog.KindInt64:
		return key, val.Int64(), true
	case slog.KindUint64:
		u := val.Uint64()
		if u <= math.MaxInt64 {
			return key, int64(u), true
		}
		return key, u, true
	case slog.KindFloat64:
		return key, val.Float64(), true
	case slog.KindDuration:
		return durationKey(key), RoundMS(val.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, val.Time().UTC().Format(time.RFC3339Nano), true
	case slog.KindAny:
		switch x := val.Any().(type) {
		case error:
			return key, x.Error(), true
		case string:
			return key, strings.TrimSpace(x), true
		case time.Duration:
			return durationKey(key), RoundMS(x).Milliseconds(), true
		case fmt.Stringer:
			return key, x.String(), true
		case nil:
			return key, nil, false
		default:
			return key, fmt.Sprint(x), true
		}
	}
	return key, val.Any(), true
}

// compactRID moves the full rid to rid_full (JSON only) and keeps the
// compact base36 form in the rid column.
func (rec record) compactRID(keepFull bool) {
	rid, ok := rec.str("rid")
	if !ok || rid == "" {
		return
	}
	compact := CompactRID(rid)
	if compact == "" || compact == rid {
		return
	}
	if keepFull {
		if _, seen := rec["rid_full"]; !seen {
			rec["rid_full"] = rid
		}
	}
	rec["rid"] = compact
}

func (rec record) sanitize() {
	if level, ok := rec.str("level"); ok {
		rec["level"] = normalizeLevel(level)
	}
	if s, ok := rec.str("status"); ok && s != "" {
		if normalized, valid := normalizeStatus(s); valid {
			rec["status"] = normalized
		}
	}
	if o, ok := rec.str("outcome"); ok && o != "" {
		normalized, valid := normalizeOutcome(o)
		if valid {
			rec["outcome"] = normalized
		} else {
			delete(rec, "outcome")
		}
	}
}

func (rec record) prune() {
	for k, v := range rec {
		switch val := v.(type) {
		case string:
			if val == "" {
				delete(rec, k)
			}
		case fmt.Stringer:
			if val.String() == "" {
				delete(rec, k)
			}
		case nil:
			delete(rec, k)
		}
	}
}

func (rec record) jsonLine(order []string) ([]byte, error) {
	var buf strings.Builder
	buf.WriteByte('{')
	first := true
	visited := make(map[string]struct{}, len(rec))
	emit := func(k string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(strconv.Quote(k))
		buf.WriteByte(':')
		buf.Write(data)
		visited[k] = struct{}{}
		return nil
	}
	for _, key := range order {
		if val, ok := rec[key]; ok {
			if err := emit(key, val); err != nil {
				return nil, err
			}
		}
	}
	rest := make([]string, 0, len(rec))
	for k := range rec {
		if _, seen := visited[k]; !seen {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		if err := emit(key, rec[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return []byte(buf.String()), nil
}

func (rec record) kvLine(order []string) []byte {
	var b strings.Builder
	for i, key := range rec.orderedKeys(order) {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(kvValue(rec[key]))
	}
	return []byte(b.String())
}

// orderedKeys lists rec's keys with the configured prefix order first and
// everything else sorted after it.
func (rec record) orderedKeys(order []string) []string {
	keys := make([]string, 0, len(rec))
	seen := make(map[string]struct{}, len(rec))
	for _, key := range order {
		if _, ok := rec[key]; ok {
			keys = append(keys, key)
			seen[key] = struct{}{}
		}
	}
	prefixLen := len(keys)
	for key := range rec {
		if _, ok := seen[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys[prefixLen:])
	return keys
}

func kvValue(val any) string {
	switch v := val.(type) {
	case string:
		if v != "" && strings.IndexFunc(v, needsQuote) >= 0 {
			return strconv.Quote(v)
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		s := fmt.Sprint(v)
		if strings.IndexFunc(s, needsQuote) >= 0 {
			return strconv.Quote(s)
		}
		return s
	}
}

func needsQuote(r rune) bool {
	return r <= 32 || r == '=' || r == '"'
}

func (rec record) str(key string) (string, bool) {
	v, ok := rec[key]
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}

func (rec record) setIfAbsent(key string, val any) {
	if _, ok := rec[key]; !ok {
		rec[key] = val
	}
}

func (rec record) fromContext(ctx context.Context) {
	if ctx == nil {
		return
	}
	if rid := RIDFrom(ctx); rid != "" {
		rec.setIfAbsent("rid", rid)
	}
	if uid := UserIDFrom(ctx); uid != 0 {
		rec.setIfAbsent("user_id", uid)
	}
	if updateID := UpdateIDFrom(ctx); updateID != 0 {
		rec.setIfAbsent("update_id", updateID)
	}
	if cid := ChatIDFrom(ctx); cid != 0 {
		rec.setIfAbsent("chat_id", cid)
	}
	if handler := HandlerFrom(ctx); handler != "" {
		rec.setIfAbsent("handler", handler)
	}
}
