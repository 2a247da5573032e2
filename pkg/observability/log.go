package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that write to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnParseStart(_ context.Context, kind string, inputBytes int) {
	h.Logger.Debug("parse start", "kind", kind, "bytes", inputBytes)
}

func (h *LogHooks) OnParseComplete(_ context.Context, kind string, nodeCount int, d time.Duration, err error) {
	h.done("parse", err, "kind", kind, "nodes", nodeCount, "duration", d)
}

func (h *LogHooks) OnConvertStart(_ context.Context, kind string, nodeCount int) {
	h.Logger.Debug("convert start", "kind", kind, "nodes", nodeCount)
}

func (h *LogHooks) OnConvertComplete(_ context.Context, kind string, nodes, edges int, d time.Duration, err error) {
	h.done("convert", err, "kind", kind, "nodes", nodes, "edges", edges, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Warn("request failed", "method", method, "path", path, "err", err)
}

func (h *LogHooks) done(stage string, err error, kv ...any) {
	if err != nil {
		h.Logger.Warn(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(stage+" complete", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
