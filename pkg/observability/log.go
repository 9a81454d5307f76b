package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug records to a
// logger. The CLI installs it under --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to log.Default() if nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse start", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, clueCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("parse complete", "source", source, "clues", clueCount, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, source, format string) {
	h.logger.Debug("render start", "source", source, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, source, format string, pages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "source", source, "format", format, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "source", source, "format", format, "pages", pages, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "tier", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "tier", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "tier", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
