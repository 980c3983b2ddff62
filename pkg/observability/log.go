package observability

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every pipeline event to a logger at debug level. Failed
// stages are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, records int, d time.Duration, err error) {
	h.done("load", err, "source", source, "records", records, "took", d)
}

func (h *LogHooks) OnAggregateStart(_ context.Context, records int) {
	h.logger.Debug("aggregate start", "records", records)
}

func (h *LogHooks) OnAggregateComplete(_ context.Context, categories int, total float64, d time.Duration, err error) {
	h.done("aggregate", err, "categories", categories, "total", total, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, categories int) {
	h.logger.Debug("layout start", "categories", categories)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, cells int, d time.Duration, err error) {
	h.done("layout", err, "cells", cells, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", strings.Join(formats, ","))
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", err, "formats", strings.Join(formats, ","), "took", d)
}

func (h *LogHooks) done(stage string, err error, kv ...any) {
	if err != nil {
		h.logger.Warn(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" complete", kv...)
}
