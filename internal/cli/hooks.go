package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/observability"
)

// logHooks reports pipeline, cache, store and HTTP events as debug log lines,
// so -v shows what every command touched.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks for every observability category.
func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetStoreHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnMutation(_ context.Context, street, op, row string, err error) {
	if err != nil {
		h.logger.Debug("mutation rejected", "street", street, "op", op, "row", row, "code", errors.GetCode(err))
		return
	}
	h.logger.Debug("mutation", "street", street, "op", op, "row", row)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.logger.Debug("render done", "format", format, "duration", d.Round(time.Microsecond), "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnStoreOp(_ context.Context, op, street string, d time.Duration, err error) {
	h.logger.Debug("store", "op", op, "street", street, "duration", d.Round(time.Microsecond), "error", err)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("served", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}
