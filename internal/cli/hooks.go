package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks writes grid and pipeline events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnBuild(rows, cols, regions, dividers int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("grid build failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("grid build", "rows", rows, "cols", cols, "regions", regions, "dividers", dividers, "duration", d)
}

func (h logHooks) OnDrag(divider int, delta float64, affected int, d time.Duration, err error) {
	h.logger.Debug("drag", "divider", divider, "delta", delta, "affected", affected, "duration", d, "error", err)
}

func (h logHooks) OnRunStart(_ context.Context, formats []string) {
	h.logger.Debug("pipeline start", "formats", formats)
}

func (h logHooks) OnRunComplete(_ context.Context, formats []string, drags int, d time.Duration, err error) {
	h.logger.Debug("pipeline complete", "formats", formats, "drags", drags, "duration", d, "error", err)
}

func (h logHooks) OnExport(_ context.Context, format string, size int) {
	h.logger.Debug("exported", "format", format, "bytes", size)
}
