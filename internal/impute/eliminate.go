package impute

import (
	"context"
	"log/slog"

	"loggap/internal/logdata"
)

// Eliminate removes every row containing at least one missing sample. This
// is the traditional field practice; it is included as the baseline the
// other strategies are measured against.
type Eliminate struct {
	logger *slog.Logger
}

// NewEliminate creates the row-elimination strategy.
func NewEliminate(logger *slog.Logger) *Eliminate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Eliminate{logger: logger}
}

// Name implements Strategy.
func (e *Eliminate) Name() string { return "eliminate" }

// Impute returns the subset of rows with no missing sample in any column,
// depth index preserved. An empty result is valid: it means every row had
// at least one gap.
func (e *Eliminate) Impute(ctx context.Context, frame *logdata.Frame) (*logdata.Frame, error) {
	var keep []int
	for row := 0; row < frame.Rows(); row++ {
		if !frame.RowMissing(row) {
			keep = append(keep, row)
		}
	}

	out := frame.SelectRows(keep)
	e.logger.InfoContext(ctx, "row elimination complete",
		"strategy", e.Name(),
		"rows_in", frame.Rows(),
		"rows_out", out.Rows(),
	)
	return out, nil
}
