package impute

import (
	"context"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"loggap/internal/errors"
	"loggap/internal/logdata"
)

// Mean replaces every gap in a column with the arithmetic mean of the
// column's observed samples.
type Mean struct {
	logger *slog.Logger
}

// NewMean creates the column-mean strategy.
func NewMean(logger *slog.Logger) *Mean {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mean{logger: logger}
}

// Name implements Strategy.
func (m *Mean) Name() string { return "mean" }

// Impute fills gaps with per-column means. A column with no observed
// samples has no mean; that is UndefinedStatistic, never a silent zero.
// Re-applying the strategy to its own output is a no-op.
func (m *Mean) Impute(ctx context.Context, frame *logdata.Frame) (*logdata.Frame, error) {
	out := frame.Clone()
	filled := 0

	for _, col := range out.Columns() {
		values, err := out.Column(col)
		if err != nil {
			return nil, err
		}

		observed := make([]float64, 0, len(values))
		for _, v := range values {
			if !logdata.IsMissing(v) {
				observed = append(observed, v)
			}
		}
		if len(observed) == len(values) {
			continue
		}
		if len(observed) == 0 {
			return nil, errors.UndefinedStatistic(col)
		}

		mean := stat.Mean(observed, nil)
		for i, v := range values {
			if logdata.IsMissing(v) {
				values[i] = mean
				filled++
			}
		}
	}

	m.logger.InfoContext(ctx, "mean imputation complete",
		"strategy", m.Name(),
		"filled", filled,
	)
	return out, nil
}
