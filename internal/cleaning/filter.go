// Package cleaning replaces physically implausible well-log readings with
// missing markers so the gap-filling strategies treat them as gaps instead
// of trusting them. Dropping the whole row, the traditional field practice,
// throws away the good readings next to the bad one; converting to missing
// keeps the measurement density intact.
package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"loggap/internal/errors"
	"loggap/internal/logdata"
)

// Filter applies a RangeTable to a frame, converting out-of-range readings
// to missing values.
type Filter struct {
	table  RangeTable
	logger *slog.Logger
}

// NewFilter creates a range filter for the given table.
func NewFilter(table RangeTable, logger *slog.Logger) (*Filter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for col, bounds := range table {
		if !bounds.IsValid() {
			return nil, fmt.Errorf("invalid bounds for %s: lower=%g upper=%g", col, bounds.Lower, bounds.Upper)
		}
	}
	return &Filter{table: table, logger: logger}, nil
}

// Apply returns a copy of the frame with every configured channel's
// out-of-range readings replaced by the missing marker. Cells already
// missing stay missing; channels not in the table are untouched. A channel
// named in the table but absent from the frame is an error.
func (f *Filter) Apply(ctx context.Context, frame *logdata.Frame) (*logdata.Frame, error) {
	for col := range f.table {
		if !frame.HasColumn(col) {
			return nil, errors.ColumnNotFound(col)
		}
	}

	out := frame.Clone()
	replaced := make(map[string]int, len(f.table))

	// deterministic channel order for logging
	cols := make([]string, 0, len(f.table))
	for col := range f.table {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	total := 0
	for _, col := range cols {
		bounds := f.table[col]
		values, err := out.Column(col)
		if err != nil {
			return nil, err
		}
		n := 0
		for i, v := range values {
			if logdata.IsMissing(v) {
				continue
			}
			if !bounds.Contains(v) {
				values[i] = logdata.Missing
				n++
			}
		}
		replaced[col] = n
		total += n
	}

	f.logger.InfoContext(ctx, "range filter applied",
		"channels", len(cols),
		"replaced", total,
		"missing_after", out.MissingCount(),
	)
	for _, col := range cols {
		if replaced[col] > 0 {
			f.logger.DebugContext(ctx, "out-of-range readings converted",
				"channel", col,
				"count", replaced[col],
				"lower", f.table[col].Lower,
				"upper", f.table[col].Upper,
			)
		}
	}

	return out, nil
}
