package impute

import (
	"context"
	"log/slog"

	"loggap/internal/logdata"
)

// DefaultMaxGap is the longest interior missing run the interpolation
// strategy will fill. Longer gaps are unreliable to interpolate across and
// are left untouched.
const DefaultMaxGap = 6

// Interpolate fills interior gaps by linear interpolation along the depth
// index. Leading and trailing missing runs are never filled: they come
// from sensor offset and unlogged intervals, not from dropped readings.
type Interpolate struct {
	maxGap int
	logger *slog.Logger
}

// NewInterpolate creates the bounded interior interpolation strategy.
func NewInterpolate(maxGap int, logger *slog.Logger) *Interpolate {
	if maxGap < 1 {
		maxGap = DefaultMaxGap
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpolate{maxGap: maxGap, logger: logger}
}

// Name implements Strategy.
func (ip *Interpolate) Name() string { return "interpolate" }

// Impute fills every interior missing run of length <= maxGap in every
// column. Interpolation weights by actual depth spacing, so unevenly
// sampled logs interpolate along depth rather than by sample count. A run
// longer than maxGap is left entirely missing rather than partially filled.
func (ip *Interpolate) Impute(ctx context.Context, frame *logdata.Frame) (*logdata.Frame, error) {
	out := frame.Clone()
	depths := out.Depths()
	filled, skipped := 0, 0

	for _, col := range out.Columns() {
		values, err := out.Column(col)
		if err != nil {
			return nil, err
		}

		for _, run := range interiorRuns(values) {
			if run.length() > ip.maxGap {
				skipped += run.length()
				continue
			}
			lo, hi := run.start-1, run.end // bounding observed samples
			for i := run.start; i < run.end; i++ {
				t := (depths[i] - depths[lo]) / (depths[hi] - depths[lo])
				values[i] = values[lo] + t*(values[hi]-values[lo])
				filled++
			}
		}
	}

	ip.logger.InfoContext(ctx, "interpolation complete",
		"strategy", ip.Name(),
		"max_gap", ip.maxGap,
		"filled", filled,
		"skipped_too_long", skipped,
	)
	return out, nil
}

// missingRun is a half-open run [start, end) of missing samples.
type missingRun struct {
	start, end int
}

func (r missingRun) length() int { return r.end - r.start }

// interiorRuns returns the missing runs bounded by observed samples on
// both sides. Runs touching either end of the column are excluded.
func interiorRuns(values []float64) []missingRun {
	var runs []missingRun
	n := len(values)

	i := 0
	for i < n {
		if !logdata.IsMissing(values[i]) {
			i++
			continue
		}
		start := i
		for i < n && logdata.IsMissing(values[i]) {
			i++
		}
		if start > 0 && i < n {
			runs = append(runs, missingRun{start: start, end: i})
		}
	}
	return runs
}
