// Package pipeline runs the gap-filling comparison: one range-filter pass
// over the source frame, then every imputation strategy on its own copy of
// the filtered result. Strategies are independent, so they run
// concurrently; a failing strategy is reported alongside the outputs of
// its siblings instead of aborting them.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"loggap/internal/cleaning"
	"loggap/internal/impute"
	"loggap/internal/logdata"
)

// DefaultTimeout bounds one full pipeline run.
const DefaultTimeout = 10 * time.Minute

// Result holds the filtered input and every strategy's outcome.
type Result struct {
	// Filtered is the range-filtered source all strategies consumed.
	Filtered *logdata.Frame
	// Outputs maps strategy name to its derived frame.
	Outputs map[string]*logdata.Frame
	// Failures maps strategy name to its error for strategies that
	// signalled insufficient data.
	Failures map[string]error
	// Elapsed is the wall time of the whole run.
	Elapsed time.Duration
}

// Runner orchestrates the filter and the strategies.
type Runner struct {
	filter         *cleaning.Filter
	strategies     []impute.Strategy
	logger         *slog.Logger
	maxConcurrency int
	timeout        time.Duration
}

// NewRunner creates a pipeline runner. maxConcurrency <= 0 means no limit
// on concurrently running strategies.
func NewRunner(filter *cleaning.Filter, strategies []impute.Strategy, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		filter:         filter,
		strategies:     strategies,
		logger:         logger,
		maxConcurrency: 0,
		timeout:        DefaultTimeout,
	}
}

// SetConfiguration adjusts concurrency and timeout.
func (r *Runner) SetConfiguration(maxConcurrency int, timeout time.Duration) {
	r.maxConcurrency = maxConcurrency
	if timeout > 0 {
		r.timeout = timeout
	}
}

// Run filters the frame once and fans the strategies out over it. The
// returned error is non-nil only when the filter fails or every strategy
// fails; individual strategy failures are reported in Result.Failures.
func (r *Runner) Run(ctx context.Context, frame *logdata.Frame) (*Result, error) {
	start := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.InfoContext(ctx, "starting gap-filling pipeline",
		"rows", frame.Rows(),
		"channels", len(frame.Columns()),
		"missing_before_filter", frame.MissingCount(),
		"strategies", len(r.strategies),
	)

	filtered, err := r.filter.Apply(runCtx, frame)
	if err != nil {
		r.logger.ErrorContext(ctx, "range filter failed", "error", err)
		return nil, fmt.Errorf("apply range filter: %w", err)
	}

	result := &Result{
		Filtered: filtered,
		Outputs:  make(map[string]*logdata.Frame, len(r.strategies)),
		Failures: make(map[string]error),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(runCtx)
	if r.maxConcurrency > 0 {
		g.SetLimit(r.maxConcurrency)
	}

	for _, strategy := range r.strategies {
		strategy := strategy
		g.Go(func() error {
			name := strategy.Name()
			// strategies clone internally; the shared filtered frame is
			// read-only to them
			out, err := strategy.Impute(gctx, filtered)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// insufficient data for one strategy must not abort
				// its siblings, so the failure is recorded, not returned
				result.Failures[name] = err
				r.logger.WarnContext(ctx, "strategy failed",
					"strategy", name,
					"error", err,
				)
				return nil
			}
			result.Outputs[name] = out
			r.logger.InfoContext(ctx, "strategy complete",
				"strategy", name,
				"rows", out.Rows(),
				"missing_after", out.MissingCount(),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run strategies: %w", err)
	}

	result.Elapsed = time.Since(start)
	if len(r.strategies) > 0 && len(result.Outputs) == 0 {
		return nil, fmt.Errorf("all %d strategies failed", len(r.strategies))
	}

	r.logger.InfoContext(ctx, "pipeline complete",
		"succeeded", len(result.Outputs),
		"failed", len(result.Failures),
		"elapsed", result.Elapsed,
	)
	return result, nil
}

// DefaultStrategies returns the five comparison strategies with the given
// parameters, in their conventional order.
func DefaultStrategies(k, maxGap int, order []string, logger *slog.Logger) []impute.Strategy {
	return []impute.Strategy{
		impute.NewEliminate(logger),
		impute.NewMean(logger),
		impute.NewInterpolate(maxGap, logger),
		impute.NewKNN(k, logger),
		impute.NewProgressive(k, order, logger),
	}
}
