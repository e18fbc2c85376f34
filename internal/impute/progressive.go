package impute

import (
	"context"
	"log/slog"

	"loggap/internal/errors"
	"loggap/internal/logdata"
)

// Progressive fills missing columns one at a time with a K-nearest-neighbor
// regressor, always training on rows where the target is observed and
// predicting from columns that are already complete. A column filled in an
// earlier round becomes a predictor for later rounds, so later columns see
// more features than a one-shot imputer would give them.
//
// The fill order is deterministic and matters: filling column A before B
// means B is predicted partly from A's estimates, not the reverse. The
// default order is the frame's column order; a custom order may be
// supplied to pin down specific results.
type Progressive struct {
	k      int
	order  []string
	logger *slog.Logger
}

// NewProgressive creates the progressive regression strategy. order may be
// nil to fill in frame column order; a partial order lists the columns to
// prioritize, with the rest following in frame order.
func NewProgressive(k int, order []string, logger *slog.Logger) *Progressive {
	if k < 1 {
		k = DefaultK
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Progressive{k: k, order: order, logger: logger}
}

// Name implements Strategy.
func (p *Progressive) Name() string { return "progressive" }

// Impute runs the pending/ready state machine to completion. Each round
// moves exactly one column from pending to ready and never moves one back,
// so the loop terminates after at most len(pending) rounds. The invariant
// throughout is that every ready column has zero missing cells, which
// guarantees each regressor trains on a complete feature matrix.
func (p *Progressive) Impute(ctx context.Context, frame *logdata.Frame) (*logdata.Frame, error) {
	out := frame.Clone()

	pending := p.fillOrder(out)
	ready := make([]string, 0, len(out.Columns()))
	for _, col := range out.Columns() {
		if !contains(pending, col) {
			ready = append(ready, col)
		}
	}

	rounds := 0
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target := pending[0]
		if err := p.fillColumn(out, target, ready); err != nil {
			return nil, err
		}

		pending = pending[1:]
		ready = append(ready, target)
		rounds++

		p.logger.DebugContext(ctx, "column completed",
			"strategy", p.Name(),
			"channel", target,
			"round", rounds,
			"predictors", len(ready)-1,
		)
	}

	p.logger.InfoContext(ctx, "progressive imputation complete",
		"strategy", p.Name(),
		"k", p.k,
		"rounds", rounds,
		"missing_after", out.MissingCount(),
	)
	return out, nil
}

// fillOrder returns the columns still containing gaps, in fill order.
func (p *Progressive) fillOrder(frame *logdata.Frame) []string {
	withMissing := frame.ColumnsWithMissing()
	if len(p.order) == 0 {
		return withMissing
	}

	var ordered []string
	for _, col := range p.order {
		if contains(withMissing, col) && !contains(ordered, col) {
			ordered = append(ordered, col)
		}
	}
	for _, col := range withMissing {
		if !contains(ordered, col) {
			ordered = append(ordered, col)
		}
	}
	return ordered
}

// fillColumn trains a KNN regressor for target on the ready predictors and
// writes predictions into the target's missing cells.
func (p *Progressive) fillColumn(frame *logdata.Frame, target string, ready []string) error {
	values, err := frame.Column(target)
	if err != nil {
		return err
	}

	predictors := make([][]float64, len(ready))
	for i, col := range ready {
		predictors[i], err = frame.Column(col)
		if err != nil {
			return err
		}
	}

	var train, test []int
	for row := range values {
		if logdata.IsMissing(values[row]) {
			test = append(test, row)
		} else {
			train = append(train, row)
		}
	}
	if len(train) < p.k {
		return errors.InsufficientTrainingData(target, len(train), p.k)
	}

	// With no completed predictor yet every training row sits at distance
	// zero, so the regression degenerates to the observed mean. This only
	// happens on the first round of a dataset where every column has gaps.
	if len(predictors) == 0 {
		sum := 0.0
		for _, tr := range train {
			sum += values[tr]
		}
		mean := sum / float64(len(train))
		for _, row := range test {
			values[row] = mean
		}
		return nil
	}

	// materialize feature vectors once; ready columns are complete so
	// every vector is fully observed
	features := make([][]float64, len(values))
	for row := range features {
		f := make([]float64, len(predictors))
		for i := range predictors {
			f[i] = predictors[i][row]
		}
		features[row] = f
	}

	for _, row := range test {
		nbrs := newNeighborSet(p.k)
		for _, tr := range train {
			nbrs.add(euclidSquared(features[row], features[tr]), values[tr])
		}
		values[row] = nbrs.mean()
	}
	return nil
}

// euclidSquared is the squared Euclidean distance between two complete
// feature vectors.
func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
