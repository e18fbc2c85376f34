package impute

import (
	"context"
	"log/slog"

	"loggap/internal/errors"
	"loggap/internal/logdata"
)

// DefaultK is the neighbor count for the two neighbor-based strategies.
const DefaultK = 4

// KNN imputes each missing cell from the K most similar rows. Similarity
// is the mean squared difference over channels observed in both rows,
// scaled up by the fraction of channels compared, so rows with different
// missing patterns stay comparable.
type KNN struct {
	k      int
	logger *slog.Logger
}

// NewKNN creates the whole-row nearest-neighbor strategy.
func NewKNN(k int, logger *slog.Logger) *KNN {
	if k < 1 {
		k = DefaultK
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &KNN{k: k, logger: logger}
}

// Name implements Strategy.
func (k *KNN) Name() string { return "knn" }

// Impute fills every missing cell from its row's nearest neighbors.
// Candidate rows must have the target channel observed and at least one
// channel jointly observed with the query row; fewer than K candidates for
// any cell is InsufficientNeighbors. Neighbor search runs against the
// original gap pattern, so fill order cannot influence results.
func (k *KNN) Impute(ctx context.Context, frame *logdata.Frame) (*logdata.Frame, error) {
	out := frame.Clone()
	rows := frame.Rows()
	cols := frame.Columns()

	// row-major view of the input for distance computation
	matrix := make([][]float64, rows)
	for r := range matrix {
		matrix[r] = make([]float64, len(cols))
	}
	for c, col := range cols {
		values, err := frame.Column(col)
		if err != nil {
			return nil, err
		}
		for r := range values {
			matrix[r][c] = values[r]
		}
	}

	filled := 0
	for c, col := range cols {
		values, err := out.Column(col)
		if err != nil {
			return nil, err
		}
		for r := range values {
			if !logdata.IsMissing(values[r]) {
				continue
			}
			estimate, err := k.estimate(matrix, col, r, c)
			if err != nil {
				k.logger.WarnContext(ctx, "neighbor search failed",
					"strategy", k.Name(),
					"channel", col,
					"row", r,
					"error", err,
				)
				return nil, err
			}
			values[r] = estimate
			filled++
		}
	}

	k.logger.InfoContext(ctx, "knn imputation complete",
		"strategy", k.Name(),
		"k", k.k,
		"filled", filled,
	)
	return out, nil
}

// estimate predicts the cell (row, target) as the unweighted mean of the
// target channel in the k nearest candidate rows.
func (k *KNN) estimate(matrix [][]float64, column string, row, target int) (float64, error) {
	query := matrix[row]
	nbrs := newNeighborSet(k.k)
	candidates := 0

	for j, other := range matrix {
		if j == row || logdata.IsMissing(other[target]) {
			continue
		}
		dist, ok := partialDistance(query, other, target)
		if !ok {
			continue
		}
		candidates++
		nbrs.add(dist, other[target])
	}

	if !nbrs.full() {
		return logdata.Missing, errors.InsufficientNeighbors(column, row, candidates, k.k)
	}
	return nbrs.mean(), nil
}

// partialDistance is the squared distance over channels observed in both
// rows, excluding the target channel, scaled by total/observed channel
// count. It reports false when no channel is jointly observed.
func partialDistance(a, b []float64, target int) (float64, bool) {
	sum := 0.0
	shared := 0
	total := 0
	for i := range a {
		if i == target {
			continue
		}
		total++
		if logdata.IsMissing(a[i]) || logdata.IsMissing(b[i]) {
			continue
		}
		d := a[i] - b[i]
		sum += d * d
		shared++
	}
	if shared == 0 {
		return 0, false
	}
	return sum * float64(total) / float64(shared), true
}
