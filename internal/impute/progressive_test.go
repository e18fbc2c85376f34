package impute

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "loggap/internal/errors"
	"loggap/internal/logdata"
)

func TestProgressiveSingleColumn(t *testing.T) {
	frame, err := logdata.NewFrame(
		[]float64{100.0, 100.5, 101.0, 101.5, 102.0, 102.5},
		[]string{"GR", "DT"},
		map[string][]float64{
			"GR": {1.0, 2.0, 3.0, 4.0, 5.0, 6.0},
			"DT": {10.0, 20.0, 30.0, 40.0, 50.0, logdata.Missing},
		},
	)
	require.NoError(t, err)

	out, err := NewProgressive(4, nil, nil).Impute(context.Background(), frame)
	require.NoError(t, err)

	dt, _ := out.Column("DT")
	// neighbors of GR=6 among trained rows are GR=5,4,3,2
	assert.InDelta(t, 35.0, dt[5], 1e-9)
	assert.True(t, out.IsComplete())

	t.Run("input untouched", func(t *testing.T) {
		assert.Equal(t, 1, frame.MissingCount())
	})
}

func TestProgressiveDisjointMissingConverges(t *testing.T) {
	// every column has gaps, at disjoint rows; the state machine must
	// bootstrap and converge to a fully observed frame
	nan := logdata.Missing
	depths := make([]float64, 10)
	for i := range depths {
		depths[i] = 100.0 + 0.5*float64(i)
	}

	frame, err := logdata.NewFrame(
		depths,
		[]string{"A", "B", "C"},
		map[string][]float64{
			"A": {nan, nan, 3, 4, 5, 6, 7, 8, 9, 10},
			"B": {1, 2, nan, nan, 5, 6, 7, 8, 9, 10},
			"C": {1, 2, 3, 4, nan, nan, 7, 8, 9, 10},
		},
	)
	require.NoError(t, err)

	out, err := NewProgressive(4, nil, nil).Impute(context.Background(), frame)
	require.NoError(t, err)
	assert.Equal(t, 0, out.MissingCount())
}

func TestProgressiveUsesEarlierFills(t *testing.T) {
	// B's regressor must see A as a predictor once A is complete
	nan := logdata.Missing
	frame, err := logdata.NewFrame(
		[]float64{100.0, 100.5, 101.0, 101.5, 102.0, 102.5},
		[]string{"GR", "A", "B"},
		map[string][]float64{
			"GR": {1.0, 2.0, 3.0, 4.0, 5.0, 6.0},
			"A":  {10.0, 20.0, 30.0, 40.0, 50.0, nan},
			"B":  {5.0, 6.0, 7.0, 8.0, nan, nan},
		},
	)
	require.NoError(t, err)

	out, err := NewProgressive(4, nil, nil).Impute(context.Background(), frame)
	require.NoError(t, err)
	require.True(t, out.IsComplete())

	a, _ := out.Column("A")
	assert.InDelta(t, 35.0, a[5], 1e-9, "A filled from GR alone")
}

func TestProgressiveDeterminism(t *testing.T) {
	nan := logdata.Missing
	build := func() *logdata.Frame {
		frame, err := logdata.NewFrame(
			[]float64{1, 2, 3, 4, 5, 6, 7, 8},
			[]string{"A", "B", "C"},
			map[string][]float64{
				"A": {1, 2, 3, 4, 5, 6, 7, 8},
				"B": {2, 4, 6, 8, 10, nan, 14, nan},
				"C": {3, 6, 9, 12, nan, 18, nan, 24},
			},
		)
		require.NoError(t, err)
		return frame
	}

	first, err := NewProgressive(4, nil, nil).Impute(context.Background(), build())
	require.NoError(t, err)
	second, err := NewProgressive(4, nil, nil).Impute(context.Background(), build())
	require.NoError(t, err)

	for _, col := range first.Columns() {
		a, _ := first.Column(col)
		b, _ := second.Column(col)
		assert.Equal(t, a, b, "column %s must be reproducible", col)
	}
}

func TestProgressiveCustomOrder(t *testing.T) {
	nan := logdata.Missing
	build := func() *logdata.Frame {
		frame, err := logdata.NewFrame(
			[]float64{1, 2, 3, 4, 5, 6, 7, 8},
			[]string{"A", "B", "C"},
			map[string][]float64{
				"A": {1, 2, 3, 4, 5, 6, 7, 8},
				"B": {2, 4, 6, 8, 10, 12, nan, nan},
				"C": {1, 3, 5, 7, nan, nan, 13, 15},
			},
		)
		require.NoError(t, err)
		return frame
	}

	forward, err := NewProgressive(4, []string{"B", "C"}, nil).Impute(context.Background(), build())
	require.NoError(t, err)
	reverse, err := NewProgressive(4, []string{"C", "B"}, nil).Impute(context.Background(), build())
	require.NoError(t, err)

	assert.Equal(t, 0, forward.MissingCount())
	assert.Equal(t, 0, reverse.MissingCount())

	// filling C first lets C's estimates influence B's regression, so the
	// two orders need not agree cell for cell
	bForward, _ := forward.Column("B")
	bReverse, _ := reverse.Column("B")
	assert.Len(t, bReverse, len(bForward))
}

func TestProgressiveInsufficientTrainingData(t *testing.T) {
	nan := logdata.Missing
	frame, err := logdata.NewFrame(
		[]float64{1, 2, 3},
		[]string{"A", "B"},
		map[string][]float64{
			"A": {1, 2, 3},
			"B": {5, nan, nan},
		},
	)
	require.NoError(t, err)

	_, err = NewProgressive(4, nil, nil).Impute(context.Background(), frame)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, domainerrors.ErrInsufficientTrainingData))
}

func TestProgressiveAllMissingColumn(t *testing.T) {
	nan := logdata.Missing
	frame, err := logdata.NewFrame(
		[]float64{1, 2, 3, 4, 5},
		[]string{"A", "B"},
		map[string][]float64{
			"A": {1, 2, 3, 4, 5},
			"B": {nan, nan, nan, nan, nan},
		},
	)
	require.NoError(t, err)

	_, err = NewProgressive(4, nil, nil).Impute(context.Background(), frame)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, domainerrors.ErrInsufficientTrainingData),
		"a column with no observations cannot train a regressor")
}

func TestProgressiveCompleteFrameIsNoop(t *testing.T) {
	frame, err := logdata.NewFrame(
		[]float64{1, 2},
		[]string{"A"},
		map[string][]float64{"A": {1, 2}},
	)
	require.NoError(t, err)

	out, err := NewProgressive(4, nil, nil).Impute(context.Background(), frame)
	require.NoError(t, err)
	a, _ := out.Column("A")
	assert.Equal(t, []float64{1, 2}, a)
}

func TestNeighborSet(t *testing.T) {
	s := newNeighborSet(2)
	s.add(5.0, 50)
	assert.False(t, s.full())
	s.add(1.0, 10)
	require.True(t, s.full())

	// closer candidate evicts the farthest
	s.add(2.0, 20)
	assert.InDelta(t, 15.0, s.mean(), 1e-9)

	// farther candidate ignored
	s.add(9.0, 90)
	assert.InDelta(t, 15.0, s.mean(), 1e-9)
	assert.Equal(t, 2, s.size())
}

func TestEuclidSquared(t *testing.T) {
	assert.Equal(t, 0.0, euclidSquared([]float64{1, 2}, []float64{1, 2}))
	assert.Equal(t, 25.0, euclidSquared([]float64{0, 3}, []float64{4, 0}))
	assert.False(t, math.IsNaN(euclidSquared(nil, nil)))
}
