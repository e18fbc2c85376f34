package impute

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loggap/internal/logdata"
)

func singleColumnFrame(t *testing.T, depths, gr []float64) *logdata.Frame {
	t.Helper()
	frame, err := logdata.NewFrame(depths, []string{"GR"}, map[string][]float64{"GR": gr})
	require.NoError(t, err)
	return frame
}

func TestInterpolateShortInteriorGap(t *testing.T) {
	frame := singleColumnFrame(t,
		[]float64{100.0, 100.5, 101.0, 101.5, 102.0},
		[]float64{45.0, logdata.Missing, logdata.Missing, logdata.Missing, 60.0},
	)

	out, err := NewInterpolate(6, nil).Impute(context.Background(), frame)
	require.NoError(t, err)

	gr, _ := out.Column("GR")
	assert.InDelta(t, 48.75, gr[1], 1e-9)
	assert.InDelta(t, 52.5, gr[2], 1e-9)
	assert.InDelta(t, 56.25, gr[3], 1e-9)
	assert.True(t, out.IsComplete())
}

func TestInterpolateGapLongerThanLimit(t *testing.T) {
	t.Run("limit 1 leaves a 3-sample gap untouched", func(t *testing.T) {
		frame := singleColumnFrame(t,
			[]float64{100.0, 100.5, 101.0, 101.5, 102.0},
			[]float64{45.0, logdata.Missing, logdata.Missing, logdata.Missing, 60.0},
		)

		out, err := NewInterpolate(1, nil).Impute(context.Background(), frame)
		require.NoError(t, err)

		gr, _ := out.Column("GR")
		for _, i := range []int{1, 2, 3} {
			assert.True(t, math.IsNaN(gr[i]), "row %d must stay missing", i)
		}
	})

	t.Run("run of 7 fully skipped, run of 6 fully filled", func(t *testing.T) {
		depths := make([]float64, 17)
		gr := make([]float64, 17)
		for i := range depths {
			depths[i] = 100.0 + 0.5*float64(i)
			gr[i] = logdata.Missing
		}
		// run of 6 between rows 0 and 7, run of 7 between rows 8 and 16
		gr[0], gr[7], gr[8], gr[16] = 10.0, 80.0, 90.0, 20.0

		out, err := NewInterpolate(6, nil).Impute(context.Background(), singleColumnFrame(t, depths, gr))
		require.NoError(t, err)

		values, _ := out.Column("GR")
		for i := 1; i < 7; i++ {
			assert.False(t, math.IsNaN(values[i]), "row %d in the short run should be filled", i)
		}
		for i := 9; i < 16; i++ {
			assert.True(t, math.IsNaN(values[i]), "row %d in the long run should stay missing", i)
		}
	})
}

func TestInterpolateEdgesNeverFilled(t *testing.T) {
	input := singleColumnFrame(t,
		[]float64{100.0, 100.5, 101.0, 101.5, 102.0, 102.5},
		[]float64{logdata.Missing, logdata.Missing, 50.0, logdata.Missing, 55.0, logdata.Missing},
	)

	out, err := NewInterpolate(6, nil).Impute(context.Background(), input)
	require.NoError(t, err)

	gr, _ := out.Column("GR")
	assert.True(t, math.IsNaN(gr[0]), "leading run stays missing")
	assert.True(t, math.IsNaN(gr[1]), "leading run stays missing")
	assert.InDelta(t, 52.5, gr[3], 1e-9, "interior gap filled")
	assert.True(t, math.IsNaN(gr[5]), "trailing run stays missing")
}

func TestInterpolateWeightsByDepth(t *testing.T) {
	// uneven spacing: the gap sits a quarter of the way between its bounds
	input := singleColumnFrame(t,
		[]float64{100.0, 100.5, 102.0},
		[]float64{40.0, logdata.Missing, 80.0},
	)

	out, err := NewInterpolate(6, nil).Impute(context.Background(), input)
	require.NoError(t, err)

	gr, _ := out.Column("GR")
	assert.InDelta(t, 50.0, gr[1], 1e-9)
}

func TestInteriorRuns(t *testing.T) {
	nan := logdata.Missing
	tests := []struct {
		name   string
		values []float64
		runs   []missingRun
	}{
		{"no gaps", []float64{1, 2, 3}, nil},
		{"single interior", []float64{1, nan, 3}, []missingRun{{1, 2}}},
		{"leading excluded", []float64{nan, nan, 3, nan, 5}, []missingRun{{3, 4}}},
		{"trailing excluded", []float64{1, nan, 3, nan, nan}, []missingRun{{1, 2}}},
		{"all missing", []float64{nan, nan, nan}, nil},
		{"adjacent runs", []float64{1, nan, 3, nan, nan, 6}, []missingRun{{1, 2}, {3, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.runs, interiorRuns(tt.values))
		})
	}
}
