package impute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loggap/internal/logdata"
)

func TestEliminate(t *testing.T) {
	frame, err := logdata.NewFrame(
		[]float64{100.0, 100.5, 101.0, 101.5},
		[]string{"GR", "RHOB"},
		map[string][]float64{
			"GR":   {45.0, logdata.Missing, 52.0, 60.0},
			"RHOB": {2.3, 2.4, 2.5, logdata.Missing},
		},
	)
	require.NoError(t, err)

	out, err := NewEliminate(nil).Impute(context.Background(), frame)
	require.NoError(t, err)

	t.Run("only complete rows survive", func(t *testing.T) {
		assert.Equal(t, 2, out.Rows())
		assert.Equal(t, []float64{100.0, 101.0}, out.Depths())
		assert.True(t, out.IsComplete())
	})

	t.Run("columns unchanged", func(t *testing.T) {
		assert.Equal(t, frame.Columns(), out.Columns())
	})

	t.Run("input untouched", func(t *testing.T) {
		assert.Equal(t, 4, frame.Rows())
		assert.Equal(t, 2, frame.MissingCount())
	})
}

func TestEliminateAllRowsGapped(t *testing.T) {
	frame, err := logdata.NewFrame(
		[]float64{100.0, 100.5},
		[]string{"GR", "RHOB"},
		map[string][]float64{
			"GR":   {logdata.Missing, 50.0},
			"RHOB": {2.3, logdata.Missing},
		},
	)
	require.NoError(t, err)

	out, err := NewEliminate(nil).Impute(context.Background(), frame)
	require.NoError(t, err, "an empty result is valid, not an error")
	assert.Equal(t, 0, out.Rows())
	assert.Equal(t, frame.Columns(), out.Columns())
}
