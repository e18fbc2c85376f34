package logdata

import (
	"math"

	"loggap/internal/errors"
)

// Missing is the in-memory marker for a missing sample. Gaps are NaN rather
// than zero so arithmetic over a column can never silently absorb them.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Frame is a depth-indexed multivariate well-log table. The depth index is
// strictly ascending and shared by every column; cells are float64 with NaN
// marking missing samples. Columns keep their load order, which also fixes
// the default fill order of the progressive imputer.
type Frame struct {
	depths  []float64
	columns []string
	data    map[string][]float64
}

// NewFrame creates a frame from a depth index and named columns. The depth
// index must be strictly ascending and every column must match its length.
func NewFrame(depths []float64, columns []string, data map[string][]float64) (*Frame, error) {
	for i := 1; i < len(depths); i++ {
		if depths[i] <= depths[i-1] {
			return nil, errors.NewWithDetails("UNSORTED_DEPTH",
				"depth index must be strictly ascending", depths[i])
		}
	}
	d := make(map[string][]float64, len(columns))
	for _, col := range columns {
		values, ok := data[col]
		if !ok {
			return nil, errors.ColumnNotFound(col)
		}
		if len(values) != len(depths) {
			return nil, errors.NewWithDetails("SHAPE_MISMATCH",
				"column length does not match depth index", col)
		}
		d[col] = append([]float64(nil), values...)
	}
	return &Frame{
		depths:  append([]float64(nil), depths...),
		columns: append([]string(nil), columns...),
		data:    d,
	}, nil
}

// Clone returns a deep copy. Strategies derive their working dataset from a
// clone so the shared filtered input is never mutated.
func (f *Frame) Clone() *Frame {
	data := make(map[string][]float64, len(f.columns))
	for _, col := range f.columns {
		data[col] = append([]float64(nil), f.data[col]...)
	}
	return &Frame{
		depths:  append([]float64(nil), f.depths...),
		columns: append([]string(nil), f.columns...),
		data:    data,
	}
}

// Rows returns the number of samples.
func (f *Frame) Rows() int {
	return len(f.depths)
}

// Depths returns the depth index. The slice is shared; callers must not
// modify it.
func (f *Frame) Depths() []float64 {
	return f.depths
}

// Columns returns the column names in load order. The slice is shared;
// callers must not modify it.
func (f *Frame) Columns() []string {
	return f.columns
}

// HasColumn reports whether the frame contains the named column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Column returns the backing slice for a column. The owner of the frame may
// write through it; everyone else should treat it as read-only.
func (f *Frame) Column(name string) ([]float64, error) {
	values, ok := f.data[name]
	if !ok {
		return nil, errors.ColumnNotFound(name)
	}
	return values, nil
}

// Value returns the cell at (row, column).
func (f *Frame) Value(column string, row int) (float64, error) {
	values, ok := f.data[column]
	if !ok {
		return Missing, errors.ColumnNotFound(column)
	}
	return values[row], nil
}

// SetCell writes the cell at (row, column).
func (f *Frame) SetCell(column string, row int, v float64) error {
	values, ok := f.data[column]
	if !ok {
		return errors.ColumnNotFound(column)
	}
	values[row] = v
	return nil
}

// SelectRows returns a new frame containing only the rows at the given
// indices, preserving their original depths. Indices must be ascending.
func (f *Frame) SelectRows(rows []int) *Frame {
	depths := make([]float64, 0, len(rows))
	data := make(map[string][]float64, len(f.columns))
	for _, col := range f.columns {
		data[col] = make([]float64, 0, len(rows))
	}
	for _, r := range rows {
		depths = append(depths, f.depths[r])
		for _, col := range f.columns {
			data[col] = append(data[col], f.data[col][r])
		}
	}
	return &Frame{
		depths:  depths,
		columns: append([]string(nil), f.columns...),
		data:    data,
	}
}

// RowMissing reports whether any column is missing at the given row.
func (f *Frame) RowMissing(row int) bool {
	for _, col := range f.columns {
		if IsMissing(f.data[col][row]) {
			return true
		}
	}
	return false
}

// MissingCount returns the total number of missing cells.
func (f *Frame) MissingCount() int {
	total := 0
	for _, col := range f.columns {
		for _, v := range f.data[col] {
			if IsMissing(v) {
				total++
			}
		}
	}
	return total
}

// MissingByColumn returns the number of missing cells per column.
func (f *Frame) MissingByColumn() map[string]int {
	counts := make(map[string]int, len(f.columns))
	for _, col := range f.columns {
		n := 0
		for _, v := range f.data[col] {
			if IsMissing(v) {
				n++
			}
		}
		counts[col] = n
	}
	return counts
}

// IsComplete reports whether the frame contains no missing cells.
func (f *Frame) IsComplete() bool {
	return f.MissingCount() == 0
}

// ColumnsWithMissing returns the columns that contain at least one missing
// cell, in load order.
func (f *Frame) ColumnsWithMissing() []string {
	var out []string
	for _, col := range f.columns {
		for _, v := range f.data[col] {
			if IsMissing(v) {
				out = append(out, col)
				break
			}
		}
	}
	return out
}
