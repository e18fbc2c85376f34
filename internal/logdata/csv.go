package logdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DepthColumn is the header name of the depth index in CSV files.
const DepthColumn = "DEPT"

// DefaultNull is the conventional well-log null sentinel. Readings equal to
// it are treated as missing in addition to blank cells.
const DefaultNull = -999.25

// LoadCSV reads a well-log frame from a CSV file. The first row is the
// header and must contain the DEPT depth column; every other column becomes
// a measurement channel. Blank cells and the null sentinel map to missing.
func LoadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	frame, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return frame, nil
}

// ReadCSV reads a frame from CSV content.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	depthIdx := -1
	var columns []string
	colIdx := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		if strings.EqualFold(name, DepthColumn) {
			depthIdx = i
			continue
		}
		columns = append(columns, name)
		colIdx[name] = i
	}
	if depthIdx < 0 {
		return nil, fmt.Errorf("header has no %s column", DepthColumn)
	}

	var depths []float64
	data := make(map[string][]float64, len(columns))
	for _, col := range columns {
		data[col] = nil
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line++

		depth, err := strconv.ParseFloat(strings.TrimSpace(record[depthIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse depth %q: %w", line, record[depthIdx], err)
		}
		depths = append(depths, depth)

		for _, col := range columns {
			data[col] = append(data[col], parseCell(record[colIdx[col]]))
		}
	}

	return NewFrame(depths, columns, data)
}

// parseCell converts a CSV cell to a sample, mapping blanks, unparseable
// values and the null sentinel to missing.
func parseCell(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Missing
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v == DefaultNull {
		return Missing
	}
	return v
}

// WriteCSV renders the frame as CSV with the depth index first. Missing
// cells become empty fields so a round-trip through ReadCSV preserves gaps.
func (f *Frame) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	header := append([]string{DepthColumn}, f.columns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for row := 0; row < len(f.depths); row++ {
		record[0] = strconv.FormatFloat(f.depths[row], 'f', -1, 64)
		for i, col := range f.columns {
			v := f.data[col][row]
			if IsMissing(v) {
				record[i+1] = ""
			} else {
				record[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
