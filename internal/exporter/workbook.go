package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"loggap/internal/logdata"
)

// FilteredSheet is the dataset name of the range-filtered input.
const FilteredSheet = "filtered"

// WriteWorkbook writes one xlsx workbook with a sheet per dataset: the
// filtered input first, then every strategy output in sorted name order.
// Missing cells are left blank.
func WriteWorkbook(path string, filtered *logdata.Frame, outputs map[string]*logdata.Frame, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := writeSheet(f, FilteredSheet, filtered); err != nil {
		return err
	}
	for _, name := range names {
		if err := writeSheet(f, name, outputs[name]); err != nil {
			return err
		}
	}

	// drop excelize's default sheet
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	logger.Info("workbook written",
		"path", path,
		"sheets", len(names)+1,
	)
	return nil
}

// writeSheet renders one frame onto a named sheet, depth column first.
func writeSheet(f *excelize.File, name string, frame *logdata.Frame) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	header := make([]interface{}, 0, len(frame.Columns())+1)
	header = append(header, logdata.DepthColumn)
	for _, col := range frame.Columns() {
		header = append(header, col)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write header on %s: %w", name, err)
	}

	depths := frame.Depths()
	for row := 0; row < frame.Rows(); row++ {
		record := make([]interface{}, 0, len(header))
		record = append(record, depths[row])
		for _, col := range frame.Columns() {
			v, err := frame.Value(col, row)
			if err != nil {
				return err
			}
			if logdata.IsMissing(v) {
				record = append(record, nil)
			} else {
				record = append(record, v)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", row, err)
		}
		if err := f.SetSheetRow(name, cell, &record); err != nil {
			return fmt.Errorf("write row %d on %s: %w", row, name, err)
		}
	}
	return nil
}
