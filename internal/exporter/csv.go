// Package exporter writes the pipeline's frames out for downstream tools:
// one CSV per dataset, or a single Excel workbook with a sheet per
// strategy. Missing cells stay blank in both formats so gaps survive a
// round-trip.
package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"loggap/internal/logdata"
)

// CSVWriter exports frames as CSV files under an output directory.
type CSVWriter struct {
	outDir string
	logger *slog.Logger
	// BOMPrefix adds a UTF-8 BOM so Excel opens the files correctly.
	BOMPrefix bool
}

// NewCSVWriter creates a CSV writer rooted at outDir.
func NewCSVWriter(outDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{outDir: outDir, logger: logger}
}

// WriteFrame writes one frame to <outDir>/<name>.csv.
func (w *CSVWriter) WriteFrame(name string, frame *logdata.Frame) (string, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(w.outDir, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if w.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", fmt.Errorf("write BOM: %w", err)
		}
	}

	if err := frame.WriteCSV(file); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Info("CSV written",
		"dataset", name,
		"path", path,
		"rows", frame.Rows(),
	)
	return path, nil
}

// WriteAll writes the filtered frame and every strategy output, returning
// the created paths keyed by dataset name.
func (w *CSVWriter) WriteAll(filtered *logdata.Frame, outputs map[string]*logdata.Frame) (map[string]string, error) {
	paths := make(map[string]string, len(outputs)+1)

	path, err := w.WriteFrame(FilteredSheet, filtered)
	if err != nil {
		return nil, err
	}
	paths[FilteredSheet] = path

	for name, frame := range outputs {
		path, err := w.WriteFrame(name, frame)
		if err != nil {
			return nil, err
		}
		paths[name] = path
	}
	return paths, nil
}
