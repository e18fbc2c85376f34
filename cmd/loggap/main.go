// Command loggap cleans a single-well log file and compares five
// gap-filling strategies on it: range-filter the readings, run every
// strategy on the filtered data, export the derived datasets and render
// the comparison plots.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"loggap/internal/cleaning"
	"loggap/internal/compare"
	"loggap/internal/config"
	"loggap/internal/exporter"
	"loggap/internal/infrastructure"
	"loggap/internal/logdata"
	"loggap/internal/pipeline"
)

func main() {
	inPath := flag.String("in", "", "input well-log file (.las or .csv)")
	outDir := flag.String("out", "", "output directory (defaults to the configured paths.output_dir)")
	configPath := flag.String("config", "", "optional YAML config file")
	column := flag.String("column", "GR", "channel for the comparison overlay")
	format := flag.String("format", "both", "export format: csv, xlsx or both")
	flag.Parse()

	if *inPath == "" {
		slog.Error("missing required -in flag")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	if err := run(context.Background(), cfg, logger, *inPath, *column, *format); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, inPath, column, format string) error {
	frame, err := loadFrame(inPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", inPath, err)
	}
	logger.Info("well log loaded",
		"path", inPath,
		"rows", frame.Rows(),
		"channels", len(frame.Columns()),
		"missing", frame.MissingCount(),
	)

	filter, err := cleaning.NewFilter(cfg.RangeTable(), logger)
	if err != nil {
		return fmt.Errorf("build range filter: %w", err)
	}

	strategies := pipeline.DefaultStrategies(cfg.Impute.K, cfg.Impute.MaxGap, cfg.Impute.ColumnOrder, logger)
	runner := pipeline.NewRunner(filter, strategies, logger)
	runner.SetConfiguration(cfg.Impute.MaxConcurrency, cfg.Impute.Timeout)

	result, err := runner.Run(ctx, frame)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}
	for name, ferr := range result.Failures {
		logger.Warn("strategy skipped", "strategy", name, "reason", ferr)
	}

	outDir := cfg.Paths.OutputDir
	if format == "csv" || format == "both" {
		if _, err := exporter.NewCSVWriter(outDir, logger).WriteAll(result.Filtered, result.Outputs); err != nil {
			return fmt.Errorf("export CSV: %w", err)
		}
	}
	if format == "xlsx" || format == "both" {
		path := filepath.Join(outDir, "comparison.xlsx")
		if err := exporter.WriteWorkbook(path, result.Filtered, result.Outputs, logger); err != nil {
			return fmt.Errorf("export workbook: %w", err)
		}
	}

	comparator := compare.NewComparator(logger)
	overlayPath := filepath.Join(outDir, fmt.Sprintf("%s_comparison.png", column))
	if err := comparator.Overlay(ctx, column, result.Filtered, result.Outputs, overlayPath); err != nil {
		return fmt.Errorf("render overlay: %w", err)
	}

	if best, ok := result.Outputs["interpolate"]; ok {
		tracksPath := filepath.Join(outDir, "tracks.png")
		if err := comparator.Tracks(ctx, best, nil, tracksPath); err != nil {
			return fmt.Errorf("render tracks: %w", err)
		}
	}

	logger.Info("done",
		"strategies_succeeded", len(result.Outputs),
		"strategies_failed", len(result.Failures),
		"elapsed", result.Elapsed,
		"output_dir", outDir,
	)
	return nil
}

// loadFrame picks the reader from the file extension.
func loadFrame(path string) (*logdata.Frame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".las":
		return logdata.LoadLAS(path)
	case ".csv":
		return logdata.LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .las or .csv)", filepath.Ext(path))
	}
}
