// Package compare renders the visual quality comparison of the gap-filling
// strategies: the same measurement channel from every derived frame drawn
// over the filtered original, plus the classic multi-track log display used
// for lithology interpretation. It only reads the frames it is given.
package compare

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"loggap/internal/errors"
	"loggap/internal/logdata"
)

// OriginalLabel is the legend label of the filtered input series.
const OriginalLabel = "original"

// seriesPalette is cycled through for overlay lines.
var seriesPalette = []color.RGBA{
	{R: 70, G: 70, B: 70, A: 255},
	{R: 214, G: 69, B: 65, A: 255},
	{R: 31, G: 119, B: 180, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
}

// Comparator draws overlay and track plots.
type Comparator struct {
	logger *slog.Logger
}

// NewComparator creates a comparator.
func NewComparator(logger *slog.Logger) *Comparator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Comparator{logger: logger}
}

// Overlay renders one channel from the filtered frame and every strategy
// output into a single comparison plot saved at path. Strategies are drawn
// in sorted name order after the original so the legend is stable.
func (c *Comparator) Overlay(ctx context.Context, column string, filtered *logdata.Frame, outputs map[string]*logdata.Frame, path string) error {
	if !filtered.HasColumn(column) {
		return errors.ColumnNotFound(column)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s gap-filling comparison", column)
	p.X.Label.Text = "Depth"
	p.Y.Label.Text = column
	p.Legend.Top = true

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := addSeries(p, OriginalLabel, filtered, column, seriesPalette[0]); err != nil {
		return err
	}
	for i, name := range names {
		if err := addSeries(p, name, outputs[name], column, seriesPalette[(i+1)%len(seriesPalette)]); err != nil {
			return fmt.Errorf("series %s: %w", name, err)
		}
	}

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save overlay plot: %w", err)
	}

	c.logger.InfoContext(ctx, "overlay plot written",
		"channel", column,
		"series", len(names)+1,
		"path", path,
	)
	return nil
}

// Tracks renders the standard side-by-side log display: one track per
// channel, value against depth, depth increasing downward. Used after gap
// filling to read lithology from the cleaned curves.
func (c *Comparator) Tracks(ctx context.Context, frame *logdata.Frame, columns []string, path string) error {
	if len(columns) == 0 {
		columns = frame.Columns()
	}

	row := make([]*plot.Plot, len(columns))
	for i, column := range columns {
		if !frame.HasColumn(column) {
			return errors.ColumnNotFound(column)
		}
		p := plot.New()
		p.X.Label.Text = column
		if i == 0 {
			p.Y.Label.Text = "Depth"
		}
		// depth grows downward on a log display
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

		if err := addTrackSeries(p, frame, column, seriesPalette[(i+1)%len(seriesPalette)]); err != nil {
			return fmt.Errorf("track %s: %w", column, err)
		}
		row[i] = p
	}

	img := vgimg.New(vg.Length(len(columns))*3*vg.Inch, 10*vg.Inch)
	canvases := plot.Align([][]*plot.Plot{row}, draw.Tiles{Rows: 1, Cols: len(columns)}, draw.New(img))
	for i, p := range row {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create track plot file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write track plot: %w", err)
	}

	c.logger.InfoContext(ctx, "track plot written",
		"tracks", len(columns),
		"path", path,
	)
	return nil
}

// addTrackSeries draws the channel with value on X and depth on Y,
// breaking the line at gaps.
func addTrackSeries(p *plot.Plot, frame *logdata.Frame, column string, col color.RGBA) error {
	values, err := frame.Column(column)
	if err != nil {
		return err
	}
	depths := frame.Depths()

	var segment plotter.XYs
	flush := func() error {
		if len(segment) < 2 {
			segment = nil
			return nil
		}
		line, err := plotter.NewLine(segment)
		if err != nil {
			return err
		}
		line.Color = col
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		segment = nil
		return nil
	}

	for i, v := range values {
		if logdata.IsMissing(v) {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		segment = append(segment, plotter.XY{X: v, Y: depths[i]})
	}
	return flush()
}

// addSeries appends the channel's observed samples as a line, breaking at
// gaps so missing intervals stay visually empty.
func addSeries(p *plot.Plot, label string, frame *logdata.Frame, column string, col color.RGBA) error {
	values, err := frame.Column(column)
	if err != nil {
		return err
	}
	depths := frame.Depths()

	var segment plotter.XYs
	first := true
	flush := func() error {
		if len(segment) < 2 {
			segment = nil
			return nil
		}
		line, err := plotter.NewLine(segment)
		if err != nil {
			return err
		}
		line.Color = col
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		if first {
			p.Legend.Add(label, line)
			first = false
		}
		segment = nil
		return nil
	}

	for i, v := range values {
		if logdata.IsMissing(v) {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		segment = append(segment, plotter.XY{X: depths[i], Y: v})
	}
	return flush()
}
