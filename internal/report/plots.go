// Package report renders the presentation artifacts of the analysis: the
// fold-accuracy comparison plot, exploratory feature scatters and the
// printed summary tables.
package report

import (
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"wlequality/internal/dataset"
	"wlequality/internal/eval"
	scierr "wlequality/pkg/errors"
)

// ScatterPairs are the raw sensor pairs inspected visually before modeling,
// mirroring the exploratory plots of the original report. Pairs absent from
// the filtered table are skipped by the pipeline.
var ScatterPairs = [][2]string{
	{"roll_belt", "pitch_belt"},
	{"magnet_dumbbell_y", "magnet_dumbbell_z"},
	{"roll_forearm", "pitch_forearm"},
}

// SaveAccuracyPlot draws one line-and-points series per algorithm over the
// fold accuracies and writes a PNG.
func SaveAccuracyPlot(results []eval.CVResult, path string) error {
	p := plot.New()
	p.Title.Text = "Cross-validated accuracy by fold"
	p.X.Label.Text = "fold"
	p.Y.Label.Text = "accuracy"
	p.Y.Min, p.Y.Max = 0, 1

	for i, r := range results {
		xys := make(plotter.XYs, len(r.Scores))
		for j, s := range r.Scores {
			xys[j].X = float64(s.Fold)
			xys[j].Y = s.Accuracy
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return scierr.Wrapf(err, "accuracy series for %s", r.Algorithm)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(r.Algorithm, line, points)
	}
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return scierr.Wrapf(err, "saving %s", path)
	}
	return nil
}

// SaveScatterPlot draws one feature column against another, one glyph style
// per class, and writes a PNG.
func SaveScatterPlot(tbl dataset.Table, xCol, yCol string, labels []string, classes []string, path string) error {
	xs, err := tbl.FeatureColumn(xCol)
	if err != nil {
		return err
	}
	ys, err := tbl.FeatureColumn(yCol)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = xCol + " vs " + yCol
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol

	for i, class := range classes {
		var xys plotter.XYs
		for r, label := range labels {
			if label == class {
				xys = append(xys, plotter.XY{X: xs[r], Y: ys[r]})
			}
		}
		if len(xys) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return scierr.Wrapf(err, "scatter series for class %s", class)
		}
		scatter.GlyphStyle.Color = plotutil.Color(i)
		scatter.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(scatter)
		p.Legend.Add(class, scatter)
	}
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return scierr.Wrapf(err, "saving %s", path)
	}
	return nil
}

// ScatterPath returns the output file name for a feature pair.
func ScatterPath(outDir, xCol, yCol string) string {
	return filepath.Join(outDir, "scatter_"+xCol+"_"+yCol+".png")
}
