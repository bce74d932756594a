// Package pipeline wires the six stages of the analysis in their fixed
// order: load, filter, partition, evaluate, select, final train and predict.
// Execution is strictly sequential and every stage failure is fatal; the
// error names the stage that failed.
package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"wlequality/internal/classifier"
	"wlequality/internal/dataset"
	"wlequality/internal/eval"
	"wlequality/internal/folds"
	"wlequality/internal/report"
	scierr "wlequality/pkg/errors"
)

// Config parameterizes one run. The zero values of Candidates, Summary and
// Logger select the analysis defaults.
type Config struct {
	TrainURL string
	TestURL  string
	Folds    int
	Seed     uint64
	// OutDir receives the rendered plots; empty disables rendering.
	OutDir     string
	Candidates []classifier.Builder
	Summary    io.Writer
	Logger     zerolog.Logger
}

// Prediction is one test-row outcome, in input row order.
type Prediction struct {
	ProblemID string
	Label     string
}

// Result collects everything the run reports.
type Result struct {
	Features    []string
	Results     []eval.CVResult
	Selection   eval.Selection
	Predictions []Prediction
}

// Run executes the whole analysis.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Candidates == nil {
		cfg.Candidates = classifier.DefaultCandidates()
	}
	if cfg.Summary == nil {
		cfg.Summary = os.Stdout
	}
	logger := cfg.Logger

	// Stage 1: load.
	logger.Info().Str("train", cfg.TrainURL).Str("test", cfg.TestURL).Msg("loading tables")
	train, test, err := dataset.Load(ctx, cfg.TrainURL, cfg.TestURL)
	if err != nil {
		return nil, scierr.Wrap(err, "stage load")
	}
	logger.Info().Int("train_rows", train.NumRows()).Int("test_rows", test.NumRows()).Msg("tables loaded")

	// Stage 2: filter.
	filtered, features, missing, err := dataset.FilterComplete(train)
	if err != nil {
		return nil, scierr.Wrap(err, "stage filter")
	}
	dropped := 0
	for _, frac := range missing {
		if frac > 0 {
			dropped++
		}
	}
	logger.Info().Int("features", len(features)).Int("dropped_columns", dropped).Msg("feature filter applied")

	// The subject column survives the filter by construction; the distinct
	// count is a quick sanity signal (the dataset has six lifters).
	if subjects, err := filtered.Subjects(); err == nil {
		distinct := make(map[string]bool)
		for _, s := range subjects {
			distinct[s] = true
		}
		logger.Info().Int("subjects", len(distinct)).Msg("subject column retained")
	}

	labels, err := filtered.Labels()
	if err != nil {
		return nil, scierr.Wrap(err, "stage filter")
	}
	encoder := dataset.FitLabelEncoder(labels)
	y, err := encoder.Transform(labels)
	if err != nil {
		return nil, scierr.Wrap(err, "stage filter")
	}

	X, err := filtered.Matrix(features)
	if err != nil {
		return nil, scierr.Wrap(err, "stage filter")
	}

	if cfg.OutDir != "" {
		if err := renderScatters(filtered, labels, encoder.Classes(), cfg.OutDir, logger); err != nil {
			return nil, scierr.Wrap(err, "stage filter")
		}
	}

	// Stage 3: partition.
	logger.Info().Int("folds", cfg.Folds).Uint64("seed", cfg.Seed).Msg("building stratified folds")
	partition, err := folds.Stratified(y, cfg.Folds, cfg.Seed)
	if err != nil {
		return nil, scierr.Wrap(err, "stage partition")
	}

	// Stage 4: evaluate.
	results := make([]eval.CVResult, 0, len(cfg.Candidates))
	for _, candidate := range cfg.Candidates {
		logger.Info().Str("algorithm", candidate.Name).Msg("cross-validating")
		r, err := eval.CrossValidate(candidate, X, y, partition, encoder.NumClasses())
		if err != nil {
			return nil, scierr.Wrap(err, "stage evaluate")
		}
		mean, sd := r.MeanStdDev()
		logger.Info().Str("algorithm", candidate.Name).Float64("mean_accuracy", mean).Float64("sd", sd).Msg("cross-validation done")
		results = append(results, r)
	}

	// Stage 5: select.
	selection, err := eval.Select(results)
	if err != nil {
		return nil, scierr.Wrap(err, "stage select")
	}
	logger.Info().Str("algorithm", selection.Algorithm).Float64("mean_accuracy", selection.Mean).Bool("tie", selection.Tie).Msg("model selected")

	if cfg.OutDir != "" {
		if err := report.SaveAccuracyPlot(results, filepath.Join(cfg.OutDir, "cv_accuracy.png")); err != nil {
			return nil, scierr.Wrap(err, "stage select")
		}
	}

	// Stage 6: final train and predict.
	predictions, err := finalPredict(cfg.Candidates, selection.Algorithm, X, y, test, features, encoder)
	if err != nil {
		return nil, scierr.Wrap(err, "stage predict")
	}

	// Report.
	report.WriteSummary(cfg.Summary, results, selection)
	for _, r := range results {
		if r.Algorithm == selection.Algorithm {
			report.WriteConfusion(cfg.Summary, r.Algorithm, encoder.Classes(), r.TotalConfusion())
		}
	}
	ids := make([]string, len(predictions))
	predicted := make([]string, len(predictions))
	for i, p := range predictions {
		ids[i] = p.ProblemID
		predicted[i] = p.Label
	}
	report.WritePredictions(cfg.Summary, ids, predicted)

	return &Result{
		Features:    features,
		Results:     results,
		Selection:   selection,
		Predictions: predictions,
	}, nil
}

// finalPredict retrains the selected algorithm on the full training matrix
// and predicts every test row in input order.
func finalPredict(candidates []classifier.Builder, selected string, X *mat.Dense, y []int, test dataset.Table, features []string, encoder *dataset.LabelEncoder) ([]Prediction, error) {
	var builder classifier.Builder
	found := false
	for _, c := range candidates {
		if c.Name == selected {
			builder, found = c, true
			break
		}
	}
	if !found {
		return nil, scierr.NewValueError("finalPredict", "selected algorithm not among candidates")
	}

	model := builder.New()
	if err := model.Fit(X, y); err != nil {
		return nil, scierr.NewFitFailureError(selected, 0, err)
	}

	// A feature column absent from the test table is a prediction-time
	// schema problem, not a generic one: the fitted model expects it.
	testX, err := test.Matrix(features)
	if err != nil {
		var mismatch *scierr.SchemaMismatchError
		if scierr.As(err, &mismatch) {
			return nil, scierr.NewPredictionMissingColumnError(mismatch.Column, len(features))
		}
		return nil, err
	}
	codes, err := model.Predict(testX)
	if err != nil {
		return nil, err
	}
	labels, err := encoder.Inverse(codes)
	if err != nil {
		return nil, err
	}

	ids, err := test.ProblemIDs()
	if err != nil {
		// Synthetic test tables may omit the submission column; fall back
		// to the 1-based row order.
		ids = make([]string, len(labels))
		for i := range ids {
			ids[i] = strconv.Itoa(i + 1)
		}
	}

	out := make([]Prediction, len(labels))
	for i := range labels {
		out[i] = Prediction{ProblemID: ids[i], Label: labels[i]}
	}
	return out, nil
}

// renderScatters draws the exploratory feature pairs that survived the
// filter.
func renderScatters(tbl dataset.Table, labels []string, classes []string, outDir string, logger zerolog.Logger) error {
	for _, pair := range report.ScatterPairs {
		if !tbl.HasColumn(pair[0]) || !tbl.HasColumn(pair[1]) {
			logger.Debug().Str("x", pair[0]).Str("y", pair[1]).Msg("scatter pair not in filtered table, skipping")
			continue
		}
		path := report.ScatterPath(outDir, pair[0], pair[1])
		if err := report.SaveScatterPlot(tbl, pair[0], pair[1], labels, classes, path); err != nil {
			return err
		}
		logger.Info().Str("plot", path).Msg("scatter rendered")
	}
	return nil
}
