package classifier

import (
	"math"

	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"
	"gonum.org/v1/gonum/mat"

	scierr "wlequality/pkg/errors"
)

// GradientBoosting adapts the scigo LightGBM classifier to the Classifier
// interface. The boosting algorithm itself is a black box behind the
// library; this type only shapes inputs and outputs.
type GradientBoosting struct {
	iterations      int
	leaves          int
	learningRate    float64
	minChildSamples int

	model     *lightgbm.LGBMClassifier
	nFeatures int
}

// NewGradientBoosting returns an unfitted backend with the parameters used
// throughout the analysis.
func NewGradientBoosting() *GradientBoosting {
	return &GradientBoosting{
		iterations:   50,
		leaves:       31,
		learningRate: 0.1,
	}
}

// WithIterations overrides the boosting round count.
func (g *GradientBoosting) WithIterations(n int) *GradientBoosting {
	g.iterations = n
	return g
}

// WithLeaves overrides the per-tree leaf budget.
func (g *GradientBoosting) WithLeaves(n int) *GradientBoosting {
	g.leaves = n
	return g
}

// WithLearningRate overrides the shrinkage rate.
func (g *GradientBoosting) WithLearningRate(lr float64) *GradientBoosting {
	g.learningRate = lr
	return g
}

// WithMinChildSamples lowers the minimum leaf size, needed when training on
// small synthetic tables.
func (g *GradientBoosting) WithMinChildSamples(n int) *GradientBoosting {
	g.minChildSamples = n
	return g
}

// Name implements Classifier.
func (g *GradientBoosting) Name() string {
	return GradientBoostingName
}

// Fit trains a fresh LightGBM model on X with encoded class codes y.
func (g *GradientBoosting) Fit(X mat.Matrix, y []int) error {
	rows, cols := X.Dims()
	if len(y) != rows {
		return scierr.NewValueError("GradientBoosting.Fit", "label vector length does not match row count")
	}

	target := mat.NewDense(rows, 1, nil)
	for i, code := range y {
		target.Set(i, 0, float64(code))
	}

	clf := lightgbm.NewLGBMClassifier().
		WithNumIterations(g.iterations).
		WithNumLeaves(g.leaves).
		WithLearningRate(g.learningRate)
	if g.minChildSamples > 0 {
		clf.SetParams(map[string]interface{}{"min_child_samples": g.minChildSamples})
	}

	if err := clf.Fit(X, target); err != nil {
		return scierr.Wrap(err, "lightgbm fit")
	}
	g.model = clf
	g.nFeatures = cols
	return nil
}

// Predict maps each feature row to a class code.
func (g *GradientBoosting) Predict(X mat.Matrix) ([]int, error) {
	if g.model == nil {
		return nil, scierr.NewNotFittedError("GradientBoosting", "Predict")
	}
	rows, cols := X.Dims()
	if cols != g.nFeatures {
		return nil, scierr.NewPredictionSchemaMismatchError(g.nFeatures, cols)
	}

	preds, err := g.model.Predict(X)
	if err != nil {
		return nil, scierr.Wrap(err, "lightgbm predict")
	}
	out := make([]int, rows)
	for i := 0; i < rows; i++ {
		out[i] = int(math.Round(preds.At(i, 0)))
	}
	return out, nil
}
