// Package classifier defines the fit/predict capability the evaluation
// pipeline works against and the two candidate backends of the analysis:
// gradient-boosted trees (delegated to the scigo LightGBM implementation)
// and linear discriminant analysis.
package classifier

import (
	"gonum.org/v1/gonum/mat"

	scierr "wlequality/pkg/errors"
)

// Candidate algorithm names. The candidate order is fixed: it is also the
// selector's tie-break order.
const (
	GradientBoostingName   = "gbm"
	LinearDiscriminantName = "lda"
)

// Classifier is the capability interface every backend implements. Fit
// binds the model to one training subset; Predict maps feature rows to
// encoded class codes. A Classifier is single-use: the evaluator builds a
// fresh one per fold and discards it after scoring.
type Classifier interface {
	Name() string
	Fit(X mat.Matrix, y []int) error
	Predict(X mat.Matrix) ([]int, error)
}

// Builder constructs a fresh, unfitted backend. The evaluator calls New
// once per fold and once for the final fit.
type Builder struct {
	Name string
	New  func() Classifier
}

// NewBuilder returns the builder for a named algorithm.
func NewBuilder(name string) (Builder, error) {
	switch name {
	case GradientBoostingName:
		return Builder{Name: name, New: func() Classifier { return NewGradientBoosting() }}, nil
	case LinearDiscriminantName:
		return Builder{Name: name, New: func() Classifier { return NewLinearDiscriminant() }}, nil
	default:
		return Builder{}, scierr.NewValueError("NewBuilder", "unknown algorithm "+name)
	}
}

// DefaultCandidates returns the two algorithms the analysis compares, in
// selection tie-break order.
func DefaultCandidates() []Builder {
	gbm, _ := NewBuilder(GradientBoostingName)
	lda, _ := NewBuilder(LinearDiscriminantName)
	return []Builder{gbm, lda}
}
