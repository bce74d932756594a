package classifier

import (
	"math"

	"gonum.org/v1/gonum/mat"

	scierr "wlequality/pkg/errors"
)

// LinearDiscriminant is a multiclass linear discriminant analysis
// classifier: Gaussian class conditionals with a shared (pooled) covariance,
// which makes the decision boundaries linear. Each class c gets a weight
// vector w_c = Σ⁻¹μ_c and bias -½μ_cᵀΣ⁻¹μ_c + log π_c; Predict picks the
// class with the highest discriminant score.
type LinearDiscriminant struct {
	nFeatures int
	weights   []*mat.VecDense
	bias      []float64
}

// NewLinearDiscriminant returns an unfitted LDA backend.
func NewLinearDiscriminant() *LinearDiscriminant {
	return &LinearDiscriminant{}
}

// Name implements Classifier.
func (l *LinearDiscriminant) Name() string {
	return LinearDiscriminantName
}

// Fit estimates class means, priors and the pooled covariance from X and
// the encoded class codes y, then precomputes the per-class discriminants.
func (l *LinearDiscriminant) Fit(X mat.Matrix, y []int) error {
	n, d := X.Dims()
	if len(y) != n {
		return scierr.NewValueError("LinearDiscriminant.Fit", "label vector length does not match row count")
	}

	nClasses := 0
	for _, code := range y {
		if code < 0 {
			return scierr.NewValueError("LinearDiscriminant.Fit", "negative class code")
		}
		if code+1 > nClasses {
			nClasses = code + 1
		}
	}
	if nClasses < 2 {
		return scierr.NewValueError("LinearDiscriminant.Fit", "need at least two classes")
	}
	if n <= nClasses {
		return scierr.NewValueError("LinearDiscriminant.Fit", "need more samples than classes to pool covariance")
	}

	counts := make([]int, nClasses)
	means := make([]*mat.VecDense, nClasses)
	for c := range means {
		means[c] = mat.NewVecDense(d, nil)
	}
	row := make([]float64, d)
	for i := 0; i < n; i++ {
		mat.Row(row, i, X)
		counts[y[i]]++
		for j := 0; j < d; j++ {
			means[y[i]].SetVec(j, means[y[i]].AtVec(j)+row[j])
		}
	}
	for c := 0; c < nClasses; c++ {
		if counts[c] == 0 {
			return scierr.NewValueError("LinearDiscriminant.Fit", "a class has no training samples")
		}
		means[c].ScaleVec(1/float64(counts[c]), means[c])
	}

	// Pooled within-class covariance, normalized by n-K.
	cov := mat.NewSymDense(d, nil)
	centered := make([]float64, d)
	for i := 0; i < n; i++ {
		mat.Row(row, i, X)
		mu := means[y[i]]
		for j := 0; j < d; j++ {
			centered[j] = row[j] - mu.AtVec(j)
		}
		for j := 0; j < d; j++ {
			for k := j; k < d; k++ {
				cov.SetSym(j, k, cov.At(j, k)+centered[j]*centered[k])
			}
		}
	}
	scale := 1 / float64(n-nClasses)
	var trace float64
	for j := 0; j < d; j++ {
		trace += cov.At(j, j) * scale
	}
	// Diagonal loading keeps the factorization alive when features are
	// collinear or constant within the training subset.
	ridge := 1e-8 * (trace/float64(d) + 1)
	for j := 0; j < d; j++ {
		for k := j; k < d; k++ {
			v := cov.At(j, k) * scale
			if j == k {
				v += ridge
			}
			cov.SetSym(j, k, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return scierr.NewValueError("LinearDiscriminant.Fit", "pooled covariance is not positive definite")
	}

	weights := make([]*mat.VecDense, nClasses)
	bias := make([]float64, nClasses)
	for c := 0; c < nClasses; c++ {
		w := mat.NewVecDense(d, nil)
		if err := chol.SolveVecTo(w, means[c]); err != nil {
			return scierr.Wrap(err, "solving discriminant weights")
		}
		prior := float64(counts[c]) / float64(n)
		weights[c] = w
		bias[c] = -0.5*mat.Dot(means[c], w) + math.Log(prior)
	}

	l.nFeatures = d
	l.weights = weights
	l.bias = bias
	return nil
}

// Predict assigns each row the class with the highest discriminant score.
func (l *LinearDiscriminant) Predict(X mat.Matrix) ([]int, error) {
	if l.weights == nil {
		return nil, scierr.NewNotFittedError("LinearDiscriminant", "Predict")
	}
	n, d := X.Dims()
	if d != l.nFeatures {
		return nil, scierr.NewPredictionSchemaMismatchError(l.nFeatures, d)
	}

	out := make([]int, n)
	row := make([]float64, d)
	for i := 0; i < n; i++ {
		mat.Row(row, i, X)
		x := mat.NewVecDense(d, row)
		best, bestScore := 0, math.Inf(-1)
		for c := range l.weights {
			score := mat.Dot(x, l.weights[c]) + l.bias[c]
			if score > bestScore {
				best, bestScore = c, score
			}
		}
		out[i] = best
	}
	return out, nil
}
