package eval

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"wlequality/internal/classifier"
	"wlequality/internal/folds"
	scierr "wlequality/pkg/errors"
)

// FoldScore is one fold's held-out result for one algorithm.
type FoldScore struct {
	Fold      int
	Accuracy  float64
	Confusion [][]int
}

// CVResult is the ordered per-fold score sequence of one algorithm.
type CVResult struct {
	Algorithm string
	Scores    []FoldScore
}

// Accuracies returns the fold accuracies in fold order.
func (r CVResult) Accuracies() []float64 {
	accs := make([]float64, len(r.Scores))
	for i, s := range r.Scores {
		accs[i] = s.Accuracy
	}
	return accs
}

// MeanStdDev returns the mean and sample standard deviation of the fold
// accuracies.
func (r CVResult) MeanStdDev() (float64, float64) {
	return stat.MeanStdDev(r.Accuracies(), nil)
}

// TotalConfusion sums the per-fold confusion matrices. Because the folds
// partition the training rows, the sum covers every row exactly once.
func (r CVResult) TotalConfusion() [][]int {
	if len(r.Scores) == 0 || r.Scores[0].Confusion == nil {
		return nil
	}
	n := len(r.Scores[0].Confusion)
	total := make([][]int, n)
	for i := range total {
		total[i] = make([]int, n)
	}
	for _, s := range r.Scores {
		for i := range s.Confusion {
			for j := range s.Confusion[i] {
				total[i][j] += s.Confusion[i][j]
			}
		}
	}
	return total
}

// CrossValidate runs the k-fold evaluation of one algorithm: for every fold
// a fresh model is fitted on the other folds, scored on the held-out rows
// and discarded, keeping only the accuracy and confusion matrix. Folds run
// strictly one after another; a fit or predict failure aborts with that
// fold identified rather than substituting a score.
func CrossValidate(b classifier.Builder, X *mat.Dense, y []int, partition []folds.Fold, nClasses int) (CVResult, error) {
	result := CVResult{
		Algorithm: b.Name,
		Scores:    make([]FoldScore, len(partition)),
	}
	for i, fold := range partition {
		if len(fold.Train) == 0 || len(fold.Test) == 0 {
			return CVResult{}, scierr.NewValueError("CrossValidate",
				fmt.Sprintf("fold %d has an empty train or test set", fold.Index))
		}
		model := b.New()

		trainX := takeRows(X, fold.Train)
		trainY := takeLabels(y, fold.Train)
		if err := model.Fit(trainX, trainY); err != nil {
			return CVResult{}, scierr.NewFitFailureError(b.Name, fold.Index, err)
		}

		testX := takeRows(X, fold.Test)
		testY := takeLabels(y, fold.Test)
		preds, err := model.Predict(testX)
		if err != nil {
			return CVResult{}, scierr.NewFitFailureError(b.Name, fold.Index, err)
		}

		acc, err := Accuracy(testY, preds)
		if err != nil {
			return CVResult{}, err
		}
		cm, err := ConfusionMatrix(testY, preds, nClasses)
		if err != nil {
			return CVResult{}, err
		}
		result.Scores[i] = FoldScore{Fold: fold.Index, Accuracy: acc, Confusion: cm}
	}
	return result, nil
}

func takeRows(X *mat.Dense, rows []int) *mat.Dense {
	_, d := X.Dims()
	out := mat.NewDense(len(rows), d, nil)
	for i, r := range rows {
		out.SetRow(i, X.RawRowView(r))
	}
	return out
}

func takeLabels(y []int, rows []int) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = y[r]
	}
	return out
}
