// Package eval runs the cross-validated comparison of the candidate
// classifiers and selects the one with the best mean accuracy.
package eval

import (
	scierr "wlequality/pkg/errors"
)

// Accuracy returns the fraction of predictions matching the true codes.
func Accuracy(yTrue, yPred []int) (float64, error) {
	if len(yTrue) == 0 {
		return 0, scierr.NewValueError("Accuracy", "empty label vectors")
	}
	if len(yTrue) != len(yPred) {
		return 0, scierr.NewValueError("Accuracy", "label vectors differ in length")
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix counts predictions per (true, predicted) class pair.
// Row index is the true code, column index the predicted code.
func ConfusionMatrix(yTrue, yPred []int, nClasses int) ([][]int, error) {
	if len(yTrue) != len(yPred) {
		return nil, scierr.NewValueError("ConfusionMatrix", "label vectors differ in length")
	}
	cm := make([][]int, nClasses)
	for i := range cm {
		cm[i] = make([]int, nClasses)
	}
	for i := range yTrue {
		if yTrue[i] < 0 || yTrue[i] >= nClasses || yPred[i] < 0 || yPred[i] >= nClasses {
			return nil, scierr.Newf("ConfusionMatrix: code out of range [0,%d)", nClasses)
		}
		cm[yTrue[i]][yPred[i]]++
	}
	return cm, nil
}
