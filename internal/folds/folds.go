// Package folds builds the stratified cross-validation partition of the
// training rows.
package folds

import (
	"fmt"
	"math/rand/v2"

	scierr "wlequality/pkg/errors"
)

// Fold is one validation slice: the rows held out for scoring and the
// complement used for fitting. Index is 1-based and only used in reports.
type Fold struct {
	Index int
	Train []int
	Test  []int
}

// Stratified partitions indices 0..len(y)-1 into k disjoint folds whose
// union is the full index set, distributing each class across folds so the
// per-fold label proportions approximate the overall ones.
//
// The shuffle is driven by the explicit seed; the same seed always yields
// the same partition. This is a deliberate deviation from the original
// analysis, which never seeded its random source and so produced
// irreproducible fold memberships.
func Stratified(y []int, k int, seed uint64) ([]Fold, error) {
	n := len(y)
	if k < 2 {
		return nil, scierr.NewValueError("Stratified", "fold count must be at least 2")
	}
	if k > n {
		return nil, scierr.NewValueError("Stratified", "fold count exceeds row count")
	}

	// Group row indices by class.
	classIndices := make(map[int][]int)
	for i, label := range y {
		classIndices[label] = append(classIndices[label], i)
	}

	// Every class must reach every fold, otherwise some folds come out
	// empty and the evaluator would fit or score on zero rows.
	for label, indices := range classIndices {
		if len(indices) < k {
			return nil, scierr.NewValueError("Stratified",
				fmt.Sprintf("class %d has %d members, fewer than the %d folds", label, len(indices), k))
		}
	}

	// Shuffle within each class. Iterate classes in a fixed order so the
	// partition depends only on y and seed, not map iteration.
	maxClass := 0
	for label := range classIndices {
		if label > maxClass {
			maxClass = label
		}
	}
	r := rand.New(rand.NewPCG(seed, seed))
	for label := 0; label <= maxClass; label++ {
		indices := classIndices[label]
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	out := make([]Fold, k)
	for f := range out {
		out[f] = Fold{Index: f + 1}
	}

	// Deal each class across the folds, largest remainders first.
	for label := 0; label <= maxClass; label++ {
		indices := classIndices[label]
		nClass := len(indices)
		foldSize := nClass / k
		remainder := nClass % k

		cursor := 0
		for f := 0; f < k; f++ {
			take := foldSize
			if f < remainder {
				take++
			}
			out[f].Test = append(out[f].Test, indices[cursor:cursor+take]...)
			cursor += take
		}
	}

	// Train sets are the complements.
	for f := range out {
		inTest := make(map[int]bool, len(out[f].Test))
		for _, idx := range out[f].Test {
			inTest[idx] = true
		}
		out[f].Train = make([]int, 0, n-len(out[f].Test))
		for i := 0; i < n; i++ {
			if !inTest[i] {
				out[f].Train = append(out[f].Train, i)
			}
		}
	}
	return out, nil
}
