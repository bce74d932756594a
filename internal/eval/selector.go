package eval

import (
	scierr "wlequality/pkg/errors"
)

// Selection names the winning algorithm. Tie reports that at least one
// other candidate reached exactly the same mean, in which case the earlier
// candidate in the evaluated order was kept. The original analysis never
// specified a tie rule; first-listed-wins is this implementation's
// documented choice.
type Selection struct {
	Algorithm string
	Mean      float64
	Tie       bool
}

// Select picks the candidate with the strictly highest mean fold accuracy.
func Select(results []CVResult) (Selection, error) {
	if len(results) == 0 {
		return Selection{}, scierr.NewValueError("Select", "no candidates evaluated")
	}

	best := Selection{Algorithm: results[0].Algorithm}
	best.Mean, _ = results[0].MeanStdDev()
	for _, r := range results[1:] {
		mean, _ := r.MeanStdDev()
		switch {
		case mean > best.Mean:
			best = Selection{Algorithm: r.Algorithm, Mean: mean}
		case mean == best.Mean:
			best.Tie = true
		}
	}
	return best, nil
}
