package report

import (
	"fmt"
	"io"

	"wlequality/internal/eval"
)

// WriteSummary prints the per-fold accuracy table and the per-algorithm
// mean ± standard deviation, then names the selected algorithm.
func WriteSummary(w io.Writer, results []eval.CVResult, sel eval.Selection) {
	fmt.Fprintln(w, "Cross-validated accuracy")
	fmt.Fprintf(w, "%-12s", "fold")
	for _, r := range results {
		fmt.Fprintf(w, "%12s", r.Algorithm)
	}
	fmt.Fprintln(w)

	if len(results) > 0 {
		for i, s := range results[0].Scores {
			fmt.Fprintf(w, "%-12d", s.Fold)
			for _, r := range results {
				fmt.Fprintf(w, "%12.4f", r.Scores[i].Accuracy)
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintf(w, "%-12s", "mean±sd")
	for _, r := range results {
		mean, sd := r.MeanStdDev()
		fmt.Fprintf(w, "%7.4f±%.2f", mean, sd)
	}
	fmt.Fprintln(w)

	if sel.Tie {
		fmt.Fprintf(w, "selected: %s (mean accuracy %.4f, tie broken by candidate order)\n", sel.Algorithm, sel.Mean)
	} else {
		fmt.Fprintf(w, "selected: %s (mean accuracy %.4f)\n", sel.Algorithm, sel.Mean)
	}
}

// WriteConfusion prints the summed cross-validation confusion matrix of one
// algorithm, rows true class, columns predicted class.
func WriteConfusion(w io.Writer, algorithm string, classes []string, cm [][]int) {
	if cm == nil {
		return
	}
	fmt.Fprintf(w, "Confusion matrix (%s, rows=true, cols=predicted)\n", algorithm)
	fmt.Fprintf(w, "%-6s", "")
	for _, c := range classes {
		fmt.Fprintf(w, "%8s", c)
	}
	fmt.Fprintln(w)
	for i, row := range cm {
		fmt.Fprintf(w, "%-6s", classes[i])
		for _, v := range row {
			fmt.Fprintf(w, "%8d", v)
		}
		fmt.Fprintln(w)
	}
}

// WritePredictions prints the terminal output of the pipeline: one predicted
// class per test row, in input order.
func WritePredictions(w io.Writer, ids, labels []string) {
	fmt.Fprintln(w, "Test-set predictions")
	for i := range ids {
		fmt.Fprintf(w, "%-6s %s\n", ids[i], labels[i])
	}
}
