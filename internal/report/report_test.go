package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wlequality/internal/dataset"
	"wlequality/internal/eval"
)

func sampleResults() []eval.CVResult {
	return []eval.CVResult{
		{Algorithm: "gbm", Scores: []eval.FoldScore{{Fold: 1, Accuracy: 0.96}, {Fold: 2, Accuracy: 0.94}}},
		{Algorithm: "lda", Scores: []eval.FoldScore{{Fold: 1, Accuracy: 0.70}, {Fold: 2, Accuracy: 0.72}}},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, sampleResults(), eval.Selection{Algorithm: "gbm", Mean: 0.95})

	out := buf.String()
	assert.Contains(t, out, "gbm")
	assert.Contains(t, out, "lda")
	assert.Contains(t, out, "0.9600")
	assert.Contains(t, out, "selected: gbm")
	assert.NotContains(t, out, "tie")
}

func TestWriteSummaryTie(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, sampleResults(), eval.Selection{Algorithm: "gbm", Mean: 0.95, Tie: true})
	assert.Contains(t, buf.String(), "tie broken by candidate order")
}

func TestWritePredictions(t *testing.T) {
	var buf bytes.Buffer
	WritePredictions(&buf, []string{"1", "2", "3"}, []string{"B", "A", "E"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "B")
	assert.Contains(t, lines[3], "E")
}

func TestWriteConfusion(t *testing.T) {
	var buf bytes.Buffer
	WriteConfusion(&buf, "gbm", []string{"A", "B"}, [][]int{{9, 1}, {2, 8}})

	out := buf.String()
	assert.Contains(t, out, "gbm")
	assert.Contains(t, out, "9")

	buf.Reset()
	WriteConfusion(&buf, "gbm", nil, nil)
	assert.Empty(t, buf.String())
}

func TestSaveAccuracyPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv_accuracy.png")
	require.NoError(t, SaveAccuracyPlot(sampleResults(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveScatterPlot(t *testing.T) {
	csv := "user_name,roll_belt,pitch_belt,classe\n" +
		"anna,1.0,2.0,A\nanna,1.5,2.5,B\nanna,2.0,3.0,A\n"
	tbl, err := dataset.Parse("training", strings.NewReader(csv))
	require.NoError(t, err)
	labels, err := tbl.Labels()
	require.NoError(t, err)

	path := ScatterPath(t.TempDir(), "roll_belt", "pitch_belt")
	require.NoError(t, SaveScatterPlot(tbl, "roll_belt", "pitch_belt", labels, []string{"A", "B"}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
