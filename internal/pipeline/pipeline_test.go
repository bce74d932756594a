package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scierr "wlequality/pkg/errors"
)

var subjects = []string{"adam", "beth", "carl", "dana", "eric", "fay"}

var classNames = []string{"A", "B", "C", "D", "E"}

// trainingCSV builds the synthetic scenario: 100 rows, 5 balanced classes,
// 10 fully populated features and 5 columns with one missing value each.
func trainingCSV() string {
	var b strings.Builder
	b.WriteString("X,user_name")
	for j := 1; j <= 10; j++ {
		fmt.Fprintf(&b, ",feat_%02d", j)
	}
	for j := 1; j <= 5; j++ {
		fmt.Fprintf(&b, ",part_%02d", j)
	}
	b.WriteString(",classe\n")

	for i := 0; i < 100; i++ {
		class := i % 5
		fmt.Fprintf(&b, "%d,%s", i+1, subjects[i%len(subjects)])
		for j := 1; j <= 10; j++ {
			fmt.Fprintf(&b, ",%.3f", featValue(i, j, class))
		}
		for j := 1; j <= 5; j++ {
			if i == j*17 {
				b.WriteString(",NA")
			} else {
				fmt.Fprintf(&b, ",%.3f", float64(i+j))
			}
		}
		fmt.Fprintf(&b, ",%s\n", classNames[class])
	}
	return b.String()
}

// testingCSV builds 10 rows with the same feature columns, no label and a
// problem_id column.
func testingCSV() string {
	var b strings.Builder
	b.WriteString("X,user_name")
	for j := 1; j <= 10; j++ {
		fmt.Fprintf(&b, ",feat_%02d", j)
	}
	for j := 1; j <= 5; j++ {
		fmt.Fprintf(&b, ",part_%02d", j)
	}
	b.WriteString(",problem_id\n")

	for r := 0; r < 10; r++ {
		class := r % 5
		fmt.Fprintf(&b, "%d,%s", r+1, subjects[r%len(subjects)])
		for j := 1; j <= 10; j++ {
			fmt.Fprintf(&b, ",%.3f", featValue(r*3, j, class))
		}
		for j := 1; j <= 5; j++ {
			fmt.Fprintf(&b, ",%.3f", float64(r+j))
		}
		fmt.Fprintf(&b, ",%d\n", r+1)
	}
	return b.String()
}

// featValue separates the classes by a unit step with bounded deterministic
// jitter. The i*j term keeps the feature columns linearly independent
// within every class, so the pooled covariance stays full rank.
func featValue(i, j, class int) float64 {
	return float64(class) + 0.05*float64((3*i+5*j+i*j)%7)
}

func serveCSV(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunEndToEnd(t *testing.T) {
	trainSrv := serveCSV(t, trainingCSV())
	testSrv := serveCSV(t, testingCSV())

	var summary, logs bytes.Buffer
	result, err := Run(context.Background(), Config{
		TrainURL: trainSrv.URL,
		TestURL:  testSrv.URL,
		Folds:    5,
		Seed:     42,
		Summary:  &summary,
		Logger:   zerolog.New(&logs),
	})
	require.NoError(t, err)

	// The six distinct lifters in the training table are logged after the filter.
	assert.Contains(t, logs.String(), `"subjects":6`)

	// Feature filter: exactly the ten fully populated columns, in order.
	require.Len(t, result.Features, 10)
	for j, name := range result.Features {
		assert.Equal(t, fmt.Sprintf("feat_%02d", j+1), name)
	}

	// Evaluator: five accuracies per algorithm, all within [0,1].
	require.Len(t, result.Results, 2)
	for _, r := range result.Results {
		require.Len(t, r.Scores, 5)
		for _, s := range r.Scores {
			assert.GreaterOrEqual(t, s.Accuracy, 0.0)
			assert.LessOrEqual(t, s.Accuracy, 1.0)
		}
	}

	// Selector: consistent with the strict-greater rule over the measured
	// means, first listed winning ties.
	wantAlgo := result.Results[0].Algorithm
	wantMean, _ := result.Results[0].MeanStdDev()
	for _, r := range result.Results[1:] {
		mean, _ := r.MeanStdDev()
		if mean > wantMean {
			wantAlgo, wantMean = r.Algorithm, mean
		}
	}
	assert.Equal(t, wantAlgo, result.Selection.Algorithm)
	assert.InDelta(t, wantMean, result.Selection.Mean, 1e-12)

	// Final predictor: one prediction per test row, in order, valid labels.
	require.Len(t, result.Predictions, 10)
	for i, p := range result.Predictions {
		assert.Equal(t, fmt.Sprintf("%d", i+1), p.ProblemID)
		assert.Contains(t, classNames, p.Label)
	}

	out := summary.String()
	assert.Contains(t, out, "selected: "+result.Selection.Algorithm)
	assert.Contains(t, out, "Test-set predictions")
}

func TestRunFailsOnUnavailableSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	t.Cleanup(srv.Close)

	_, err := Run(context.Background(), Config{
		TrainURL: srv.URL,
		TestURL:  srv.URL,
		Folds:    5,
		Seed:     42,
		Summary:  &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage load")

	var unavailable *scierr.DataUnavailableError
	assert.True(t, scierr.As(err, &unavailable))
}

func TestRunFailsOnMissingTestFeature(t *testing.T) {
	trainSrv := serveCSV(t, trainingCSV())
	// Drop one feature column from the test table.
	broken := strings.ReplaceAll(testingCSV(), "feat_10", "feat_xx")
	testSrv := serveCSV(t, broken)

	_, err := Run(context.Background(), Config{
		TrainURL: trainSrv.URL,
		TestURL:  testSrv.URL,
		Folds:    5,
		Seed:     42,
		Summary:  &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage predict")

	var mismatch *scierr.PredictionSchemaMismatchError
	require.True(t, scierr.As(err, &mismatch))
	assert.Equal(t, "feat_10", mismatch.Column)
	assert.Equal(t, 10, mismatch.Expected)
}
