package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scierr "wlequality/pkg/errors"
)

const sampleCSV = `X,user_name,num_window,roll_belt,pitch_belt,var_roll_belt,stddev_yaw_arm,classe
1,carlitos,11,1.41,8.07,NA,0.5,A
2,carlitos,11,1.42,8.06,0.2,#DIV/0!,A
3,pedro,12,1.48,8.05,0.3,0.7,B
4,pedro,12,1.55,8.09,NA,0.8,C
5,jeremy,13,1.60,8.10,0.1,0.9,D
6,jeremy,13,1.61,8.13,0.4,,E
`

func parseSample(t *testing.T) Table {
	t.Helper()
	tbl, err := Parse("training", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return tbl
}

func TestParseMapsNAMarkers(t *testing.T) {
	tbl := parseSample(t)
	report := tbl.Missingness()

	assert.Equal(t, 6, tbl.NumRows())
	assert.InDelta(t, 2.0/6.0, report["var_roll_belt"], 1e-12)
	assert.InDelta(t, 2.0/6.0, report["stddev_yaw_arm"], 1e-12)
	assert.Equal(t, 0.0, report["roll_belt"])
	assert.Equal(t, 0.0, report["classe"])
}

func TestParseRejectsEmptyAndMalformed(t *testing.T) {
	_, err := Parse("training", strings.NewReader("a,b,c\n"))
	require.Error(t, err)
	assert.True(t, scierr.As(err, new(*scierr.DataUnavailableError)))

	_, err = Parse("training", strings.NewReader("a,b\n1,2,3\n"))
	require.Error(t, err)
	assert.True(t, scierr.As(err, new(*scierr.DataUnavailableError)))
}

func TestFilterCompleteKeepsOnlyZeroMissingFeatures(t *testing.T) {
	tbl := parseSample(t)

	filtered, features, report, err := FilterComplete(tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"roll_belt", "pitch_belt"}, features)
	for _, f := range features {
		assert.Equal(t, 0.0, report[f], "retained column %s must have no missing cells", f)
	}
	for _, dropped := range []string{"var_roll_belt", "stddev_yaw_arm"} {
		assert.Greater(t, report[dropped], 0.0)
		assert.False(t, filtered.HasColumn(dropped))
	}

	// Label and subject always survive; metadata never becomes a feature.
	assert.True(t, filtered.HasColumn(LabelColumn))
	assert.True(t, filtered.HasColumn(SubjectColumn))
	assert.NotContains(t, features, "X")
	assert.NotContains(t, features, "num_window")
}

func TestFilterCompleteAllColumnsMissing(t *testing.T) {
	csv := "user_name,a,b,classe\nanna,NA,1,A\nanna,2,NA,B\n"
	tbl, err := Parse("training", strings.NewReader(csv))
	require.NoError(t, err)

	filtered, features, _, err := FilterComplete(tbl)
	require.NoError(t, err)
	assert.Empty(t, features)
	assert.True(t, filtered.HasColumn(LabelColumn))
}

func TestMatrix(t *testing.T) {
	tbl := parseSample(t)
	m, err := tbl.Matrix([]string{"roll_belt", "pitch_belt"})
	require.NoError(t, err)

	rows, cols := m.Dims()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 2, cols)
	assert.InDelta(t, 1.41, m.At(0, 0), 1e-9)
	assert.InDelta(t, 8.13, m.At(5, 1), 1e-9)
}

func TestMatrixMissingColumn(t *testing.T) {
	tbl := parseSample(t)
	_, err := tbl.Matrix([]string{"roll_belt", "magnet_dumbbell_z"})
	require.Error(t, err)

	var mismatch *scierr.SchemaMismatchError
	require.True(t, scierr.As(err, &mismatch))
	assert.Equal(t, "magnet_dumbbell_z", mismatch.Column)
}

func TestSubjects(t *testing.T) {
	tbl := parseSample(t)
	subjects, err := tbl.Subjects()
	require.NoError(t, err)
	assert.Equal(t, []string{"carlitos", "carlitos", "pedro", "pedro", "jeremy", "jeremy"}, subjects)
}

func TestSubjectsMissingColumn(t *testing.T) {
	csv := "roll_belt,classe\n1.0,A\n"
	tbl, err := Parse("training", strings.NewReader(csv))
	require.NoError(t, err)

	_, err = tbl.Subjects()
	var mismatch *scierr.SchemaMismatchError
	require.True(t, scierr.As(err, &mismatch))
	assert.Equal(t, SubjectColumn, mismatch.Column)
}

func TestLabelsMissingColumn(t *testing.T) {
	csv := "user_name,roll_belt\nanna,1.0\n"
	tbl, err := Parse("testing", strings.NewReader(csv))
	require.NoError(t, err)

	_, err = tbl.Labels()
	var mismatch *scierr.SchemaMismatchError
	require.True(t, scierr.As(err, &mismatch))
	assert.Equal(t, LabelColumn, mismatch.Column)
}

func TestFetchUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), "training", srv.URL)
	require.Error(t, err)

	var unavailable *scierr.DataUnavailableError
	require.True(t, scierr.As(err, &unavailable))
	assert.Contains(t, unavailable.Reason, "404")
}

func TestLabelEncoderRoundTrip(t *testing.T) {
	enc := FitLabelEncoder([]string{"B", "A", "E", "C", "D", "A"})
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, enc.Classes())

	codes, err := enc.Transform([]string{"A", "E", "C"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 2}, codes)

	labels, err := enc.Inverse(codes)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "E", "C"}, labels)
}

func TestLabelEncoderUnseenLabel(t *testing.T) {
	enc := FitLabelEncoder([]string{"A", "B"})
	_, err := enc.Transform([]string{"Z"})
	assert.Error(t, err)

	_, err = enc.Inverse([]int{7})
	assert.Error(t, err)
}
