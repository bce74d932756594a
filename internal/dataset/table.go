// Package dataset loads the weight-lifting exercise tables and prepares the
// feature matrix consumed by the classifiers.
//
// The tables follow the published pml-training/pml-testing schema: a label
// column "classe" with exactly five categories (A correct form, B-E incorrect
// variants), a subject column "user_name" with six lifters, bookkeeping
// columns (row number, timestamps, window markers) and ~150 numeric sensor
// columns, most of which are aggregate statistics populated only on window
// boundaries and therefore mostly missing.
package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	scierr "wlequality/pkg/errors"
)

const (
	// LabelColumn holds the five-category exercise-form label.
	LabelColumn = "classe"
	// SubjectColumn identifies which of the six lifters produced the row.
	SubjectColumn = "user_name"
	// ProblemIDColumn is the submission row identifier on the test table.
	ProblemIDColumn = "problem_id"
)

// ClassLabels are the only values the label column may take.
var ClassLabels = []string{"A", "B", "C", "D", "E"}

// metadataColumns identify the recording session rather than the sensor
// signal. They are never offered to the models even when fully populated.
var metadataColumns = map[string]bool{
	"X":                    true,
	SubjectColumn:          true,
	"raw_timestamp_part_1": true,
	"raw_timestamp_part_2": true,
	"cvtd_timestamp":       true,
	"new_window":           true,
	"num_window":           true,
	LabelColumn:            true,
	ProblemIDColumn:        true,
}

// Table wraps one observation table together with its role name
// ("training" or "testing") for diagnostics.
type Table struct {
	Name string
	df   dataframe.DataFrame
}

// FromDataFrame wraps an already parsed dataframe.
func FromDataFrame(name string, df dataframe.DataFrame) Table {
	return Table{Name: name, df: df}
}

// NumRows returns the number of observations.
func (t Table) NumRows() int {
	return t.df.Nrow()
}

// Columns returns the column names in file order.
func (t Table) Columns() []string {
	return t.df.Names()
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.df.Names() {
		if c == name {
			return true
		}
	}
	return false
}

// Labels returns the label column as strings.
func (t Table) Labels() ([]string, error) {
	if !t.HasColumn(LabelColumn) {
		return nil, scierr.NewSchemaMismatchError(t.Name, LabelColumn, "label column absent")
	}
	return t.df.Col(LabelColumn).Records(), nil
}

// Subjects returns the subject column as strings.
func (t Table) Subjects() ([]string, error) {
	if !t.HasColumn(SubjectColumn) {
		return nil, scierr.NewSchemaMismatchError(t.Name, SubjectColumn, "subject column absent")
	}
	return t.df.Col(SubjectColumn).Records(), nil
}

// ProblemIDs returns the submission identifiers of the test table.
func (t Table) ProblemIDs() ([]string, error) {
	if !t.HasColumn(ProblemIDColumn) {
		return nil, scierr.NewSchemaMismatchError(t.Name, ProblemIDColumn, "problem id column absent")
	}
	return t.df.Col(ProblemIDColumn).Records(), nil
}

// Matrix extracts the named feature columns into a dense row-major matrix,
// one row per observation, columns in the given order.
func (t Table) Matrix(features []string) (*mat.Dense, error) {
	if len(features) == 0 {
		return nil, scierr.NewValueError("Matrix", "empty feature set")
	}
	n := t.df.Nrow()
	m := mat.NewDense(n, len(features), nil)
	for j, name := range features {
		if !t.HasColumn(name) {
			return nil, scierr.NewSchemaMismatchError(t.Name, name, "feature column absent")
		}
		col := t.df.Col(name).Float()
		for i := 0; i < n; i++ {
			m.Set(i, j, col[i])
		}
	}
	return m, nil
}

// FeatureColumn returns a single numeric column, used by the exploratory
// scatter plots.
func (t Table) FeatureColumn(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, scierr.NewSchemaMismatchError(t.Name, name, "column absent")
	}
	return t.df.Col(name).Float(), nil
}

func (t Table) isNumeric(name string) bool {
	switch t.df.Col(name).Type() {
	case series.Float, series.Int:
		return true
	default:
		return false
	}
}

func (t Table) missingCount(name string) int {
	count := 0
	for _, nan := range t.df.Col(name).IsNaN() {
		if nan {
			count++
		}
	}
	return count
}
