package dataset

import (
	scierr "wlequality/pkg/errors"
)

// MissingnessReport maps column name to the fraction of missing cells.
type MissingnessReport map[string]float64

// Missingness computes the per-column missing fraction.
func (t Table) Missingness() MissingnessReport {
	report := make(MissingnessReport, len(t.Columns()))
	n := t.NumRows()
	for _, name := range t.Columns() {
		report[name] = float64(t.missingCount(name)) / float64(n)
	}
	return report
}

// FilterComplete selects the feature set: numeric columns with zero missing
// values, excluding the identifying metadata columns. The label and subject
// columns always survive on the returned table regardless of missingness;
// they are never features. No imputation, no partial retention: a column
// with a single missing cell is wholly excluded.
//
// An empty feature set is not an error; downstream stages will then work on
// identifier columns only and the models will have nothing to learn from.
func FilterComplete(t Table) (Table, []string, MissingnessReport, error) {
	report := t.Missingness()

	features := make([]string, 0, len(report))
	for _, name := range t.Columns() {
		if metadataColumns[name] {
			continue
		}
		if !t.isNumeric(name) {
			continue
		}
		if report[name] == 0 {
			features = append(features, name)
		}
	}

	keep := make([]string, 0, len(features)+3)
	for _, name := range []string{LabelColumn, SubjectColumn, ProblemIDColumn} {
		if t.HasColumn(name) {
			keep = append(keep, name)
		}
	}
	keep = append(keep, features...)

	filtered := t.df.Select(keep)
	if filtered.Error() != nil {
		return Table{}, nil, nil, scierr.Wrapf(filtered.Error(), "filtering table %q", t.Name)
	}
	return FromDataFrame(t.Name, filtered), features, report, nil
}
