package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-gota/gota/dataframe"

	scierr "wlequality/pkg/errors"
)

// Default dataset locations, from the Human Activity Recognition project.
const (
	DefaultTrainURL = "https://d396qusza40orc.cloudfront.net/predmachlearn/pml-training.csv"
	DefaultTestURL  = "https://d396qusza40orc.cloudfront.net/predmachlearn/pml-testing.csv"
)

// naMarkers are the cell values the source files use for absent readings.
var naMarkers = []string{"NA", "#DIV/0!", ""}

// Load fetches the training and testing tables. One GET per source, no
// retries: an unreachable or malformed source fails the whole run.
func Load(ctx context.Context, trainURL, testURL string) (Table, Table, error) {
	train, err := Fetch(ctx, "training", trainURL)
	if err != nil {
		return Table{}, Table{}, err
	}
	test, err := Fetch(ctx, "testing", testURL)
	if err != nil {
		return Table{}, Table{}, err
	}
	return train, test, nil
}

// Fetch retrieves one CSV source and parses it into a Table.
func Fetch(ctx context.Context, name, url string) (Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Table{}, scierr.NewDataUnavailableError(url, err.Error())
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Table{}, scierr.NewDataUnavailableError(url, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return Table{}, scierr.NewDataUnavailableError(url, fmt.Sprintf("status %d", resp.StatusCode))
	}
	return Parse(name, resp.Body)
}

// Parse reads a header-bearing CSV stream into a Table, mapping the
// dataset's NA markers to missing values.
func Parse(name string, r io.Reader) (Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(naMarkers),
	)
	if df.Error() != nil {
		return Table{}, scierr.NewDataUnavailableError(name, df.Error().Error())
	}
	if df.Nrow() == 0 {
		return Table{}, scierr.NewDataUnavailableError(name, "no rows")
	}
	return FromDataFrame(name, df), nil
}
