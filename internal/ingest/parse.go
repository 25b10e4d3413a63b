package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// naValues are the cell contents read as missing values.
var naValues = []string{"", "NA", "N/A", "NaN", "nan", "null"}

// Parse reads comma separated UTF-8 text with a header row into a dataframe,
// detecting a type for every column. A header without rows is an empty
// dataset of string columns.
func Parse(text []byte) (dataframe.DataFrame, error) {
	if len(bytes.TrimSpace(text)) == 0 {
		return dataframe.DataFrame{}, ErrEmptyFile
	}

	records, err := csv.NewReader(bytes.NewReader(text)).ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, ErrEmptyFile
	}
	records[0] = dedupeHeader(records[0])

	if len(records) == 1 {
		return emptyFrame(records[0])
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", df.Err)
	}

	return df, nil
}

func emptyFrame(header []string) (dataframe.DataFrame, error) {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", df.Err)
	}
	return df, nil
}

// dedupeHeader keeps the first occurrence of a repeated name and suffixes
// later ones with ".1", ".2" and so on.
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, name := range header {
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
