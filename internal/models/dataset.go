package models

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"econdash/internal/report"
)

// ColumnModel describes one dataset column.
type ColumnModel struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DatasetEntry is the machine-readable form of one dashboard run.
type DatasetEntry struct {
	Encoding string           `json:"encoding,omitempty"`
	Columns  []ColumnModel    `json:"columns"`
	Rows     [][]interface{}  `json:"rows"`
	Messages []report.Message `json:"messages"`
}

// NewDatasetEntry converts df into columns and rows of JSON-ready values.
func NewDatasetEntry(df dataframe.DataFrame, messages []report.Message, encoding string) DatasetEntry {
	entry := NewEmptyDatasetEntry(messages)
	entry.Encoding = encoding

	names := df.Names()
	types := df.Types()
	for i, name := range names {
		entry.Columns = append(entry.Columns, ColumnModel{Name: name, Type: string(types[i])})
	}

	for r := 0; r < df.Nrow(); r++ {
		row := make([]interface{}, len(names))
		for c := range names {
			row[c] = CellValue(df.Elem(r, c))
		}
		entry.Rows = append(entry.Rows, row)
	}

	return entry
}

// NewEmptyDatasetEntry is the entry of a run that produced no dataset.
func NewEmptyDatasetEntry(messages []report.Message) DatasetEntry {
	if messages == nil {
		messages = []report.Message{}
	}
	return DatasetEntry{
		Columns:  []ColumnModel{},
		Rows:     [][]interface{}{},
		Messages: messages,
	}
}

// CellValue returns the JSON value of a cell: nil for missing values and
// for non-finite floats.
func CellValue(e series.Element) interface{} {
	if e.IsNA() {
		return nil
	}
	v := e.Val()
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return nil
	}
	return v
}
