package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"econdash/internal/report"
)

func TestNewDatasetEntry(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"전국", "서울"}, series.String, "지역"),
		series.New([]int{50, 30}, series.Int, "취업자"),
		series.New([]float64{90.5, math.NaN()}, series.Float, "취업률"),
	)
	require.NoError(t, df.Err)
	msgs := []report.Message{{Level: report.LevelSuccess, Text: "ok"}}

	entry := NewDatasetEntry(df, msgs, "UTF-8")

	assert.Equal(t, "UTF-8", entry.Encoding)
	assert.Equal(t, []ColumnModel{
		{Name: "지역", Type: "string"},
		{Name: "취업자", Type: "int"},
		{Name: "취업률", Type: "float"},
	}, entry.Columns)
	require.Len(t, entry.Rows, 2)
	assert.Equal(t, []interface{}{"전국", 50, 90.5}, entry.Rows[0])
	assert.Nil(t, entry.Rows[1][2])
	assert.Equal(t, msgs, entry.Messages)

	_, err := json.Marshal(entry)
	assert.NoError(t, err)
}

func TestNewEmptyDatasetEntry(t *testing.T) {
	entry := NewEmptyDatasetEntry(nil)

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	assert.JSONEq(t, `{"columns":[],"rows":[],"messages":[]}`, string(data))
}

func TestCellValue(t *testing.T) {
	inf := series.New([]float64{math.Inf(1)}, series.Float, "x")
	assert.Nil(t, CellValue(inf.Elem(0)))

	str := series.New([]string{"계"}, series.String, "x")
	assert.Equal(t, "계", CellValue(str.Elem(0)))
}
