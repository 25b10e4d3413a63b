package webui

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"econdash/internal/utils"
)

// SortSpec is the grid ordering requested through the query string.
type SortSpec struct {
	Column string
	Order  string
}

// GridColumn is one header cell.
type GridColumn struct {
	Name      string
	Numeric   bool
	SortURL   string
	Indicator string
}

// GridCell is one rendered value.
type GridCell struct {
	Text    string
	Numeric bool
}

// GridRow carries the row's position in the unsorted dataset.
type GridRow struct {
	Index int
	Cells []GridCell
}

// Grid is the display form of a dataset.
type Grid struct {
	Columns []GridColumn
	Rows    []GridRow
	Sorted  SortSpec
	NumRows int
	NumCols int
}

const indexKey = "__row_index__"

// BuildGrid renders df as a grid, ordered by sortBy when sortBy names a column
// of df. df itself is left untouched.
func BuildGrid(df dataframe.DataFrame, sortBy SortSpec) (Grid, error) {
	names := df.Names()
	if !hasColumn(names, sortBy.Column) {
		sortBy = SortSpec{}
	} else if sortBy.Order == "" {
		sortBy.Order = utils.OrderAsc
	}

	view := df
	index := make([]int, df.Nrow())
	for i := range index {
		index[i] = i
	}

	if sortBy.Column != "" && df.Nrow() > 1 {
		var err error
		view, index, err = arrange(df, sortBy, index)
		if err != nil {
			return Grid{}, err
		}
	}

	types := view.Types()
	grid := Grid{
		Sorted:  sortBy,
		NumRows: view.Nrow(),
		NumCols: view.Ncol(),
	}
	for i, name := range names {
		grid.Columns = append(grid.Columns, GridColumn{
			Name:      name,
			Numeric:   isNumeric(types[i]),
			SortURL:   sortURL(name, sortBy),
			Indicator: indicator(name, sortBy),
		})
	}

	for r := 0; r < view.Nrow(); r++ {
		row := GridRow{Index: index[r], Cells: make([]GridCell, len(names))}
		for c := range names {
			row.Cells[c] = GridCell{
				Text:    FormatCell(view.Elem(r, c)),
				Numeric: grid.Columns[c].Numeric,
			}
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid, nil
}

// arrange sorts df by sortBy and returns the original position of every row.
func arrange(df dataframe.DataFrame, sortBy SortSpec, index []int) (dataframe.DataFrame, []int, error) {
	key := uniqueName(df.Names(), indexKey)
	order := dataframe.Sort(sortBy.Column)
	if sortBy.Order == utils.OrderDesc {
		order = dataframe.RevSort(sortBy.Column)
	}

	sorted := df.Mutate(series.New(index, series.Int, key)).Arrange(order)
	if sorted.Err != nil {
		return df, nil, fmt.Errorf("sort by %q: %w", sortBy.Column, sorted.Err)
	}

	positions, err := sorted.Col(key).Int()
	if err != nil {
		return df, nil, fmt.Errorf("read row positions: %w", err)
	}

	view := sorted.Drop(key)
	if view.Err != nil {
		return df, nil, fmt.Errorf("drop row positions: %w", view.Err)
	}
	return view, positions, nil
}

// FormatCell renders one value: floats with two decimals, missing values
// as the empty string.
func FormatCell(e series.Element) string {
	if e.IsNA() {
		return ""
	}
	if e.Type() == series.Float {
		f := e.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		return strconv.FormatFloat(f, 'f', 2, 64)
	}
	return e.String()
}

func isNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

// sortURL toggles the order when the column is already the sort key.
func sortURL(name string, current SortSpec) string {
	order := utils.OrderAsc
	if current.Column == name && current.Order == utils.OrderAsc {
		order = utils.OrderDesc
	}
	return "/?" + url.Values{"sort": {name}, "order": {order}}.Encode()
}

func indicator(name string, current SortSpec) string {
	if current.Column != name {
		return ""
	}
	if current.Order == utils.OrderDesc {
		return "▼"
	}
	return "▲"
}

func hasColumn(names []string, name string) bool {
	if name == "" {
		return false
	}
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func uniqueName(names []string, base string) string {
	name := base
	for hasColumn(names, name) {
		name = "_" + name
	}
	return name
}
