package transform

import (
	"github.com/go-gota/gota/dataframe"
)

// Column names and values of the economic activity dataset.
const (
	RegionColumn           = "지역"
	AggregateRegion        = "계"
	NationwideLabel        = "전국"
	EmployedColumn         = "취업자"
	UnemployedColumn       = "실업자"
	ActivePopulationColumn = "경제활동인구"
	EmploymentRateColumn   = "취업률"
	UnemploymentRateColumn = "실업률"
)

// RateInputColumns are required, all of them, before any rate is derived.
var RateInputColumns = []string{EmployedColumn, UnemployedColumn, ActivePopulationColumn}

// Schema records which optional columns a dataset carries.
type Schema struct {
	Columns           []string
	HasRegion         bool
	HasRateInputs     bool
	MissingRateInputs []string
}

// Inspect checks df for the region column and the rate inputs. Names are
// compared by exact text equality.
func Inspect(df dataframe.DataFrame) Schema {
	names := df.Names()
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	schema := Schema{
		Columns:   names,
		HasRegion: present[RegionColumn],
	}
	for _, name := range RateInputColumns {
		if !present[name] {
			schema.MissingRateInputs = append(schema.MissingRateInputs, name)
		}
	}
	schema.HasRateInputs = len(schema.MissingRateInputs) == 0

	return schema
}
