package transform

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"econdash/internal/logging"
	"econdash/internal/report"
)

var ErrNonNumericColumn = errors.New("column is not numeric")

// Status is the overall result of Apply.
type Status int

const (
	Pending Status = iota
	Applied
	Failed
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// StepStatus is the result of one of the two independent edits.
type StepStatus int

const (
	NotRun StepStatus = iota
	Done
	Skipped
)

func (s StepStatus) String() string {
	switch s {
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	default:
		return "not_run"
	}
}

// Outcome describes what Apply did. Frame holds the edited dataset and is
// only meaningful when Status is Applied.
type Outcome struct {
	Status   Status
	Frame    dataframe.DataFrame
	Schema   Schema
	Region   StepStatus
	Rates    StepStatus
	Replaced int
	Cause    error
}

// Transformer applies region normalization and rate computation.
type Transformer struct {
	Logger *slog.Logger
}

// Apply runs both edits against df. Missing columns skip the matching edit
// with a warning; any other failure, including a panic inside the dataframe
// library, is recovered and reported as an error.
func (t *Transformer) Apply(df dataframe.DataFrame, rep report.Reporter) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = t.fail(rep, out, fmt.Errorf("%v", r))
		}
	}()

	rep.Info("데이터 처리 중...")

	out.Schema = Inspect(df)
	rep.Info(fmt.Sprintf("파일에서 읽어온 열 목록: [%s]", strings.Join(out.Schema.Columns, ", ")))

	if out.Schema.HasRegion {
		normalized, replaced, err := NormalizeRegion(df)
		if err != nil {
			return t.fail(rep, out, err)
		}
		df = normalized
		out.Region = Done
		out.Replaced = replaced
	} else {
		out.Region = Skipped
		rep.Warning(fmt.Sprintf("'%s' 열을 찾을 수 없어 값을 변경하지 못했습니다.", RegionColumn))
	}

	if out.Schema.HasRateInputs {
		withRates, err := ComputeRates(df)
		if err != nil {
			return t.fail(rep, out, err)
		}
		df = withRates
		out.Rates = Done
		rep.Success("취업률 및 실업률 계산 완료!")
	} else {
		out.Rates = Skipped
		rep.Warning(fmt.Sprintf("계산에 필요한 열(%s)이 없어 취업률/실업률을 계산하지 못했습니다.",
			strings.Join(RateInputColumns, ", ")))
	}

	out.Status = Applied
	out.Frame = df

	logging.LogOperation(t.Logger, "dataset_transformed",
		slog.String("region", out.Region.String()),
		slog.String("rates", out.Rates.String()),
		slog.Int("replaced", out.Replaced),
		slog.Int("rows", df.Nrow()),
		slog.String("component", "transform"))

	return out
}

func (t *Transformer) fail(rep report.Reporter, out Outcome, err error) Outcome {
	rep.Error(fmt.Sprintf("데이터 처리 중 오류가 발생했습니다: %v", err))
	logging.LogError(t.Logger, "failed to transform dataset", err,
		slog.String("component", "transform"))

	out.Status = Failed
	out.Frame = dataframe.DataFrame{}
	out.Cause = err
	return out
}

// NormalizeRegion replaces every exact AggregateRegion value in RegionColumn
// with NationwideLabel and returns how many cells changed.
func NormalizeRegion(df dataframe.DataFrame) (dataframe.DataFrame, int, error) {
	col := df.Col(RegionColumn)
	if col.Err != nil {
		return df, 0, fmt.Errorf("region column: %w", col.Err)
	}

	values := col.Records()
	replaced := 0
	for i, v := range values {
		if v == AggregateRegion {
			values[i] = NationwideLabel
			replaced++
		}
	}
	if replaced == 0 {
		return df, 0, nil
	}

	out := df.Mutate(series.New(values, series.String, RegionColumn))
	if out.Err != nil {
		return df, 0, fmt.Errorf("replace region values: %w", out.Err)
	}
	return out, replaced, nil
}

// ComputeRates adds EmploymentRateColumn and UnemploymentRateColumn, each
// computed per row as numerator / active population * 100.
func ComputeRates(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	employed, err := numericColumn(df, EmployedColumn)
	if err != nil {
		return df, err
	}
	unemployed, err := numericColumn(df, UnemployedColumn)
	if err != nil {
		return df, err
	}
	active, err := numericColumn(df, ActivePopulationColumn)
	if err != nil {
		return df, err
	}

	employment := make([]float64, len(active))
	unemployment := make([]float64, len(active))
	for i := range active {
		employment[i] = Rate(employed[i], active[i])
		unemployment[i] = Rate(unemployed[i], active[i])
	}

	out := df.Mutate(series.New(employment, series.Float, EmploymentRateColumn))
	out = out.Mutate(series.New(unemployment, series.Float, UnemploymentRateColumn))
	if out.Err != nil {
		return df, fmt.Errorf("add rate columns: %w", out.Err)
	}
	return out, nil
}

// Rate returns part / whole * 100, or 0 when the result is undefined.
func Rate(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	r := part / whole * 100
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func numericColumn(df dataframe.DataFrame, name string) ([]float64, error) {
	col := df.Col(name)
	if col.Err != nil {
		return nil, fmt.Errorf("column %q: %w", name, col.Err)
	}

	switch col.Type() {
	case series.Int, series.Float:
		return col.Float(), nil
	case series.String:
		// a column with no values at all gets no numeric type on load
		if allNA(col) {
			return col.Float(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q has type %s", ErrNonNumericColumn, name, col.Type())
}

func allNA(col series.Series) bool {
	for i := 0; i < col.Len(); i++ {
		if !col.Elem(i).IsNA() {
			return false
		}
	}
	return true
}
