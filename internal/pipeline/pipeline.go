package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/google/uuid"

	"econdash/internal/ingest"
	"econdash/internal/logging"
	"econdash/internal/metrics"
	"econdash/internal/report"
	"econdash/internal/transform"
)

// Run is everything one pass of the pipeline produced. Nothing in it is
// shared with any other pass.
type Run struct {
	ID       string
	Messages []report.Message
	Load     ingest.Result
	Outcome  transform.Outcome
	Duration time.Duration
}

// Ready reports whether the dataset was loaded and transformed and can be
// displayed.
func (r Run) Ready() bool {
	return r.Load.OK() && r.Outcome.Status == transform.Applied
}

// Frame returns the transformed dataset. It is empty unless Ready.
func (r Run) Frame() dataframe.DataFrame {
	return r.Outcome.Frame
}

// Encoding returns the encoding the file was read with, or "" on failure.
func (r Run) Encoding() string {
	if !r.Load.OK() {
		return ""
	}
	return r.Load.Encoding.String()
}

// OutcomeLabel returns the metrics label for the run.
func (r Run) OutcomeLabel() string {
	switch {
	case !r.Load.OK():
		return metrics.OutcomeLoadFailed
	case r.Outcome.Status != transform.Applied:
		return metrics.OutcomeProcessFailed
	default:
		return metrics.OutcomeProcessed
	}
}

// Runner executes Loader then Transformer, linearly, on a fresh reporter.
type Runner struct {
	Loader      *ingest.Loader
	Transformer *transform.Transformer
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// NewRunner wires a Runner for the dataset at dataFile. m may be nil.
func NewRunner(dataFile string, logger *slog.Logger, m *metrics.Metrics) *Runner {
	return &Runner{
		Loader:      ingest.NewLoader(dataFile, logger),
		Transformer: &transform.Transformer{Logger: logger},
		Metrics:     m,
		Logger:      logger,
	}
}

// Run executes one complete pass.
func (p *Runner) Run(ctx context.Context) Run {
	start := time.Now()
	run := Run{ID: uuid.NewString()}

	logger := p.Logger
	if logger != nil {
		logger = logger.With(slog.String("run_id", run.ID))
	}
	rec := report.NewRecorder(logger)

	run.Load = p.Loader.Load(ctx, rec)
	if run.Load.OK() {
		run.Outcome = p.Transformer.Apply(run.Load.Frame, rec)
	}

	run.Messages = rec.Messages()
	run.Duration = time.Since(start)

	p.Metrics.ObserveRun(run.OutcomeLabel(), run.Encoding(), skippedSteps(run.Outcome), run.Duration)
	logging.LogOperation(logger, "pipeline_run",
		slog.String("outcome", run.OutcomeLabel()),
		slog.Int("messages", len(run.Messages)),
		slog.Duration("duration", run.Duration),
		slog.String("component", "pipeline"))

	return run
}

func skippedSteps(out transform.Outcome) []string {
	var steps []string
	if out.Region == transform.Skipped {
		steps = append(steps, "region")
	}
	if out.Rates == transform.Skipped {
		steps = append(steps, "rates")
	}
	return steps
}
