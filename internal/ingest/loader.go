package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"

	"econdash/internal/logging"
	"econdash/internal/report"
)

// DefaultFileName is the dataset read from the working directory.
const DefaultFileName = "경제활동_통합.csv"

var (
	ErrFileNotFound = errors.New("dataset file not found")
	ErrInvalidUTF8  = errors.New("invalid UTF-8 byte sequence")
	ErrInvalidCP949 = errors.New("invalid cp949 byte sequence")
	ErrEmptyFile    = errors.New("no columns to parse from file")
)

// Status is the terminal state of a load.
type Status int

const (
	Failed Status = iota
	Loaded
)

func (s Status) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "failed"
}

// Result is what a Loader hands to the rest of the pipeline. Frame is only
// meaningful when Status is Loaded; Cause is only set when it is Failed.
type Result struct {
	Status   Status
	Encoding Encoding
	Frame    dataframe.DataFrame
	Cause    error
}

// OK reports whether a dataset is available.
func (r Result) OK() bool {
	return r.Status == Loaded
}

// Loader reads the dataset file, trying UTF-8 first and CP949 once after any
// failure other than a missing file.
type Loader struct {
	Path   string
	Logger *slog.Logger
}

// NewLoader creates a Loader for path. An empty path means DefaultFileName.
func NewLoader(path string, logger *slog.Logger) *Loader {
	if path == "" {
		path = DefaultFileName
	}
	return &Loader{Path: path, Logger: logger}
}

// Load runs the two-attempt state machine and reports every transition.
func (l *Loader) Load(ctx context.Context, rep report.Reporter) Result {
	start := time.Now()

	frame, err := l.attempt(ctx, UTF8)
	if err == nil {
		rep.Success(fmt.Sprintf("파일을 성공적으로 읽었습니다 (%s 인코딩).", UTF8))
		return l.loaded(frame, UTF8, start)
	}

	if errors.Is(err, ErrFileNotFound) {
		rep.Error(fmt.Sprintf("오류: '%s' 파일을 현재 디렉토리에서 찾을 수 없습니다.", l.Path))
		return l.failed(err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return l.failed(ctxErr)
	}

	rep.Warning(fmt.Sprintf("%s 인코딩으로 파일을 읽는 데 실패했습니다. (%v)", UTF8, err))
	rep.Info(fmt.Sprintf("%s 인코딩으로 다시 시도합니다...", CP949))

	frame, err = l.attempt(ctx, CP949)
	if err != nil {
		rep.Error(fmt.Sprintf("%s 인코딩으로도 파일을 읽는 데 실패했습니다. (%v)", CP949, err))
		rep.Error("파일의 인코딩을 확인하거나, 파일이 올바른 CSV 형식이 맞는지 확인해주세요.")
		return l.failed(err)
	}

	rep.Success(fmt.Sprintf("파일을 성공적으로 읽었습니다 (%s 인코딩).", CP949))
	return l.loaded(frame, CP949, start)
}

func (l *Loader) attempt(ctx context.Context, enc Encoding) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	if l.Logger != nil {
		l.Logger.Debug("reading dataset",
			slog.String("path", l.Path),
			slog.String("encoding", enc.String()),
			slog.String("component", "ingest"))
	}

	raw, err := l.readFile()
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	text, err := enc.Decode(raw)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	return Parse(text)
}

func (l *Loader) readFile() ([]byte, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, l.Path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer logging.SafeCloseWithLogging(f, l.Logger, "read_dataset")

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return raw, nil
}

func (l *Loader) loaded(frame dataframe.DataFrame, enc Encoding, start time.Time) Result {
	logging.LogOperation(l.Logger, "dataset_loaded",
		slog.String("path", l.Path),
		slog.String("encoding", enc.String()),
		slog.Int("rows", frame.Nrow()),
		slog.Int("columns", frame.Ncol()),
		slog.Duration("duration", time.Since(start)),
		slog.String("component", "ingest"))

	return Result{Status: Loaded, Encoding: enc, Frame: frame}
}

func (l *Loader) failed(err error) Result {
	logging.LogError(l.Logger, "failed to load dataset", err,
		slog.String("path", l.Path),
		slog.String("component", "ingest"))

	return Result{Status: Failed, Cause: err}
}
