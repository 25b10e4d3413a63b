package restapi

import (
	"log/slog"
	"net/http"

	"github.com/klauspost/compress/gzhttp"

	"econdash/internal/logging"
	"econdash/internal/utils"
)

// CompressionConfig holds configuration options for response compression
type CompressionConfig struct {
	// MinSize is the smallest body in bytes worth compressing
	MinSize int
	// Level is the gzip level, 1-9
	Level int
	// SkipContentTypes are served as is; XLSX workbooks are zip archives already
	SkipContentTypes []string
}

// DefaultCompressionConfig compresses JSON, CSV and HTML above 1 KiB
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:          1024,
		Level:            6,
		SkipContentTypes: []string{exportContentTypes[utils.FormatXLSX]},
	}
}

// NewCompressionMiddleware creates a compression middleware with the given configuration
func NewCompressionMiddleware(config CompressionConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	wrapper, err := newGzipWrapper(config)
	return func(next http.Handler) http.Handler {
		if err != nil {
			logging.LogError(logger, "invalid compression config, using defaults", err,
				slog.Int("min_size", config.MinSize),
				slog.Int("level", config.Level),
				slog.String("component", "http_server"))
			return gzhttp.GzipHandler(next)
		}
		return wrapper(next)
	}
}

func newGzipWrapper(config CompressionConfig) (func(http.Handler) http.HandlerFunc, error) {
	// an empty exception list would disable compression for every type
	if len(config.SkipContentTypes) == 0 {
		return gzhttp.NewWrapper(
			gzhttp.MinSize(config.MinSize),
			gzhttp.CompressionLevel(config.Level),
		)
	}
	return gzhttp.NewWrapper(
		gzhttp.MinSize(config.MinSize),
		gzhttp.CompressionLevel(config.Level),
		gzhttp.ExceptContentTypes(config.SkipContentTypes),
	)
}

// CompressionMiddleware applies gzip compression with default settings
func CompressionMiddleware(next http.Handler) http.Handler {
	return NewCompressionMiddleware(DefaultCompressionConfig(), nil)(next)
}
