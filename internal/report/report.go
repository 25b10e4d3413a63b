package report

import (
	"log/slog"
)

// Level classifies a user-facing status message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a single banner shown to the user.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Reporter is the capability the loader and transformer use to surface status
// messages. Implementations decide how the messages are presented.
type Reporter interface {
	Info(text string)
	Success(text string)
	Warning(text string)
	Error(text string)
}

// Recorder is a Reporter that keeps messages in emission order and mirrors
// each of them into a structured logger.
type Recorder struct {
	logger   *slog.Logger
	messages []Message
}

// NewRecorder creates a Recorder. A nil logger disables log mirroring.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger != nil {
		logger = logger.With(slog.String("component", "report"))
	}
	return &Recorder{logger: logger}
}

func (r *Recorder) Info(text string)    { r.add(LevelInfo, text) }
func (r *Recorder) Success(text string) { r.add(LevelSuccess, text) }
func (r *Recorder) Warning(text string) { r.add(LevelWarning, text) }
func (r *Recorder) Error(text string)   { r.add(LevelError, text) }

// Messages returns a copy of the recorded messages, oldest first.
func (r *Recorder) Messages() []Message {
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// HasErrors reports whether any error-level message was recorded.
func (r *Recorder) HasErrors() bool {
	for _, m := range r.messages {
		if m.Level == LevelError {
			return true
		}
	}
	return false
}

func (r *Recorder) add(level Level, text string) {
	r.messages = append(r.messages, Message{Level: level, Text: text})

	if r.logger == nil {
		return
	}

	attrs := []any{slog.String("level_ui", string(level))}
	switch level {
	case LevelWarning:
		r.logger.Warn(text, attrs...)
	case LevelError:
		r.logger.Error(text, attrs...)
	default:
		r.logger.Info(text, attrs...)
	}
}
