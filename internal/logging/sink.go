package logging

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdfence/pkg/rules"
)

// LogSink reports quarantined rule blocks as warnings.
type LogSink struct {
	Logger *log.Logger
}

// NewSink returns a LogSink writing to logger, or to the default logger
// when logger is nil.
func NewSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = Default()
	}
	return &LogSink{Logger: logger}
}

// Report implements rules.Sink.
func (s *LogSink) Report(language, blockText string, err error) {
	fields := []any{FieldLanguage, language}

	var parseErr *rules.BlockParseError
	if errors.As(err, &parseErr) && parseErr.Line > 0 {
		fields = append(fields, FieldLine, parseErr.Line)
	}
	fields = append(fields, FieldError, err)

	s.Logger.Warn("removed malformed rule block", fields...)
	s.Logger.Debug("removed block content", FieldLanguage, language, FieldBlock, strings.TrimRight(blockText, "\n"))
}
