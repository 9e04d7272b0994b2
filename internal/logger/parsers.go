package logger

import (
	"strings"

	"github.com/aleister1102/linkcheck/internal/common"
	"github.com/rs/zerolog"
)

// LogLevelParser handles parsing of log levels
type LogLevelParser struct{}

// NewLogLevelParser creates a new log level parser
func NewLogLevelParser() *LogLevelParser {
	return &LogLevelParser{}
}

// ParseLevel parses string log level to zerolog.Level. Empty input means info.
func (llp *LogLevelParser) ParseLevel(levelStr string) (zerolog.Level, error) {
	if strings.TrimSpace(levelStr) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, common.WrapError(err, "invalid log level")
	}
	return level, nil
}

// LogFormatParser handles parsing of log formats
type LogFormatParser struct{}

// NewLogFormatParser creates a new log format parser
func NewLogFormatParser() *LogFormatParser {
	return &LogFormatParser{}
}

// ParseFormat parses string format to LogFormat
func (lfp *LogFormatParser) ParseFormat(formatStr string) LogFormat {
	switch strings.ToLower(formatStr) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}
