package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// WriterStrategy wraps a destination with a log encoding.
type WriterStrategy interface {
	CreateWriter(output io.Writer) io.Writer
}

// JSONWriterStrategy writes zerolog's native JSON lines.
type JSONWriterStrategy struct{}

func (jws *JSONWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return output
}

// ConsoleWriterStrategy writes human readable, optionally colored lines.
type ConsoleWriterStrategy struct {
	NoColor bool
}

func (cws *ConsoleWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
		NoColor:    cws.NoColor,
	}
}

// TextWriterStrategy is the console layout without colors.
type TextWriterStrategy struct{}

func (tws *TextWriterStrategy) CreateWriter(output io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
}

// WriterFactory creates writers based on format
type WriterFactory struct {
	strategies map[LogFormat]WriterStrategy
}

// NewWriterFactory creates a new writer factory
func NewWriterFactory() *WriterFactory {
	return &WriterFactory{
		strategies: map[LogFormat]WriterStrategy{
			FormatJSON:    &JSONWriterStrategy{},
			FormatConsole: &ConsoleWriterStrategy{NoColor: false},
			FormatText:    &TextWriterStrategy{},
		},
	}
}

// CreateConsoleWriter wraps out (os.Stderr when nil) in the strategy for format.
func (wf *WriterFactory) CreateConsoleWriter(format LogFormat, out io.Writer) io.Writer {
	if out == nil {
		out = os.Stderr
	}
	strategy, exists := wf.strategies[format]
	if !exists {
		strategy = &ConsoleWriterStrategy{NoColor: false}
	}
	return strategy.CreateWriter(out)
}

// CreateFileWriter creates a size-rotated file writer. Console format is written without colors.
func (wf *WriterFactory) CreateFileWriter(cfg LoggerConfig) io.Writer {
	if dir := filepath.Dir(cfg.FilePath); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: cfg.MaxBackups,
	}

	if cfg.Format == FormatConsole {
		return (&ConsoleWriterStrategy{NoColor: true}).CreateWriter(rotator)
	}

	strategy, exists := wf.strategies[cfg.Format]
	if !exists {
		strategy = &JSONWriterStrategy{}
	}
	return strategy.CreateWriter(rotator)
}
