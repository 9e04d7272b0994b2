package common

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize int64 // Maximum file size to read (0 = no limit)
}

// DefaultFileReadOptions returns default file reading options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{
		MaxSize: 10 * 1024 * 1024,
	}
}

// FileManager provides file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists reports whether path exists and is a regular file
func (fm *FileManager) FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadFile reads a file, refusing files larger than opts.MaxSize
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, WrapError(ErrNotFound, fmt.Sprintf("file not found: %s", path))
		}
		return nil, WrapError(err, fmt.Sprintf("failed to get file info for: %s", path))
	}
	if info.IsDir() {
		return nil, NewValidationError("path", path, "is a directory, not a file")
	}
	if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
		return nil, WrapError(ErrFileTooLarge, fmt.Sprintf("%s exceeds maximum size of %d bytes", path, opts.MaxSize))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, WrapError(err, fmt.Sprintf("failed to open file: %s", path))
	}
	defer func() {
		if err := file.Close(); err != nil {
			fm.logger.Error().Err(err).Str("path", path).Msg("Failed to close file.")
		}
	}()

	var reader io.Reader = file
	if opts.MaxSize > 0 {
		reader = io.LimitReader(file, opts.MaxSize)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, WrapError(err, fmt.Sprintf("failed to read file content: %s", path))
	}

	fm.logger.Debug().Str("path", path).Int("size", len(content)).Msg("File read")
	return content, nil
}
