package extractor

import "fmt"

// ParseError is returned when the markup cannot be read as an HTML document at all.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse HTML content: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
