package urlhandler

import "fmt"

// MalformedReferenceError reports a reference that could not be turned into an absolute URL.
type MalformedReferenceError struct {
	Raw  string
	Base string
	Err  error
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("malformed reference '%s' on '%s': %v", e.Raw, e.Base, e.Err)
}

func (e *MalformedReferenceError) Unwrap() error {
	return e.Err
}
