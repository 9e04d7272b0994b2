package httpclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Short failure codes used in user-facing error messages.
const (
	CodeNotFound          = "ENOTFOUND"
	CodeConnectionRefused = "ECONNREFUSED"
	CodeConnectionReset   = "ECONNRESET"
	CodeTimeout           = "ETIMEDOUT"
	CodeCertificate       = "ECERT"
	CodeCanceled          = "ECANCELED"
	CodeUnknown           = "EUNKNOWN"
)

// NetworkError represents a network-level error.
type NetworkError struct {
	URL     string
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for URL '%s': %s: %v", e.URL, e.Message, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError.
func NewNetworkError(url, message string, err error) error {
	return &NetworkError{URL: url, Message: message, Err: err}
}

// HTTPError represents a response whose status is outside 200-399.
type HTTPError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error for URL '%s': status %d, body: %s", e.URL, e.StatusCode, e.Body)
}

// NewHTTPErrorWithURL creates a new HTTPError.
func NewHTTPErrorWithURL(statusCode int, body string, url string) error {
	return &HTTPError{StatusCode: statusCode, Body: body, URL: url}
}

// ErrorCode classifies err into one of the Code* constants, or HTTP_<status> for HTTP errors.
// A nil error yields an empty string.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("HTTP_%d", httpErr.StatusCode)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return CodeTimeout
		}
		return CodeNotFound
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnectionRefused
	case errors.Is(err, syscall.ECONNRESET):
		return CodeConnectionReset
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimeout
	}

	if isCertificateError(err) {
		return CodeCertificate
	}

	return CodeUnknown
}

func isCertificateError(err error) bool {
	var verifyErr *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var invalidCert x509.CertificateInvalidError
	return errors.As(err, &verifyErr) ||
		errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidCert)
}
