package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy. InvalidURL and UnsupportedPlatform are raised locally,
// the remaining kinds come from the extraction engine.
var (
	ErrInvalidURL          = errors.New("invalid URL")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrDownloadFailed      = errors.New("download failed")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrUnexpected          = errors.New("unexpected failure")
)

// ErrorKind is the stable string code stored in results and history
type ErrorKind string

const (
	KindNone                ErrorKind = ""
	KindInvalidURL          ErrorKind = "invalid_url"
	KindUnsupportedPlatform ErrorKind = "unsupported_platform"
	KindDownloadFailed      ErrorKind = "download_failed"
	KindExtractionFailed    ErrorKind = "extraction_failed"
	KindUnexpected          ErrorKind = "unexpected_failure"
)

// KindOf maps an error onto the taxonomy. Unknown errors are unexpected.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidURL):
		return KindInvalidURL
	case errors.Is(err, ErrUnsupportedPlatform):
		return KindUnsupportedPlatform
	case errors.Is(err, ErrDownloadFailed):
		return KindDownloadFailed
	case errors.Is(err, ErrExtractionFailed):
		return KindExtractionFailed
	default:
		return KindUnexpected
	}
}

// UnsupportedPlatformError is returned when a platform alias is not registered
type UnsupportedPlatformError struct {
	Platform  string
	Available []string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("platform '%s' is not supported (available: %s)", e.Platform, strings.Join(e.Available, ", "))
}

// Is reports whether target is ErrUnsupportedPlatform
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// EngineError wraps a failure reported by the extraction engine.
// Kind is one of ErrDownloadFailed, ErrExtractionFailed or ErrUnexpected.
type EngineError struct {
	Kind error
	Err  error
}

// NewEngineError creates an engine error of the given kind
func NewEngineError(kind error, err error) *EngineError {
	return &EngineError{Kind: kind, Err: err}
}

func (e *EngineError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Is reports whether target is the kind of this error
func (e *EngineError) Is(target error) bool {
	return target == e.Kind
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
