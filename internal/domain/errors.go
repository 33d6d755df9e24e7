package domain

import "errors"

// Domain errors.
var (
	// ErrUnsupportedPlatform is returned when a URL does not belong to any
	// known platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrLinksNotExtracted is returned when the links file does not exist yet.
	ErrLinksNotExtracted = errors.New("links not extracted yet")

	// ErrLinksUnreadable is returned when the links file exists but cannot be
	// parsed.
	ErrLinksUnreadable = errors.New("links file unreadable")
)

// ResolutionReason classifies why a resolution request failed.
type ResolutionReason string

const (
	ReasonUpstreamError  ResolutionReason = "upstream-error"
	ReasonExtractorError ResolutionReason = "extractor-error"
	ReasonBadURL         ResolutionReason = "bad-url"
	ReasonTimeout        ResolutionReason = "timeout"
)

// ResolutionError wraps a failed embed resolution with the URL and a reason.
// Resolutions are never retried; the caller's recovery policy is to skip to
// the next item.
type ResolutionError struct {
	URL    string
	Reason ResolutionReason
	Err    error
}

func (e *ResolutionError) Error() string {
	msg := "resolve " + e.URL + ": " + string(e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// NewResolutionError creates a new ResolutionError.
func NewResolutionError(url string, reason ResolutionReason, err error) *ResolutionError {
	return &ResolutionError{URL: url, Reason: reason, Err: err}
}
