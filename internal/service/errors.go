package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned for unknown range ids and missing, malformed
	// or reversed custom bounds.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrPartialFetch marks a fetch that stopped at the page ceiling with more
	// pages likely available.
	ErrPartialFetch = errors.New("partial fetch: page ceiling reached")
	// ErrSessionNotFound is returned for unknown or closed session ids.
	ErrSessionNotFound = errors.New("report session not found")
)

func invalidRange(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRange, fmt.Sprintf(format, args...))
}

// PageFetchError records a single page request that failed. The fetcher
// absorbs it and keeps the pages collected so far.
type PageFetchError struct {
	Page int
	Err  error
}

func (e *PageFetchError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *PageFetchError) Unwrap() error { return e.Err }
