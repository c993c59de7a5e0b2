package ingestion

import "errors"

var (
	ErrProviderUnavailable = errors.New("event provider unavailable")
	ErrAttendeeFetchFailed = errors.New("attendee fetch failed")
	ErrInvalidEvent        = errors.New("event is missing an id")
	ErrPanicRecovered      = errors.New("ingestion aborted by panic")
)
