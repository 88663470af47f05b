package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNetworkTimeout means the weather API did not answer in time.
	ErrNetworkTimeout = errors.New("weather api: request timed out")
	// ErrTooManyRedirects means the request was caught in a redirect loop.
	ErrTooManyRedirects = errors.New("weather api: too many redirects")
	// ErrRetrievalFailed covers any non-200 answer.
	ErrRetrievalFailed = errors.New("weather api: failed to retrieve weather data")
	// ErrCityNotFound means the response lacked the fields of a resolved city.
	ErrCityNotFound = errors.New("weather api: city does not exist")
	// ErrRateLimited means the local request budget is spent for now.
	ErrRateLimited = errors.New("weather api: local rate limit reached")
)

// APIError is an error reported inside a 200 response body.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("weather api: %s", e.Message)
	}
	return fmt.Sprintf("weather api: %s (code %d)", e.Message, e.Code)
}

// TransportError wraps an unclassified transport failure. It is the only
// forecast error that terminates the process with a non-zero status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("weather api transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedLineError reports a history log line that does not have the
// expected shape.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("history line %d is malformed (%s): %q", e.Line, e.Reason, e.Text)
}
