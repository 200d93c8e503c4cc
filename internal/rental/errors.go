package rental

import "errors"

// Validation failures. Detected before any shared state is touched.
var (
	ErrInvalidWindow  = errors.New("invalid window: start must be before end")
	ErrUnknownCarType = errors.New("unknown car type")
)

// Business-rule failures. Callers may retry with a fresh quote.
var (
	ErrNoCarAvailable     = errors.New("no car available")
	ErrQuoteNoLongerValid = errors.New("quote no longer valid")
)
