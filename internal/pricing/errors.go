package pricing

import "errors"

var (
	// ErrInvalidService means the service is unknown or inactive.
	ErrInvalidService = errors.New("invalid service")
	// ErrInvalidComplexity means the complexity level is unknown or inactive.
	ErrInvalidComplexity = errors.New("invalid complexity")
	// ErrNoSelection means neither a catalog nor a legacy selection was given.
	ErrNoSelection = errors.New("no service and complexity selected")
	// ErrCatalogUnavailable wraps failures reading the catalog.
	ErrCatalogUnavailable = errors.New("pricing catalog unavailable")
)
