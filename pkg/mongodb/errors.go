package mongodb

import "errors"

// Execution precondition errors. Both are returned before any driver call is
// attempted; a Queryset that fails its precondition never reaches the server.
// Driver-level failures are not translated by this package and propagate to
// the caller exactly as the driver surfaces them.
var (
	// ErrFindPrecondition is returned by Execute when a find is requested
	// on a Queryset that is invalid or carries no find filter
	ErrFindPrecondition = errors.New("Queryset must be valid and have a find statement associated.")

	// ErrAggregatePrecondition is returned by Execute when an aggregation
	// is requested on a Queryset that is invalid or carries no pipeline
	ErrAggregatePrecondition = errors.New("Queryset must be valid and have an aggregation statement associated.")
)
