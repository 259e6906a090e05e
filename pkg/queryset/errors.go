package queryset

import "errors"

// Shape precondition errors returned by the With* transformers.
// A transformer that returns one of these has produced no new Queryset;
// the receiver is unchanged and no partial value exists.
var (
	// ErrNilMapping is returned when a mapping field (find, projection)
	// would be replaced with a nil map
	ErrNilMapping = errors.New("queryset: mapping argument must not be nil")

	// ErrNilSequence is returned when the aggregation field would be
	// replaced with a nil sequence
	ErrNilSequence = errors.New("queryset: sequence argument must not be nil")
)
