package queryset

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Queryset is an immutable value object describing one document query: a find
// filter, a projection, an aggregation pipeline, and the repo (database name)
// and collection they target. It additionally carries the outcome of any
// validation runs applied to it: a validity flag and an error list.
//
// A Queryset holds no connection or cursor state. It is safe to copy, share
// across goroutines and discard after execution.
type Queryset struct {
	find        bson.M
	projection  bson.M
	aggregation bson.A
	repo        string
	collection  string
	valid       bool
	errs        [][]any
}

// New creates a Queryset targeting the given repo (database name) and
// collection. The query triple defaults to an empty filter, an empty
// projection and an empty pipeline. A freshly constructed Queryset is
// always valid and carries no errors.
func New(repo, collection string) Queryset {
	return Queryset{
		find:        bson.M{},
		projection:  bson.M{},
		aggregation: bson.A{},
		repo:        repo,
		collection:  collection,
		valid:       true,
		errs:        nil,
	}
}

// WithFind returns a copy of the Queryset with the find filter replaced.
// The mapping is copied shallowly, so later mutation of the argument by the
// caller does not alias into the returned value.
//
// A nil mapping violates the shape precondition: ErrNilMapping is returned
// and no new Queryset is produced.
func (qs Queryset) WithFind(find bson.M) (Queryset, error) {
	if find == nil {
		return Queryset{}, ErrNilMapping
	}
	qs.find = copyMapping(find)
	return qs, nil
}

// WithProjection returns a copy of the Queryset with the projection replaced.
// A nil mapping violates the shape precondition: ErrNilMapping is returned
// and no new Queryset is produced.
func (qs Queryset) WithProjection(projection bson.M) (Queryset, error) {
	if projection == nil {
		return Queryset{}, ErrNilMapping
	}
	qs.projection = copyMapping(projection)
	return qs, nil
}

// WithAggregation returns a copy of the Queryset with the aggregation
// pipeline replaced. A nil sequence violates the shape precondition:
// ErrNilSequence is returned and no new Queryset is produced.
func (qs Queryset) WithAggregation(aggregation bson.A) (Queryset, error) {
	if aggregation == nil {
		return Queryset{}, ErrNilSequence
	}
	qs.aggregation = copySequence(aggregation)
	return qs, nil
}

// WithCollection returns a copy of the Queryset targeting the given collection.
func (qs Queryset) WithCollection(collection string) Queryset {
	qs.collection = collection
	return qs
}

// WithRepo returns a copy of the Queryset targeting the given repo.
func (qs Queryset) WithRepo(repo string) Queryset {
	qs.repo = repo
	return qs
}

// HasFind reports whether the Queryset carries a find filter of the required
// mapping shape. The default empty filter already satisfies this, so HasFind
// is true on a freshly constructed Queryset.
func (qs Queryset) HasFind() bool {
	return qs.find != nil
}

// HasProjection reports whether the Queryset carries a projection of the
// required mapping shape. True on a freshly constructed Queryset.
func (qs Queryset) HasProjection() bool {
	return qs.projection != nil
}

// HasAggregation reports whether the Queryset carries an aggregation pipeline
// of the required sequence shape. The default empty pipeline already
// satisfies this, so HasAggregation is true on a freshly constructed
// Queryset.
func (qs Queryset) HasAggregation() bool {
	return qs.aggregation != nil
}

// Find returns a copy of the find filter.
func (qs Queryset) Find() bson.M {
	return copyMapping(qs.find)
}

// Projection returns a copy of the projection.
func (qs Queryset) Projection() bson.M {
	return copyMapping(qs.projection)
}

// Aggregation returns a copy of the aggregation pipeline.
func (qs Queryset) Aggregation() bson.A {
	return copySequence(qs.aggregation)
}

// Repo returns the repo (database name) the Queryset targets.
func (qs Queryset) Repo() string {
	return qs.repo
}

// Collection returns the collection the Queryset targets.
func (qs Queryset) Collection() string {
	return qs.collection
}

// Valid reports whether the Queryset has not been marked invalid by a
// validation run. Execution preconditions in the mongodb package require it.
func (qs Queryset) Valid() bool {
	return qs.valid
}

// Errors returns the accumulated validation evidence, newest entry first.
// Each entry is the list of values one validation run collected. The list
// only ever grows; a clean validation pass leaves it untouched.
func (qs Queryset) Errors() [][]any {
	out := make([][]any, len(qs.errs))
	copy(out, qs.errs)
	return out
}

// ValidateInjection extracts every literal embedded in the query triple,
// inspects each one for structural-injection characters and returns a
// Queryset carrying the outcome.
//
// On a passing verdict the receiver is returned unchanged: a clean pass never
// upgrades a previously invalid Queryset nor touches its error list. On a
// failing verdict the returned copy has valid=false and the verdict's
// collected values prepended to the error list.
func (qs Queryset) ValidateInjection() Queryset {
	triple := bson.M{
		"find":        qs.find,
		"projection":  qs.projection,
		"aggregation": qs.aggregation,
	}

	verdict := Aggregate(Inspect(Literals(triple), InjectionPattern, ClassifyOptions{Invert: true}))
	if verdict.OK {
		return qs
	}

	qs.valid = false
	qs.errs = append([][]any{verdict.Values}, qs.errs...)
	return qs
}

func copyMapping(m bson.M) bson.M {
	if m == nil {
		return nil
	}
	out := make(bson.M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySequence(s bson.A) bson.A {
	if s == nil {
		return nil
	}
	out := make(bson.A, len(s))
	copy(out, s)
	return out
}
