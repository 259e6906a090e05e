package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Aleph-Alpha/docq/pkg/queryset"
)

const tracerName = "github.com/Aleph-Alpha/docq/pkg/mongodb"

// Operation is the closed set of query kinds Execute can dispatch on.
type Operation int

const (
	// OperationFind issues the Queryset's find filter and projection
	OperationFind Operation = iota

	// OperationAggregate issues the Queryset's aggregation pipeline
	OperationAggregate
)

// String returns the operation name as used in logs, metrics and spans.
func (op Operation) String() string {
	switch op {
	case OperationFind:
		return "find"
	case OperationAggregate:
		return "aggregate"
	default:
		return fmt.Sprintf("unknown(%d)", int(op))
	}
}

// ExecOptions configures Execute.
type ExecOptions struct {
	// RawCursor returns the driver's lazy cursor instead of draining it
	// into a materialized document list.
	//
	// Default: false
	RawCursor bool
}

// Result is the outcome of one execution. Exactly one of the two fields is
// populated: Docs when the cursor was drained, Cursor when RawCursor was
// requested. A returned cursor must be closed by the caller.
type Result struct {
	Docs   []bson.M
	Cursor *mongo.Cursor
}

// Execute runs the given operation for a validated Queryset and returns
// either a materialized document list or the driver's cursor, depending on
// ExecOptions.
//
// Preconditions are checked before anything touches the driver:
//   - OperationFind requires qs.Valid() and qs.HasFind(); the projection
//     defaults to an empty mapping when none was set.
//   - OperationAggregate requires qs.Valid() and qs.HasAggregation(); the
//     default empty pipeline passes this check and is issued as-is.
//
// On precondition failure the matching sentinel error is returned and no
// driver call is made. Driver errors propagate untranslated; this layer adds
// no retry or timeout of its own, the context is handed straight to the
// driver.
func (m *Mongo) Execute(ctx context.Context, op Operation, qs queryset.Queryset, opts ExecOptions) (*Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "docq.execute")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.operation", op.String()),
		attribute.String("db.name", qs.Repo()),
		attribute.String("db.mongodb.collection", qs.Collection()),
		attribute.Bool("docq.raw_cursor", opts.RawCursor),
	)

	var result *Result
	var err error

	switch op {
	case OperationFind:
		result, err = m.executeFind(ctx, qs, opts)
	case OperationAggregate:
		result, err = m.executeAggregate(ctx, qs, opts)
	default:
		err = fmt.Errorf("mongodb: unsupported operation %s", op)
	}

	m.observe(op, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.logger.Error("query execution failed", err, map[string]interface{}{
			"operation":  op.String(),
			"repo":       qs.Repo(),
			"collection": qs.Collection(),
		})
		return nil, err
	}

	return result, nil
}

func (m *Mongo) executeFind(ctx context.Context, qs queryset.Queryset, opts ExecOptions) (*Result, error) {
	if !qs.Valid() || !qs.HasFind() {
		return nil, ErrFindPrecondition
	}

	projection := bson.M{}
	if qs.HasProjection() {
		projection = qs.Projection()
	}

	cursor, err := m.collection(qs).Find(ctx, qs.Find(), options.Find().SetProjection(projection))
	if err != nil {
		return nil, err
	}

	if opts.RawCursor {
		return &Result{Cursor: cursor}, nil
	}
	return drain(ctx, cursor)
}

func (m *Mongo) executeAggregate(ctx context.Context, qs queryset.Queryset, opts ExecOptions) (*Result, error) {
	if !qs.Valid() || !qs.HasAggregation() {
		return nil, ErrAggregatePrecondition
	}

	if opts.RawCursor {
		cursor, err := m.collection(qs).Aggregate(ctx, qs.Aggregation())
		if err != nil {
			return nil, err
		}
		return &Result{Cursor: cursor}, nil
	}

	// Materialized aggregations issue a find with the pipeline as the
	// filter. Existing callers depend on this; request RawCursor to run
	// the pipeline itself.
	cursor, err := m.collection(qs).Find(ctx, qs.Aggregation())
	if err != nil {
		return nil, err
	}
	return drain(ctx, cursor)
}

// collection resolves the target collection under the read lock so that a
// concurrent reconnect cannot swap the client mid-lookup.
func (m *Mongo) collection(qs queryset.Queryset) *mongo.Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.Database(qs.Repo()).Collection(qs.Collection())
}

func drain(ctx context.Context, cursor *mongo.Cursor) (*Result, error) {
	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return &Result{Docs: docs}, nil
}
