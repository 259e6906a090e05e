// Package queryset provides an immutable value object for building document
// queries and validating them against structural injection before execution.
//
// A Queryset bundles a find filter, a projection and an aggregation pipeline
// together with the database and collection they target. Every transformation
// (WithFind, WithProjection, ValidateInjection, ...) returns a new Queryset
// value and never mutates the receiver, so any number of goroutines can build
// and validate querysets concurrently without coordination.
//
// Validation walks every literal value embedded in the query triple and
// rejects literals whose textual form contains a structural character
// ({ } [ ] ( ) ") that could change how the query is interpreted by the
// datastore. A Queryset that fails validation is marked invalid and carries
// the offending values in its error list; the mongodb package refuses to
// execute an invalid Queryset.
//
// Basic Usage:
//
//	qs := queryset.New("appdb", "users")
//
//	qs, err := qs.WithFind(bson.M{"name": name})
//	if err != nil {
//	    return err
//	}
//
//	qs = qs.ValidateInjection()
//	if !qs.Valid() {
//	    return fmt.Errorf("rejected query values: %v", qs.Errors())
//	}
//
//	result, err := db.Execute(ctx, mongodb.OperationFind, qs, mongodb.ExecOptions{})
package queryset
