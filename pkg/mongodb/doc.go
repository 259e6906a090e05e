// Package mongodb provides a guarded MongoDB client wrapper that executes
// validated querysets.
//
// The package plays two roles. First, it manages the driver connection the
// way the other datastore packages in this library do: pool configuration,
// periodic health checks, automatic reconnection and fx lifecycle wiring.
// Second, it is the execution end of the queryset pipeline: Execute accepts a
// queryset.Queryset, checks that it is valid and carries the clause the
// requested operation needs, and only then issues the driver call. An invalid
// or incomplete Queryset is rejected with a descriptive error before anything
// reaches the server.
//
// Results come back either as a materialized []bson.M or, with
// ExecOptions{RawCursor: true}, as the driver's lazy cursor.
//
// Basic Usage:
//
//	db := mongodb.NewMongo(mongodb.Config{
//	    Connection: mongodb.Connection{Host: "localhost", Port: "27017"},
//	}, loggerAdapter)
//
//	qs := queryset.New("appdb", "users")
//	qs, _ = qs.WithFind(bson.M{"id": 1})
//	qs = qs.ValidateInjection()
//
//	result, err := db.Execute(ctx, mongodb.OperationFind, qs, mongodb.ExecOptions{})
//	if err != nil {
//	    return err
//	}
//	for _, doc := range result.Docs {
//	    // ...
//	}
package mongodb
