// Package records reduces typed application records to restricted mappings
// that are safe to embed in a query filter. Callers extract exactly the
// fields a filter needs instead of handing a whole model to the query layer.
package records

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Extract returns a mapping holding only the named fields of the record.
//
// The record is round-tripped through its BSON document form, so field names
// follow the record's bson struct tags (or the driver's default lowercasing
// of exported field names). Requested fields absent from the record are
// simply omitted from the result; asking for nothing yields an empty mapping.
//
// Example:
//
//	type User struct {
//	    ID    int    `bson:"id"`
//	    Name  string `bson:"name"`
//	    Email string `bson:"email"`
//	}
//
//	filter, err := records.Extract(user, "id", "name")
//	// filter == bson.M{"id": ..., "name": ...}
func Extract(record any, fields ...string) (bson.M, error) {
	data, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("records: cannot marshal record: %w", err)
	}

	doc := bson.M{}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("records: cannot unmarshal record document: %w", err)
	}

	restricted := bson.M{}
	for _, field := range fields {
		if value, ok := doc[field]; ok {
			restricted[field] = value
		}
	}
	return restricted, nil
}
