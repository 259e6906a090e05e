package queryset

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opaque marks a domain value that the literal walker must skip entirely.
// Typed records sometimes end up inside a query triple (an embedded document
// built from an application model, for example); implementing Opaque keeps
// the walker from destructuring them and from treating their parts as
// literals. An opaque subtree contributes zero literals.
type Opaque interface {
	OpaqueQueryValue()
}

// Literals recursively flattens a nested query container into the list of
// leaf values it contains.
//
// Mappings (bson.M, map[string]interface{}) and ordered documents (bson.D)
// contribute the literals of every value, keys discarded. Sequences (bson.A,
// []interface{}) contribute the literals of every element. Driver primitives
// that stringify with structural characters but are inert by construction
// (ObjectID, DateTime, Timestamp, Binary, Decimal128, Regex, time.Time) are
// skipped, as is anything implementing Opaque. Every other value is itself a
// single literal.
//
// The returned slice is never nil; a container with no leaves yields an
// empty slice. Ordering between sibling literals follows Go map iteration
// and is not specified.
func Literals(container any) []any {
	return appendLiterals(make([]any, 0, 8), container)
}

func appendLiterals(out []any, value any) []any {
	switch v := value.(type) {
	case bson.M:
		for _, inner := range v {
			out = appendLiterals(out, inner)
		}
	case map[string]interface{}:
		for _, inner := range v {
			out = appendLiterals(out, inner)
		}
	case bson.D:
		for _, elem := range v {
			out = appendLiterals(out, elem.Value)
		}
	case bson.A:
		for _, inner := range v {
			out = appendLiterals(out, inner)
		}
	case []interface{}:
		for _, inner := range v {
			out = appendLiterals(out, inner)
		}
	case primitive.ObjectID, primitive.DateTime, primitive.Timestamp,
		primitive.Binary, primitive.Decimal128, primitive.Regex, time.Time:
		// inert driver primitives, zero literals
	default:
		if _, ok := value.(Opaque); ok {
			return out
		}
		out = append(out, value)
	}
	return out
}
