package queryset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"
)

func TestNewDefaults(t *testing.T) {
	qs := New("appdb", "users")

	assert.Equal(t, "appdb", qs.Repo())
	assert.Equal(t, "users", qs.Collection())
	assert.True(t, qs.Valid())
	assert.Empty(t, qs.Errors())
	assert.Equal(t, bson.M{}, qs.Find())
	assert.Equal(t, bson.M{}, qs.Projection())
	assert.Equal(t, bson.A{}, qs.Aggregation())
}

// The declared defaults already satisfy the required shapes: empty does not
// mean absent.
func TestDefaultShapePredicates(t *testing.T) {
	qs := New("appdb", "users")

	assert.True(t, qs.HasFind())
	assert.True(t, qs.HasProjection())
	assert.True(t, qs.HasAggregation())
}

func TestWithSettersReplaceSingleField(t *testing.T) {
	qs := New("appdb", "users")

	qs, err := qs.WithFind(bson.M{"id": 1})
	require.NoError(t, err)
	qs, err = qs.WithProjection(bson.M{"name": 1})
	require.NoError(t, err)
	qs, err = qs.WithAggregation(bson.A{bson.M{"$match": bson.M{"id": 1}}})
	require.NoError(t, err)
	qs = qs.WithCollection("accounts").WithRepo("reporting")

	assert.Equal(t, bson.M{"id": 1}, qs.Find())
	assert.Equal(t, bson.M{"name": 1}, qs.Projection())
	assert.Equal(t, bson.A{bson.M{"$match": bson.M{"id": 1}}}, qs.Aggregation())
	assert.Equal(t, "accounts", qs.Collection())
	assert.Equal(t, "reporting", qs.Repo())
	assert.True(t, qs.Valid())
}

func TestWithSettersRejectNilShapes(t *testing.T) {
	qs := New("appdb", "users")

	_, err := qs.WithFind(nil)
	assert.ErrorIs(t, err, ErrNilMapping)

	_, err = qs.WithProjection(nil)
	assert.ErrorIs(t, err, ErrNilMapping)

	_, err = qs.WithAggregation(nil)
	assert.ErrorIs(t, err, ErrNilSequence)

	// rejected transformations leave the receiver untouched
	assert.True(t, qs.HasFind())
	assert.Equal(t, bson.M{}, qs.Find())
}

func TestTransformationsDoNotMutateReceiver(t *testing.T) {
	original := New("appdb", "users")

	modified, err := original.WithFind(bson.M{"id": 1})
	require.NoError(t, err)

	assert.Equal(t, bson.M{}, original.Find())
	assert.Equal(t, bson.M{"id": 1}, modified.Find())
}

func TestSetterCopiesArgument(t *testing.T) {
	filter := bson.M{"id": 1}
	qs, err := New("appdb", "users").WithFind(filter)
	require.NoError(t, err)

	filter["id"] = 99

	assert.Equal(t, bson.M{"id": 1}, qs.Find())
}

func TestValidateInjectionCleanQueryset(t *testing.T) {
	qs, err := New("appdb", "users").WithFind(bson.M{"id": 1, "name": "alice42"})
	require.NoError(t, err)

	validated := qs.ValidateInjection()

	assert.True(t, validated.Valid())
	assert.Empty(t, validated.Errors())
	assert.Equal(t, qs.Find(), validated.Find())
}

func TestValidateInjectionIsIdempotentOnValid(t *testing.T) {
	qs, err := New("appdb", "users").WithFind(bson.M{"id": 1})
	require.NoError(t, err)

	once := qs.ValidateInjection()
	twice := once.ValidateInjection()

	assert.True(t, once.Valid())
	assert.True(t, twice.Valid())
	assert.Equal(t, once.Find(), twice.Find())
	assert.Equal(t, once.Projection(), twice.Projection())
	assert.Equal(t, once.Aggregation(), twice.Aggregation())
	assert.Empty(t, twice.Errors())
}

func TestValidateInjectionFlagsStructuralCharacters(t *testing.T) {
	qs, err := New("appdb", "users").WithFind(bson.M{"name": "{$where: 1}"})
	require.NoError(t, err)

	validated := qs.ValidateInjection()

	assert.False(t, validated.Valid())
	require.Len(t, validated.Errors(), 1)
	assert.Contains(t, validated.Errors()[0], any("{$where: 1}"))
}

func TestValidateInjectionEmptyTripleIsInvalid(t *testing.T) {
	// nothing to validate means nothing attested to
	validated := New("appdb", "users").ValidateInjection()

	assert.False(t, validated.Valid())
	require.Len(t, validated.Errors(), 1)
	assert.Empty(t, validated.Errors()[0])
}

func TestValidateInjectionPrependsEvidence(t *testing.T) {
	qs, err := New("appdb", "users").WithFind(bson.M{"name": "{first}"})
	require.NoError(t, err)
	once := qs.ValidateInjection()

	qs2, err := once.WithFind(bson.M{"name": "[second]"})
	require.NoError(t, err)
	twice := qs2.ValidateInjection()

	errs := twice.Errors()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], any("[second]"))
	assert.Contains(t, errs[1], any("{first}"))
}

func TestValidateInjectionDoesNotMutateReceiver(t *testing.T) {
	qs, err := New("appdb", "users").WithFind(bson.M{"name": "{bad}"})
	require.NoError(t, err)

	validated := qs.ValidateInjection()

	assert.True(t, qs.Valid())
	assert.Empty(t, qs.Errors())
	assert.False(t, validated.Valid())
}

// Querysets are plain values, so building and validating them concurrently
// needs no coordination at all.
func TestConcurrentBuildAndValidate(t *testing.T) {
	base := New("appdb", "users")

	var g errgroup.Group
	for i := 0; i < 64; i++ {
		g.Go(func() error {
			qs, err := base.WithFind(bson.M{"worker": fmt.Sprintf("w%d", i)})
			if err != nil {
				return err
			}
			if validated := qs.ValidateInjection(); !validated.Valid() {
				return fmt.Errorf("unexpected invalid queryset: %v", validated.Errors())
			}

			bad, err := base.WithFind(bson.M{"worker": "{inject}"})
			if err != nil {
				return err
			}
			if validated := bad.ValidateInjection(); validated.Valid() {
				return fmt.Errorf("injection not flagged")
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.True(t, base.Valid())
	assert.Empty(t, base.Errors())
}
