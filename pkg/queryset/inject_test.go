package queryset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		invert bool
		wantOK bool
	}{
		{"match without invert passes", "{$where: 1}", false, true},
		{"no match without invert fails", "plain", false, false},
		{"match with invert fails", "{$where: 1}", true, false},
		{"no match with invert passes", "plain", true, true},
		{"bracket with invert fails", "a[0]", true, false},
		{"parenthesis with invert fails", "f(x)", true, false},
		{"quote with invert fails", `say "hi"`, true, false},
		{"alphanumeric with invert passes", "user42", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := Classify(tt.input, InjectionPattern, ClassifyOptions{Invert: tt.invert})
			assert.Equal(t, tt.wantOK, check.OK)
			assert.Equal(t, tt.input, check.Value)
		})
	}
}

func TestInspectStringifiesValues(t *testing.T) {
	checks := Inspect([]any{42, "ok", "{bad}"}, InjectionPattern, ClassifyOptions{Invert: true})

	assert.Len(t, checks, 3)
	assert.Equal(t, Check{Value: "42", OK: true}, checks[0])
	assert.Equal(t, Check{Value: "ok", OK: true}, checks[1])
	assert.Equal(t, Check{Value: "{bad}", OK: false}, checks[2])
}

func TestAggregateEmptyInputIsFailing(t *testing.T) {
	verdict := Aggregate(nil)

	assert.False(t, verdict.OK)
	assert.NotNil(t, verdict.Values)
	assert.Empty(t, verdict.Values)
}

func TestAggregateAllPassing(t *testing.T) {
	verdict := Aggregate([]Check{
		{Value: "a", OK: true},
		{Value: "b", OK: true},
	})

	assert.True(t, verdict.OK)
	// values accumulate by prepending, so the order is reversed
	assert.Equal(t, []any{"b", "a"}, verdict.Values)
}

func TestAggregateFailureIsSticky(t *testing.T) {
	verdict := Aggregate([]Check{
		{Value: "a", OK: true},
		{Value: "{bad}", OK: false},
		{Value: "c", OK: true},
	})

	assert.False(t, verdict.OK)
	assert.Equal(t, []any{"c", "{bad}", "a"}, verdict.Values)
}

func TestAggregateCollectsAllValuesOnFailure(t *testing.T) {
	checks := []Check{
		{Value: "1", OK: false},
		{Value: "2", OK: false},
	}

	verdict := Aggregate(checks)
	assert.False(t, verdict.OK)
	assert.ElementsMatch(t, []any{"1", "2"}, verdict.Values)
}
