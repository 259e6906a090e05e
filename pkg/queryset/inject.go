package queryset

import (
	"fmt"
	"regexp"
)

// InjectionPattern recognizes the structural characters { } [ ] ( ) ".
// A literal whose textual form contains any of them could change how a
// document query is interpreted if it were treated as anything other than
// inert data, so it is classified as failing when inspected with
// ClassifyOptions{Invert: true}.
var InjectionPattern = regexp.MustCompile(`[{}\[\]()"]`)

// Check is the classification of a single literal: the inspected value
// together with its Pass/Fail outcome.
type Check struct {
	Value any
	OK    bool
}

// Verdict is the aggregated outcome of one validation run. Values carries
// every inspected literal, ordered newest first (see Aggregate).
type Verdict struct {
	OK     bool
	Values []any
}

// ClassifyOptions configures Classify.
type ClassifyOptions struct {
	// Invert reverses the match outcome: a pattern match classifies as
	// Fail and a non-match as Pass. Injection validation always inspects
	// with Invert set, since InjectionPattern recognizes the characters
	// that must NOT appear.
	//
	// Default: false
	Invert bool
}

// Classify matches s against pattern and returns the resulting Check.
// Without Invert a match is a Pass; with Invert the mapping is reversed.
// The Check carries s itself as its value.
func Classify(s string, pattern *regexp.Regexp, opts ClassifyOptions) Check {
	matched := pattern.MatchString(s)
	if opts.Invert {
		matched = !matched
	}
	return Check{Value: s, OK: matched}
}

// Inspect stringifies each value through its default textual representation
// and classifies it against the pattern. The result is always fully
// materialized before a verdict is produced.
func Inspect(values []any, pattern *regexp.Regexp, opts ClassifyOptions) []Check {
	checks := make([]Check, 0, len(values))
	for _, v := range values {
		checks = append(checks, Classify(fmt.Sprintf("%v", v), pattern, opts))
	}
	return checks
}

// Aggregate folds per-literal checks into one Verdict.
//
// An empty input yields a failing Verdict with an empty value list: nothing
// to validate means nothing attested to, which is treated as invalid. A
// non-empty input starts from a passing state; every check contributes its
// value and any failing check forces the verdict to failing for the rest of
// the fold, regardless of later passes.
//
// Each value is prepended to the accumulator, so Values ends up in reverse
// inspection order. Consumers treat the list as an unordered collection of
// evidence.
func Aggregate(checks []Check) Verdict {
	verdict := Verdict{OK: false, Values: []any{}}
	if len(checks) == 0 {
		return verdict
	}

	verdict.OK = true
	for _, check := range checks {
		verdict.Values = append([]any{check.Value}, verdict.Values...)
		if !check.OK {
			verdict.OK = false
		}
	}
	return verdict
}
