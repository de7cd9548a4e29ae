package droute

import (
	"errors"
	"fmt"
)

// ErrMalformatted is returned (wrapped in a MatchError) when the content of
// a domain list cannot be parsed.
var ErrMalformatted = errors.New("malformatted domain list")

// MultipleDefError is returned by NewTable when two rules share a tag.
type MultipleDefError struct {
	Tag Label
}

func (e *MultipleDefError) Error() string {
	return fmt.Sprintf("multiple rule definitions for tag '%s'", e.Tag)
}

// UndefinedTagError is returned by NewTable when a rule references a tag
// that is not defined. Note that the tag 'start' is always required.
type UndefinedTagError struct {
	Tag Label
}

func (e *UndefinedTagError) Error() string {
	return fmt.Sprintf("rule with tag '%s' is not defined, note that tag 'start' is required", e.Tag)
}

// RuleRecursionError is returned by NewTable when a depth-first path through
// the rule graph revisits a tag.
type RuleRecursionError struct {
	Tag Label
}

func (e *RuleRecursionError) Error() string {
	return fmt.Sprintf("rule with tag '%s' is called recursively", e.Tag)
}

// MatchError wraps failures encountered while constructing a matcher, such
// as an unreadable domain list or a list that can't be parsed.
type MatchError struct {
	Err error
}

func (e *MatchError) Error() string {
	return "matcher: " + e.Err.Error()
}

func (e *MatchError) Unwrap() error { return e.Err }

// ActionError wraps a failure to execute an action against an upstream. It
// fails the routing operation for one query without invalidating the table.
type ActionError struct {
	Upstream Label
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("query to upstream '%s' failed: %v", e.Upstream, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// UnknownUpstreamError is returned when a query is dispatched to, or a
// hybrid references, an upstream name that doesn't exist.
type UnknownUpstreamError struct {
	Name Label
}

func (e *UnknownUpstreamError) Error() string {
	return fmt.Sprintf("upstream '%s' is not defined", e.Name)
}
