package droute

import (
	"context"
	"fmt"
)

// Action is the effect executed on the chosen branch of a rule. It may
// consult an upstream and overwrite the response carried in the state; the
// next tag is chosen by the owning rule, not the action.
type Action interface {
	Act(ctx context.Context, s *State, upstreams Exchanger) error

	// UsedUpstreams lists the upstream names the action may dispatch to.
	// It is how a table derives the set of upstreams it depends on without
	// executing any action.
	UsedUpstreams() []Label

	fmt.Stringer
}
