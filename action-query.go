package droute

import (
	"context"
	"fmt"
)

// Query dispatches the query being routed to a named upstream and stores the
// response. A dispatch failure aborts the routing operation for this query,
// there is no partial response.
type Query struct {
	upstream Label
}

var _ Action = &Query{}

func NewQuery(upstream Label) *Query {
	return &Query{upstream: upstream}
}

func (a *Query) Act(ctx context.Context, s *State, upstreams Exchanger) error {
	resp, err := upstreams.Send(ctx, a.upstream, s.Query)
	if err != nil {
		return &ActionError{Upstream: a.upstream, Err: err}
	}
	s.Resp = resp
	return nil
}

func (a *Query) UsedUpstreams() []Label {
	return []Label{a.upstream}
}

func (a *Query) String() string {
	return fmt.Sprintf("Query(%s)", a.upstream)
}
