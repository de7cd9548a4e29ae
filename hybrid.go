package droute

import (
	"context"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// Hybrid is a resolver that dispatches a query to all its members
// concurrently and returns the first successful response. Remaining in-flight
// exchanges are canceled once a winner is in.
type Hybrid struct {
	id      string
	members []Resolver
}

var _ Resolver = &Hybrid{}

// NewHybrid returns a new instance of a racing resolver with the given
// members.
func NewHybrid(id string, members ...Resolver) *Hybrid {
	return &Hybrid{id: id, members: members}
}

// Resolve a DNS query by racing all members.
func (h *Hybrid) Resolve(ctx context.Context, q *dns.Msg) (*dns.Msg, error) {
	if len(h.members) == 0 {
		return nil, fmt.Errorf("hybrid upstream '%s' has no members", h.id)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		resp *dns.Msg
		err  error
	}
	results := make(chan result, len(h.members))
	for _, member := range h.members {
		go func(r Resolver) {
			resp, err := r.Resolve(ctx, q.Copy())
			results <- result{resp, err}
		}(member)
	}

	var firstErr error
	for range h.members {
		res := <-results
		if res.err == nil {
			return res.resp, nil
		}
		if firstErr == nil {
			firstErr = res.err
		}
	}
	return nil, firstErr
}

func (h *Hybrid) String() string {
	names := make([]string, 0, len(h.members))
	for _, m := range h.members {
		names = append(names, m.String())
	}
	return fmt.Sprintf("Hybrid(%s)", strings.Join(names, ","))
}
