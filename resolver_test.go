package droute

import (
	"context"
	"sync/atomic"

	"github.com/miekg/dns"
)

// TestResolver is a configurable resolver for tests that counts the queries
// it receives. If ResolveFunc is nil, it answers every query with an empty
// reply.
type TestResolver struct {
	ResolveFunc func(*dns.Msg) (*dns.Msg, error)
	hitCount    atomic.Int32
}

var _ Resolver = &TestResolver{}

func (r *TestResolver) Resolve(_ context.Context, q *dns.Msg) (*dns.Msg, error) {
	r.hitCount.Add(1)
	if r.ResolveFunc != nil {
		return r.ResolveFunc(q)
	}
	a := new(dns.Msg)
	a.SetReply(q)
	return a, nil
}

func (r *TestResolver) HitCount() int {
	return int(r.hitCount.Load())
}

func (r *TestResolver) String() string {
	return "TestResolver()"
}
