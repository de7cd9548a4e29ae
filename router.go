package droute

import (
	"context"

	"github.com/miekg/dns"
)

// Router ties a validated routing table to an upstream pool. Construction
// verifies that every upstream the table can reach actually exists, so a
// routing operation can't fail on a dangling upstream name.
type Router struct {
	table     *Table
	upstreams *Upstreams
}

// NewRouter returns a router for the given table and upstream pool.
func NewRouter(table *Table, upstreams *Upstreams) (*Router, error) {
	for _, name := range table.Used() {
		if !upstreams.Have(name) {
			return nil, &UnknownUpstreamError{Name: name}
		}
	}
	return &Router{table: table, upstreams: upstreams}, nil
}

// Resolve routes one query through the table and returns the response.
func (r *Router) Resolve(ctx context.Context, q *dns.Msg) (*dns.Msg, error) {
	return r.table.Route(ctx, q, r.upstreams)
}

func (r *Router) String() string {
	return "Router"
}
