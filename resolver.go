package droute

import (
	"context"
	"fmt"

	"github.com/miekg/dns"
)

// Resolver is an interface to resolve DNS queries. The context bounds the
// exchange; an expired or canceled context abandons the in-flight call.
type Resolver interface {
	Resolve(ctx context.Context, q *dns.Msg) (*dns.Msg, error)
	fmt.Stringer
}
