package droute

import (
	"fmt"

	"github.com/miekg/dns"
)

// Matcher determines whether a rule's on-match branch is taken, given the
// questions of the query being routed and the answer records accumulated
// so far.
type Matcher interface {
	Match(queries []dns.Question, answers []dns.RR) bool

	fmt.Stringer
}
