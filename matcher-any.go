package droute

import "github.com/miekg/dns"

// Any matches every query unconditionally.
type Any struct{}

var _ Matcher = Any{}

func (Any) Match([]dns.Question, []dns.RR) bool {
	return true
}

func (Any) String() string {
	return "Any"
}
