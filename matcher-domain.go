package droute

import (
	"github.com/miekg/dns"
)

// Domain matches when the query name is equal to, or a subdomain of, one of
// the patterns loaded from the configured domain lists.
type Domain struct {
	trie *DomainTrie
}

var _ Matcher = &Domain{}

// NewDomain builds a domain matcher from one or more list sources. A source
// that can't be read or parsed fails construction with a MatchError.
func NewDomain(loaders ...Loader) (*Domain, error) {
	trie := NewDomainTrie()
	for _, loader := range loaders {
		rules, err := loader.Load()
		if err != nil {
			return nil, &MatchError{Err: err}
		}
		for _, rule := range rules {
			rule = trimComment(rule)
			if rule == "" {
				continue
			}
			if err := trie.Insert(rule); err != nil {
				return nil, &MatchError{Err: err}
			}
		}
	}
	return &Domain{trie: trie}, nil
}

func (m *Domain) Match(queries []dns.Question, _ []dns.RR) bool {
	if len(queries) == 0 {
		return false
	}
	return m.trie.Matches(queries[0].Name)
}

func (m *Domain) String() string {
	return "Domain"
}
