package droute

import (
	"fmt"
	"strings"
)

// ParsedMatcher is the declarative form of a matcher, as produced by
// configuration loading. Only the fields of the selected kind are used.
type ParsedMatcher struct {
	// One of "any", "domain", "qtype", "geoip". Empty selects "any".
	Kind string `toml:"kind" json:"kind"`

	// Domain list sources, either local files or http(s) URLs.
	Sources []string `toml:"sources" json:"sources"`

	// Record types in string form, e.g. "A", "AAAA".
	Types []string `toml:"types" json:"types"`

	// Path of a MaxMind country database.
	Database string `toml:"database" json:"database"`

	// ISO 3166-1 country codes.
	Countries []string `toml:"countries" json:"countries"`
}

// ParsedAction is the declarative form of an action.
type ParsedAction struct {
	// One of "skip", "query". Empty selects "skip".
	Kind string `toml:"kind" json:"kind"`

	// The upstream a "query" action dispatches to.
	Upstream Label `toml:"upstream" json:"upstream"`
}

// ParsedBranch is one outcome of a rule: an action and the tag to continue
// with. An empty next tag means "end".
type ParsedBranch struct {
	Action ParsedAction `toml:"action" json:"action"`
	Next   Label        `toml:"next" json:"next"`
}

// ParsedRule is the declarative form of a rule.
type ParsedRule struct {
	Tag  Label         `toml:"tag" json:"tag"`
	If   ParsedMatcher `toml:"if" json:"if"`
	Then ParsedBranch  `toml:"then" json:"then"`
	Else ParsedBranch  `toml:"else" json:"else"`
}

// ParsedUpstream is the declarative form of one entry of the upstream pool.
type ParsedUpstream struct {
	Tag Label `toml:"tag" json:"tag"`

	// One of "udp", "tcp", "dot", "doh", "hybrid".
	Kind string `toml:"kind" json:"kind"`

	// host[:port] for udp/tcp/dot, a URL for doh.
	Address string `toml:"address" json:"address"`

	// Query timeout in seconds, 0 selects the default.
	Timeout int `toml:"timeout" json:"timeout"`

	// TLS client options for dot/doh.
	CA         string `toml:"ca" json:"ca"`
	Cert       string `toml:"cert" json:"cert"`
	Key        string `toml:"key" json:"key"`
	ServerName string `toml:"server_name" json:"server_name"`

	// HTTP method for doh, GET or POST.
	Method string `toml:"method" json:"method"`

	// Member upstreams of a hybrid.
	Members []Label `toml:"members" json:"members"`
}

// NewMatcherFromParsed lowers a declarative matcher spec into a matcher,
// loading domain lists and opening databases as needed.
func NewMatcherFromParsed(p ParsedMatcher) (Matcher, error) {
	switch p.Kind {
	case "any", "":
		return Any{}, nil
	case "domain":
		loaders := make([]Loader, 0, len(p.Sources))
		for _, source := range p.Sources {
			if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
				loaders = append(loaders, NewHTTPLoader(source))
			} else {
				loaders = append(loaders, NewFileLoader(source))
			}
		}
		return NewDomain(loaders...)
	case "qtype":
		return NewQTypeFromStrings(p.Types)
	case "geoip":
		return NewGeoip(p.Database, p.Countries)
	default:
		return nil, fmt.Errorf("unsupported matcher kind '%s'", p.Kind)
	}
}

// NewActionFromParsed lowers a declarative action spec into an action.
func NewActionFromParsed(p ParsedAction) (Action, error) {
	switch p.Kind {
	case "skip", "":
		return Skip{}, nil
	case "query":
		if p.Upstream == "" {
			return nil, fmt.Errorf("query action without an upstream")
		}
		return NewQuery(p.Upstream), nil
	default:
		return nil, fmt.Errorf("unsupported action kind '%s'", p.Kind)
	}
}

// NewRuleFromParsed lowers one declarative rule spec into a rule. This is
// where the blocking construction work happens, such as reading domain list
// files.
func NewRuleFromParsed(p ParsedRule) (*Rule, error) {
	matcher, err := NewMatcherFromParsed(p.If)
	if err != nil {
		return nil, err
	}
	onMatch, err := newBranchFromParsed(p.Then)
	if err != nil {
		return nil, err
	}
	noMatch, err := newBranchFromParsed(p.Else)
	if err != nil {
		return nil, err
	}
	return NewRule(p.Tag, matcher, onMatch, noMatch), nil
}

func newBranchFromParsed(p ParsedBranch) (Branch, error) {
	action, err := NewActionFromParsed(p.Action)
	if err != nil {
		return Branch{}, err
	}
	next := p.Next
	if next == "" {
		next = EndTag
	}
	return Branch{Action: action, Next: next}, nil
}

// NewTableFromParsed lowers a list of declarative rule specs and builds a
// validated table from them.
func NewTableFromParsed(parsed []ParsedRule) (*Table, error) {
	rules := make([]*Rule, 0, len(parsed))
	for _, p := range parsed {
		r, err := NewRuleFromParsed(p)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return NewTable(rules)
}
