package droute

import (
	"context"
	"fmt"
	"sort"

	"github.com/miekg/dns"
)

// State is the per-query scratch carried through one routing operation. It
// is owned exclusively by that operation and discarded when routing ends.
type State struct {
	// The incoming query, not modified during routing.
	Query *dns.Msg

	// The response accumulated so far, overwritten by Query actions. Starts
	// out empty.
	Resp *dns.Msg
}

// Table is an immutable, validated collection of rules keyed by tag. It is
// built once, then shared read-only across any number of concurrent routing
// operations.
type Table struct {
	rules map[Label]*Rule
	used  map[Label]struct{}
}

// NewTable validates a list of rules and builds a routing table from them.
// Construction fails with MultipleDefError if two rules share a tag, and
// with UndefinedTagError or RuleRecursionError if the depth-first traversal
// from the start rule references a missing tag or revisits one.
func NewTable(rules []*Rule) (*Table, error) {
	table := make(map[Label]*Rule, len(rules))
	for _, r := range rules {
		if _, ok := table[r.Tag()]; ok {
			return nil, &MultipleDefError{Tag: r.Tag()}
		}
		table[r.Tag()] = r
	}

	used := make(map[Label]struct{})
	if err := traverse(table, make(map[Label]struct{}), used, StartTag); err != nil {
		return nil, err
	}
	return &Table{rules: table, used: used}, nil
}

// Walk the rule graph depth-first. The visited set is shared across the two
// branches of a rule and across sibling branches, not cloned per branch: a
// tag reachable from two converging branches is rejected the same way a true
// cycle is. The used set accumulates the upstream names declared by every
// rule reachable from the start.
func traverse(rules map[Label]*Rule, visited, used map[Label]struct{}, tag Label) error {
	r, ok := rules[tag]
	if !ok {
		return &UndefinedTagError{Tag: tag}
	}
	if _, ok := visited[tag]; ok {
		return &RuleRecursionError{Tag: tag}
	}
	visited[tag] = struct{}{}

	if next := r.onMatchNext(); next != EndTag {
		if err := traverse(rules, visited, used, next); err != nil {
			return err
		}
	}
	if next := r.noMatchNext(); next != EndTag {
		if err := traverse(rules, visited, used, next); err != nil {
			return err
		}
	}
	for _, name := range r.usedUpstreams() {
		used[name] = struct{}{}
	}
	return nil
}

// Used returns the names of all upstreams referenced by rules reachable from
// the start rule, sorted. A caller can verify they all exist before routing
// any query.
func (t *Table) Used() []Label {
	names := make([]Label, 0, len(t.used))
	for name := range t.used {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Route drives the routing state machine for one query, starting at the
// start rule and stepping from tag to tag until the end sentinel is reached.
// It returns the accumulated response, or the error of the first failing
// action. Each call owns a fresh State; a table can route any number of
// queries concurrently.
func (t *Table) Route(ctx context.Context, q *dns.Msg, upstreams Exchanger) (*dns.Msg, error) {
	qname := qName(q)
	s := &State{
		Query: q,
		Resp:  new(dns.Msg),
	}

	tag := StartTag
	for tag != EndTag {
		r, ok := t.rules[tag]
		if !ok {
			// Construction guarantees every reachable tag exists.
			panic(fmt.Sprintf("droute: tag '%s' missing from validated table", tag))
		}
		next, err := r.route(ctx, s, upstreams, qname)
		if err != nil {
			return nil, err
		}
		tag = next
	}

	Log.WithField("qname", qname).Debug("query finished routing")
	return s.Resp, nil
}
