package droute

import (
	"context"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestRuleBranchSelection(t *testing.T) {
	matched := new(TestResolver)
	unmatched := new(TestResolver)
	upstreams := NewUpstreams()
	require.NoError(t, upstreams.Add("matched", matched, 0))
	require.NoError(t, upstreams.Add("unmatched", unmatched, 0))

	rule := NewRule("start", NewQType(dns.TypeA),
		Branch{NewQuery("matched"), "a"},
		Branch{NewQuery("unmatched"), "b"},
	)

	s := &State{Query: testQuery("example.com", dns.TypeA), Resp: new(dns.Msg)}
	next, err := rule.route(context.Background(), s, upstreams, "example.com.")
	require.NoError(t, err)
	require.Equal(t, Label("a"), next)
	require.Equal(t, 1, matched.HitCount())
	require.Equal(t, 0, unmatched.HitCount())

	s = &State{Query: testQuery("example.com", dns.TypeMX), Resp: new(dns.Msg)}
	next, err = rule.route(context.Background(), s, upstreams, "example.com.")
	require.NoError(t, err)
	require.Equal(t, Label("b"), next)
	require.Equal(t, 1, matched.HitCount())
	require.Equal(t, 1, unmatched.HitCount())
}

func TestRuleUsedUpstreams(t *testing.T) {
	rule := NewRule("start", Any{},
		Branch{NewQuery("a"), "end"},
		Branch{NewQuery("b"), "end"},
	)
	require.ElementsMatch(t, []Label{"a", "b"}, rule.usedUpstreams())

	skip := NewRule("start", Any{},
		Branch{Skip{}, "end"},
		Branch{Skip{}, "end"},
	)
	require.Empty(t, skip.usedUpstreams())
}
