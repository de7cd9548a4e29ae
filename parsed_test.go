package droute

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestTableFromParsed(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cn.txt")
	require.NoError(t, os.WriteFile(filename, []byte("cn-only.test\n"), 0644))

	table, err := NewTableFromParsed([]ParsedRule{
		{
			Tag:  "start",
			If:   ParsedMatcher{Kind: "domain", Sources: []string{filename}},
			Then: ParsedBranch{Action: ParsedAction{Kind: "query", Upstream: "domestic"}, Next: "end"},
			Else: ParsedBranch{Action: ParsedAction{Kind: "query", Upstream: "foreign"}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []Label{"domestic", "foreign"}, table.Used())

	domestic := new(TestResolver)
	foreign := new(TestResolver)
	upstreams := NewUpstreams()
	require.NoError(t, upstreams.Add("domestic", domestic, 0))
	require.NoError(t, upstreams.Add("foreign", foreign, 0))

	_, err = table.Route(context.Background(), testQuery("www.cn-only.test", dns.TypeA), upstreams)
	require.NoError(t, err)
	require.Equal(t, 1, domestic.HitCount())
	require.Equal(t, 0, foreign.HitCount())

	_, err = table.Route(context.Background(), testQuery("elsewhere.test", dns.TypeA), upstreams)
	require.NoError(t, err)
	require.Equal(t, 1, domestic.HitCount())
	require.Equal(t, 1, foreign.HitCount())
}

// An empty matcher kind defaults to "any", an empty action kind to "skip"
// and an empty next tag to "end".
func TestParsedDefaults(t *testing.T) {
	rule, err := NewRuleFromParsed(ParsedRule{Tag: "start"})
	require.NoError(t, err)

	table, err := NewTable([]*Rule{rule})
	require.NoError(t, err)
	require.Empty(t, table.Used())

	resp, err := table.Route(context.Background(), testQuery("example.com", dns.TypeA), NewUpstreams())
	require.NoError(t, err)
	require.Empty(t, resp.Answer)
}

func TestParsedUnsupportedKinds(t *testing.T) {
	_, err := NewMatcherFromParsed(ParsedMatcher{Kind: "bogus"})
	require.Error(t, err)

	_, err = NewActionFromParsed(ParsedAction{Kind: "bogus"})
	require.Error(t, err)

	_, err = NewActionFromParsed(ParsedAction{Kind: "query"})
	require.Error(t, err)
}
