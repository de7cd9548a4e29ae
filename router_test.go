package droute

import (
	"context"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestRouterResolve(t *testing.T) {
	mock := new(TestResolver)
	upstreams := NewUpstreams()
	require.NoError(t, upstreams.Add("mock", mock, 0))

	table, err := NewTable([]*Rule{
		NewRule("start", Any{},
			Branch{NewQuery("mock"), "end"},
			Branch{Skip{}, "end"},
		),
	})
	require.NoError(t, err)

	router, err := NewRouter(table, upstreams)
	require.NoError(t, err)

	_, err = router.Resolve(context.Background(), testQuery("example.com", dns.TypeA))
	require.NoError(t, err)
	require.Equal(t, 1, mock.HitCount())
}

// Every upstream the table references has to exist in the pool before any
// query is served.
func TestRouterMissingUpstream(t *testing.T) {
	table, err := NewTable([]*Rule{
		NewRule("start", Any{},
			Branch{NewQuery("missing"), "end"},
			Branch{Skip{}, "end"},
		),
	})
	require.NoError(t, err)

	_, err = NewRouter(table, NewUpstreams())
	var unknownErr *UnknownUpstreamError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, Label("missing"), unknownErr.Name)
}
