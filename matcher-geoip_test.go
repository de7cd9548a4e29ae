package droute

import (
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestGeoipMissingDatabase(t *testing.T) {
	_, err := NewGeoip("does-not-exist.mmdb", []string{"CN"})

	var matchErr *MatchError
	require.ErrorAs(t, err, &matchErr)
}

func TestAddrFromRR(t *testing.T) {
	a, err := dns.NewRR("example.com. 3600 IN A 192.0.2.1")
	require.NoError(t, err)
	aaaa, err := dns.NewRR("example.com. 3600 IN AAAA 2001:db8::1")
	require.NoError(t, err)
	cname, err := dns.NewRR("example.com. 3600 IN CNAME other.test.")
	require.NoError(t, err)

	require.Equal(t, "192.0.2.1", addrFromRR(a).String())
	require.Equal(t, "2001:db8::1", addrFromRR(aaaa).String())
	require.Nil(t, addrFromRR(cname))
}
