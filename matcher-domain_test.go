package droute

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

func TestDomainMatcher(t *testing.T) {
	m, err := NewDomain(NewStaticLoader([]string{
		"example.com",
		"# just a comment",
		"",
		"cn-list.test",
	}))
	require.NoError(t, err)

	tests := []struct {
		qname string
		match bool
	}{
		{"example.com.", true},
		{"www.example.com.", true},
		{"notexample.com.", false},
		{"sub.cn-list.test.", true},
		{"other.test.", false},
	}
	for _, test := range tests {
		q := testQuery(test.qname, dns.TypeA)
		require.Equal(t, test.match, m.Match(q.Question, nil), "query: %s", test.qname)
	}
}

func TestDomainMatcherFromFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "domains.txt")
	content := "example.com\n# comment\nanother.test\n"
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))

	m, err := NewDomain(NewFileLoader(filename))
	require.NoError(t, err)

	q := testQuery("host.another.test.", dns.TypeA)
	require.True(t, m.Match(q.Question, nil))
}

func TestDomainMatcherMissingFile(t *testing.T) {
	_, err := NewDomain(NewFileLoader("does-not-exist.txt"))

	var matchErr *MatchError
	require.ErrorAs(t, err, &matchErr)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDomainMatcherMalformatted(t *testing.T) {
	_, err := NewDomain(NewStaticLoader([]string{"not a domain"}))

	var matchErr *MatchError
	require.ErrorAs(t, err, &matchErr)
	require.ErrorIs(t, err, ErrMalformatted)
}

func TestDomainMatcherMultipleSources(t *testing.T) {
	m, err := NewDomain(
		NewStaticLoader([]string{"one.test"}),
		NewStaticLoader([]string{"two.test"}),
	)
	require.NoError(t, err)

	require.True(t, m.Match(testQuery("one.test.", dns.TypeA).Question, nil))
	require.True(t, m.Match(testQuery("two.test.", dns.TypeA).Question, nil))
}
