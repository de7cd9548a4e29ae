package droute_test

import (
	"context"
	"fmt"

	droute "github.com/fox85/dcompass"
	"github.com/miekg/dns"
)

func Example_table() {
	// Two upstream resolvers
	upstreams := droute.NewUpstreams()
	_ = upstreams.Add("google", droute.NewDNSClient("google", "8.8.8.8:53", "udp"), 0)
	_ = upstreams.Add("cloudflare", droute.NewDNSClient("cloudflare", "1.1.1.1:53", "udp"), 0)

	// Send AAAA queries to cloudflare, everything else to google
	table, _ := droute.NewTable([]*droute.Rule{
		droute.NewRule("start", droute.NewQType(dns.TypeAAAA),
			droute.Branch{Action: droute.NewQuery("cloudflare"), Next: "end"},
			droute.Branch{Action: droute.NewQuery("google"), Next: "end"},
		),
	})

	// Build a query
	q := new(dns.Msg)
	q.SetQuestion("example.com.", dns.TypeAAAA)

	// Route the query
	a, _ := table.Route(context.Background(), q, upstreams)
	fmt.Println(a)
}

func Example_parsed() {
	// Upstreams and rules in the declarative form produced by config loading
	upstreams, _ := droute.NewUpstreamsFromParsed([]droute.ParsedUpstream{
		{Tag: "domestic", Kind: "udp", Address: "114.114.114.114"},
		{Tag: "foreign", Kind: "dot", Address: "1.1.1.1", ServerName: "cloudflare-dns.com"},
	})
	table, _ := droute.NewTableFromParsed([]droute.ParsedRule{
		{
			Tag:  "start",
			If:   droute.ParsedMatcher{Kind: "domain", Sources: []string{"cn-domains.txt"}},
			Then: droute.ParsedBranch{Action: droute.ParsedAction{Kind: "query", Upstream: "domestic"}},
			Else: droute.ParsedBranch{Action: droute.ParsedAction{Kind: "query", Upstream: "foreign"}},
		},
	})

	// The router verifies the table only references existing upstreams
	r, _ := droute.NewRouter(table, upstreams)

	q := new(dns.Msg)
	q.SetQuestion("example.com.", dns.TypeA)

	a, _ := r.Resolve(context.Background(), q)
	fmt.Println(a)
}
