package droute

import (
	"context"
	"fmt"

	"github.com/miekg/dns"
)

// DNSClient represents a simple DNS resolver for UDP or TCP.
type DNSClient struct {
	id       string
	endpoint string
	client   *dns.Client
}

var _ Resolver = &DNSClient{}

// NewDNSClient returns a new instance of DNSClient which is a plain DNS
// resolver over UDP or TCP.
func NewDNSClient(id, endpoint, network string) *DNSClient {
	return &DNSClient{
		id:       id,
		endpoint: endpoint,
		client: &dns.Client{
			Net:     network,
			UDPSize: 4096,
		},
	}
}

// Resolve a DNS query.
func (d *DNSClient) Resolve(ctx context.Context, q *dns.Msg) (*dns.Msg, error) {
	logger(d.id, q).WithField("resolver", d.endpoint).Debug("querying upstream resolver")
	r, _, err := d.client.ExchangeContext(ctx, q, d.endpoint)
	return r, err
}

func (d *DNSClient) String() string {
	return fmt.Sprintf("DNS(%s/%s)", d.endpoint, d.client.Net)
}
