package droute

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// Listener is an interface for a DNS listener.
type Listener interface {
	Start() error
	fmt.Stringer
}

// DNSListener is a standard DNS listener for UDP or TCP.
type DNSListener struct {
	*dns.Server
	id string
}

var _ Listener = &DNSListener{}

// How long one incoming query may spend routing, across all upstream
// dispatches it performs.
const routeTimeout = 30 * time.Second

// NewDNSListener returns an instance of either a UDP or TCP DNS listener.
func NewDNSListener(id, addr, net string, router *Router) *DNSListener {
	return &DNSListener{
		id: id,
		Server: &dns.Server{
			Addr:    addr,
			Net:     net,
			Handler: listenHandler(id, net, router),
		},
	}
}

// Start the DNS listener.
func (s DNSListener) Start() error {
	Log.WithField("id", s.id).WithField("protocol", s.Net).WithField("addr", s.Addr).Info("starting listener")
	return s.ListenAndServe()
}

func (s DNSListener) String() string {
	return s.id
}

// DNS handler to route all incoming requests through a router.
func listenHandler(id, protocol string, router *Router) dns.HandlerFunc {
	return func(w dns.ResponseWriter, req *dns.Msg) {
		log := logger(id, req).WithField("protocol", protocol)
		log.Debug("received query")

		ctx, cancel := context.WithTimeout(context.Background(), routeTimeout)
		defer cancel()

		a, err := router.Resolve(ctx, req)
		if err != nil {
			log.WithError(err).Error("failed to route query")
			a = servfail(req)
		}

		// Check the response actually fits if the query was sent over UDP.
		// If not, respond with the TC flag.
		if protocol == "udp" {
			maxSize := dns.MinMsgSize
			if edns0 := req.IsEdns0(); edns0 != nil {
				maxSize = int(edns0.UDPSize())
			}
			a.Truncate(maxSize)
		}

		log.WithField("rcode", rCode(a)).Debug("responding")
		_ = w.WriteMsg(a)
	}
}
