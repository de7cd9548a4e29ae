package droute

import (
	"context"
	"fmt"
	"time"

	"github.com/heimdalr/dag"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

// Exchanger sends a query to a named upstream and returns its response. It
// is the only capability the routing table needs from the upstream pool.
type Exchanger interface {
	Send(ctx context.Context, name Label, q *dns.Msg) (*dns.Msg, error)
}

// Queries to an upstream without an explicit timeout are bounded by this.
const defaultQueryTimeout = 5 * time.Second

type upstream struct {
	resolver Resolver
	timeout  time.Duration
}

// Upstreams is a pool of named resolvers. It is immutable once handed to a
// router and safe for concurrent use.
type Upstreams struct {
	upstreams map[Label]upstream
}

var _ Exchanger = &Upstreams{}

// NewUpstreams returns an empty upstream pool.
func NewUpstreams() *Upstreams {
	return &Upstreams{upstreams: make(map[Label]upstream)}
}

// Add registers a resolver under a name. A timeout of 0 selects the default
// query timeout. Registering the same name twice is an error.
func (u *Upstreams) Add(name Label, r Resolver, timeout time.Duration) error {
	if _, ok := u.upstreams[name]; ok {
		return fmt.Errorf("upstream '%s' is defined more than once", name)
	}
	if timeout == 0 {
		timeout = defaultQueryTimeout
	}
	u.upstreams[name] = upstream{resolver: r, timeout: timeout}
	return nil
}

// Have reports whether an upstream with the given name exists.
func (u *Upstreams) Have(name Label) bool {
	_, ok := u.upstreams[name]
	return ok
}

// Send dispatches a query to the named upstream, bounded by the upstream's
// timeout.
func (u *Upstreams) Send(ctx context.Context, name Label, q *dns.Msg) (*dns.Msg, error) {
	up, ok := u.upstreams[name]
	if !ok {
		return nil, &UnknownUpstreamError{Name: name}
	}
	ctx, cancel := context.WithTimeout(ctx, up.timeout)
	defer cancel()

	logger(string(name), q).WithField("resolver", up.resolver.String()).Debug("sending query to upstream")
	return up.resolver.Resolve(ctx, q)
}

// NewUpstreamsFromParsed builds an upstream pool from declarative upstream
// specs. Hybrid upstreams reference other upstreams by name; the reference
// graph is checked for dangling names and cycles before anything connects.
func NewUpstreamsFromParsed(parsed []ParsedUpstream) (*Upstreams, error) {
	byTag := make(map[Label]ParsedUpstream, len(parsed))
	for _, p := range parsed {
		if _, ok := byTag[p.Tag]; ok {
			return nil, fmt.Errorf("upstream '%s' is defined more than once", p.Tag)
		}
		byTag[p.Tag] = p
	}
	if err := validateUpstreamRefs(parsed); err != nil {
		return nil, err
	}

	u := NewUpstreams()
	built := make(map[Label]Resolver, len(parsed))
	for _, p := range parsed {
		if _, err := buildUpstream(p, byTag, built, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// The member references of hybrid upstreams form a directed graph that has
// to be acyclic. Build it up edge by edge; the DAG rejects an edge that
// would close a loop.
func validateUpstreamRefs(parsed []ParsedUpstream) error {
	graph := dag.NewDAG()
	ids := make(map[Label]string, len(parsed))
	for _, p := range parsed {
		id, err := graph.AddVertex(string(p.Tag))
		if err != nil {
			return err
		}
		ids[p.Tag] = id
	}
	for _, p := range parsed {
		for _, member := range p.Members {
			memberID, ok := ids[member]
			if !ok {
				return &UnknownUpstreamError{Name: member}
			}
			if err := graph.AddEdge(ids[p.Tag], memberID); err != nil {
				return errors.Wrapf(err, "invalid member '%s' of hybrid upstream '%s'", member, p.Tag)
			}
		}
	}
	return nil
}

// Instantiate one upstream, building hybrid members first. The reference
// graph is already known to be acyclic.
func buildUpstream(p ParsedUpstream, byTag map[Label]ParsedUpstream, built map[Label]Resolver, u *Upstreams) (Resolver, error) {
	if r, ok := built[p.Tag]; ok {
		return r, nil
	}

	var resolver Resolver
	switch p.Kind {
	case "udp", "tcp":
		resolver = NewDNSClient(string(p.Tag), AddressWithDefault(p.Address, PlainDNSPort), p.Kind)
	case "dot":
		tlsConfig, err := TLSClientConfig(p.CA, p.Cert, p.Key, p.ServerName)
		if err != nil {
			return nil, err
		}
		resolver, err = NewDoTClient(string(p.Tag), AddressWithDefault(p.Address, DoTPort), DoTClientOptions{TLSConfig: tlsConfig})
		if err != nil {
			return nil, err
		}
	case "doh":
		tlsConfig, err := TLSClientConfig(p.CA, p.Cert, p.Key, p.ServerName)
		if err != nil {
			return nil, err
		}
		resolver, err = NewDoHClient(string(p.Tag), p.Address, DoHClientOptions{TLSConfig: tlsConfig, Method: p.Method})
		if err != nil {
			return nil, err
		}
	case "hybrid":
		members := make([]Resolver, 0, len(p.Members))
		for _, name := range p.Members {
			member, err := buildUpstream(byTag[name], byTag, built, u)
			if err != nil {
				return nil, err
			}
			members = append(members, member)
		}
		resolver = NewHybrid(string(p.Tag), members...)
	default:
		return nil, fmt.Errorf("unsupported kind '%s' for upstream '%s'", p.Kind, p.Tag)
	}

	built[p.Tag] = resolver
	if err := u.Add(p.Tag, resolver, time.Duration(p.Timeout)*time.Second); err != nil {
		return nil, err
	}
	return resolver, nil
}
