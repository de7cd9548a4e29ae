package droute

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/miekg/dns"
	"github.com/oschwald/maxminddb-golang"
)

// Geoip matches based on the location of the addresses in the accumulated
// answer. It matches when any A or AAAA record resolves to one of the
// configured countries; records that aren't address records, and addresses
// the database has no entry for, are skipped.
type Geoip struct {
	db        *maxminddb.Reader
	countries map[string]struct{}
}

var _ Matcher = &Geoip{}

// NewGeoip opens a MaxMind country database and returns a matcher for a set
// of ISO 3166-1 country codes, for example "CN" or "US". Failure to open the
// database fails construction with a MatchError.
func NewGeoip(dbFile string, countries []string) (*Geoip, error) {
	db, err := maxminddb.Open(dbFile)
	if err != nil {
		return nil, &MatchError{Err: err}
	}
	set := make(map[string]struct{}, len(countries))
	for _, c := range countries {
		set[strings.ToUpper(c)] = struct{}{}
	}
	return &Geoip{db: db, countries: set}, nil
}

func (m *Geoip) Match(_ []dns.Question, answers []dns.RR) bool {
	for _, rr := range answers {
		ip := addrFromRR(rr)
		if ip == nil {
			continue
		}

		var record struct {
			Country struct {
				ISOCode string `maxminddb:"iso_code"`
			} `maxminddb:"country"`
		}
		if err := m.db.Lookup(ip, &record); err != nil {
			Log.WithField("ip", ip).WithError(err).Error("failed to look up ip in geo location database")
			continue
		}
		if _, ok := m.countries[record.Country.ISOCode]; ok {
			return true
		}
	}
	return false
}

// The address of an A or AAAA record, nil for any other record type.
func addrFromRR(rr dns.RR) net.IP {
	switch r := rr.(type) {
	case *dns.A:
		return r.A
	case *dns.AAAA:
		return r.AAAA
	default:
		return nil
	}
}

func (m *Geoip) String() string {
	codes := make([]string, 0, len(m.countries))
	for c := range m.countries {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return fmt.Sprintf("Geoip(%s)", strings.Join(codes, ","))
}
