package droute

import (
	"fmt"
	"sort"
	"strings"

	"github.com/miekg/dns"
)

// QType matches when the first question's record type is in a configured set
// of types.
type QType struct {
	types map[uint16]struct{}
}

var _ Matcher = &QType{}

// NewQType returns a matcher for a set of numerical record types.
func NewQType(types ...uint16) *QType {
	set := make(map[uint16]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return &QType{types: set}
}

// NewQTypeFromStrings returns a matcher for a set of record types given in
// string form, for example "A" or "AAAA".
func NewQTypeFromStrings(types []string) (*QType, error) {
	numerical := make([]uint16, 0, len(types))
	for _, s := range types {
		t, err := stringToType(s)
		if err != nil {
			return nil, err
		}
		numerical = append(numerical, t)
	}
	return NewQType(numerical...), nil
}

func (m *QType) Match(queries []dns.Question, _ []dns.RR) bool {
	if len(queries) == 0 {
		return false
	}
	_, ok := m.types[queries[0].Qtype]
	return ok
}

func (m *QType) String() string {
	names := make([]string, 0, len(m.types))
	for t := range m.types {
		names = append(names, dns.TypeToString[t])
	}
	sort.Strings(names)
	return fmt.Sprintf("QType(%s)", strings.Join(names, ","))
}

// Convert a DNS type string into the numerical type, for example "A" -> 1.
func stringToType(s string) (uint16, error) {
	for k, v := range dns.TypeToString {
		if v == strings.ToUpper(s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown type '%s'", s)
}
