package droute

import (
	"strings"
)

// The empty label can't occur in a valid domain and marks a node at which
// a stored pattern ends.
const presentMark = ""

type node map[string]node

// DomainTrie holds a set of domain patterns in a trie keyed by domain label,
// top-level label innermost. A candidate matches if some stored pattern is
// equal to it or is a parent domain of it at a label boundary: a stored
// "example.com" matches "example.com" and "www.example.com" but neither
// "notexample.com" nor "example.org". Matching is case-insensitive and
// ignores a trailing root dot.
type DomainTrie struct {
	root node
}

// NewDomainTrie returns an empty domain trie.
func NewDomainTrie() *DomainTrie {
	return &DomainTrie{root: make(node)}
}

// Insert adds a single domain pattern to the trie. A pattern is a dot-separated
// sequence of non-empty labels made of letters, digits, '-' and '_'; anything
// else is rejected with ErrMalformatted.
func (t *DomainTrie) Insert(domain string) error {
	labels, err := splitLabels(domain)
	if err != nil {
		return err
	}

	// Iterate backwards over the labels, building a graph of maps with the
	// top-level label at the root.
	n := t.root
	for i := len(labels) - 1; i >= 0; i-- {
		subNode, ok := n[labels[i]]
		if !ok {
			subNode = make(node)
			n[labels[i]] = subNode
		}
		n = subNode
	}
	n[presentMark] = nil
	return nil
}

// InsertMulti bulk-inserts one pattern per line of text. Leading and trailing
// whitespace is trimmed, blank lines and '#' comment lines are skipped. Any
// remaining line that isn't a valid pattern fails the whole insertion.
func (t *DomainTrie) InsertMulti(text string) error {
	for _, line := range strings.Split(text, "\n") {
		line = trimComment(line)
		if line == "" {
			continue
		}
		if err := t.Insert(line); err != nil {
			return err
		}
	}
	return nil
}

// Matches reports whether some stored pattern is a suffix of the candidate
// at a label boundary.
func (t *DomainTrie) Matches(domain string) bool {
	labels, err := splitLabels(domain)
	if err != nil {
		return false
	}
	n := t.root
	for i := len(labels) - 1; i >= 0; i-- {
		subNode, ok := n[labels[i]]
		if !ok {
			return false
		}
		if _, ok := subNode[presentMark]; ok {
			return true
		}
		n = subNode
	}
	return false
}

// Strip a '#' comment and surrounding whitespace from a list line.
func trimComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// Break a domain into its labels, normalized to lower case and with a single
// trailing root dot removed.
func splitLabels(domain string) ([]string, error) {
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))
	if domain == "" {
		return nil, ErrMalformatted
	}
	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if !validLabel(label) {
			return nil, ErrMalformatted
		}
	}
	return labels, nil
}

func validLabel(label string) bool {
	if label == "" {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
