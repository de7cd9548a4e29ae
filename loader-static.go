package droute

// StaticLoader holds a fixed domain list in memory. It's used for small
// lists defined inline in configuration.
type StaticLoader struct {
	rules []string
}

var _ Loader = &StaticLoader{}

func NewStaticLoader(rules []string) *StaticLoader {
	return &StaticLoader{rules}
}

func (l *StaticLoader) Load() ([]string, error) {
	return l.rules, nil
}
