package droute

// Loader reads the rules of a domain list from some source, one pattern
// per line.
type Loader interface {
	Load() ([]string, error)
}
