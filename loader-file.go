package droute

import (
	"bufio"
	"os"
)

// FileLoader reads a domain list from a local file.
type FileLoader struct {
	filename string
}

var _ Loader = &FileLoader{}

func NewFileLoader(filename string) *FileLoader {
	return &FileLoader{filename}
}

func (l *FileLoader) Load() ([]string, error) {
	log := Log.WithField("file", l.filename)
	log.Debug("loading domain list")

	f, err := os.Open(l.filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rules []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		rules = append(rules, scanner.Text())
	}
	log.Debug("completed loading domain list")
	return rules, scanner.Err()
}
