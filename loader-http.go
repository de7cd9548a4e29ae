package droute

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"time"
)

// HTTPLoader reads a domain list from a server via HTTP(S).
type HTTPLoader struct {
	url string
}

var _ Loader = &HTTPLoader{}

const httpTimeout = 5 * time.Minute

func NewHTTPLoader(url string) *HTTPLoader {
	return &HTTPLoader{url}
}

func (l *HTTPLoader) Load() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", l.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("got unexpected status code %d from %s", resp.StatusCode, l.url)
	}

	var rules []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		rules = append(rules, scanner.Text())
	}
	return rules, scanner.Err()
}
