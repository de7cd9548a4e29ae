package main

import (
	droute "github.com/fox85/dcompass"

	"github.com/BurntSushi/toml"
)

type config struct {
	Verbosity string
	Listeners map[string]listener
	Upstreams []droute.ParsedUpstream
	Rules     []droute.ParsedRule
}

type listener struct {
	Address  string
	Protocol string
}

// Reads a config file and returns the decoded structure.
func loadConfig(name string) (config, error) {
	var c config
	_, err := toml.DecodeFile(name, &c)
	return c, err
}
