package main

import (
	"fmt"
	"os"
	"time"

	droute "github.com/fox85/dcompass"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:   "dcompass",
		Short: "Rule-driven DNS query router",
		Long: `Rule-driven DNS query router.

It listens for incoming DNS requests and routes each of them to one of
the configured upstream resolvers, following a graph of rules matching
on domain lists, record types or the location of resolved addresses.
Supports plain DNS over UDP and TCP, DNS-over-TLS and DNS-over-HTTPS
as forwarding protocols.
`,
		Example:      `  dcompass config.toml`,
		Args:         cobra.ExactArgs(1),
		RunE:         func(cmd *cobra.Command, args []string) error { return start(args[0]) },
		SilenceUsage: true,
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func start(configFile string) error {
	config, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	if config.Verbosity != "" {
		level, err := logrus.ParseLevel(config.Verbosity)
		if err != nil {
			return fmt.Errorf("invalid verbosity '%s'", config.Verbosity)
		}
		droute.Log.SetLevel(level)
	}

	upstreams, err := droute.NewUpstreamsFromParsed(config.Upstreams)
	if err != nil {
		return fmt.Errorf("failed to build upstreams: %w", err)
	}

	// Lowering the rules does the blocking work of reading domain lists and
	// opening databases, building the table then validates the rule graph.
	table, err := droute.NewTableFromParsed(config.Rules)
	if err != nil {
		return fmt.Errorf("failed to build routing table: %w", err)
	}

	// The router cross-checks every upstream the table references, so a bad
	// configuration fails here rather than on the first query.
	router, err := droute.NewRouter(table, upstreams)
	if err != nil {
		return err
	}

	var listeners []droute.Listener
	for id, l := range config.Listeners {
		switch l.Protocol {
		case "udp", "tcp":
			listeners = append(listeners, droute.NewDNSListener(id, l.Address, l.Protocol, router))
		default:
			return fmt.Errorf("unsupported protocol '%s' for listener '%s'", l.Protocol, id)
		}
	}
	if len(listeners) == 0 {
		return fmt.Errorf("no listeners defined")
	}

	for _, l := range listeners {
		go func(l droute.Listener) {
			for {
				err := l.Start()
				droute.Log.WithField("listener", l.String()).WithError(err).Error("listener failed, restarting")
				time.Sleep(time.Second)
			}
		}(l)
	}

	select {}
}
