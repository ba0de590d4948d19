package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/synqronlabs/spftrace/dns"
	"github.com/synqronlabs/spftrace/report"
	"github.com/synqronlabs/spftrace/spf"
)

var (
	configFile  string
	nameservers []string
	timeout     time.Duration
	format      string
	verbose     bool
)

func init() {
	flag.StringVarP(&configFile, "config", "c", "", "YAML config file with nameservers and domains")
	flag.StringSliceVarP(&nameservers, "server", "s", nil, "Nameserver to query, host or host:port (repeatable)")
	flag.DurationVarP(&timeout, "timeout", "t", 5*time.Second, "Timeout per DNS query")
	flag.StringVarP(&format, "format", "f", "table", "Output format: table or tsv")
	flag.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flag.Parse()
}

func main() {
	cfg, err := loadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	// Flags override config file values.
	if len(nameservers) > 0 {
		cfg.Nameservers = nameservers
	}
	if flag.CommandLine.Changed("timeout") || cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = int(timeout.Seconds())
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Domains = args
	}

	if len(cfg.Domains) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-c config] [-s nameserver] [-f format] domain...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Resolve and flatten the SPF chain of each domain\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client := dns.NewResolver(dns.Config{
		Nameservers: cfg.Nameservers,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	resolver := spf.NewResolver(client, spf.WithLogger(logger))
	runner := report.NewRunner(resolver, logger)

	reports := runner.Run(context.Background(), cfg.Domains)

	switch format {
	case "table":
		err = report.WriteTable(os.Stdout, reports)
	case "tsv":
		err = report.WriteTSV(os.Stdout, reports)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", format)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("writing report", slog.Any("error", err))
		os.Exit(1)
	}

	for _, rep := range reports {
		if rep.Err != nil {
			os.Exit(2)
		}
	}
}
