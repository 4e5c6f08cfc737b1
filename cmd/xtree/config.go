package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/lib/xlog"
	"github.com/benz9527/xtree/observability"
)

const (
	envMetrics = "XTREE_METRICS"
)

type config struct {
	treeKind     string
	script       string
	logLevel     string
	logFormat    string
	bench        bool
	benchSize    int
	benchWorkers int
	metrics      string
	metricsAddr  string
}

// preselected returns the tree chosen by -tree, ok is false when
// the tree is left to the menu.
func (cfg *config) preselected() (tree.Kind, bool) {
	if len(strings.TrimSpace(cfg.treeKind)) == 0 {
		return tree.AVL, false
	}
	return tree.ParseKind(cfg.treeKind)
}

func (cfg *config) exporter() observability.ExporterKind {
	kind, _ := observability.ParseExporterKind(cfg.metrics)
	return kind
}

func (cfg *config) loggerOptions(out io.Writer) []xlog.XLoggerOption {
	opts := []xlog.XLoggerOption{
		xlog.WithXLoggerOutput(out),
		xlog.WithXLoggerEncoder(xlog.ParseLogEncoder(cfg.logFormat)),
	}
	if len(strings.TrimSpace(cfg.logLevel)) > 0 {
		opts = append(opts, xlog.WithXLoggerLevel(xlog.ParseLogLevel(cfg.logLevel)))
	}
	return opts
}

func parseConfig(args []string, getenv func(string) string, output io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("xtree", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.treeKind, "tree", "", "preselect the tree, A (AVL) or R (red-black)")
	fs.StringVar(&cfg.script, "script", "", "replay the menu input from a file instead of stdin")
	fs.StringVar(&cfg.logLevel, "log-level", "", "debug, info, warn or error (default from XLOG_LVL, else error)")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "json or text")
	fs.BoolVar(&cfg.bench, "bench", false, "run the insert/search benchmark instead of the menu")
	fs.IntVar(&cfg.benchSize, "bench-size", 100000, "number of keys per benchmark tree")
	fs.IntVar(&cfg.benchWorkers, "bench-workers", 4, "benchmark worker pool size")
	fs.StringVar(&cfg.metrics, "metrics", getenv(envMetrics), "metrics exporter, none, stdout or prometheus")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", ":9464", "listen address of the prometheus endpoint")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if _, ok := cfg.preselected(); !ok && len(strings.TrimSpace(cfg.treeKind)) > 0 {
		return nil, fmt.Errorf("invalid -tree %q, valid choices are A and R", cfg.treeKind)
	}
	if _, err := observability.ParseExporterKind(cfg.metrics); err != nil {
		return nil, fmt.Errorf("invalid -metrics: %w", err)
	}
	if cfg.bench && (cfg.benchSize <= 0 || cfg.benchWorkers <= 0) {
		return nil, fmt.Errorf("-bench-size and -bench-workers must be positive")
	}
	if len(strings.TrimSpace(cfg.logLevel)) == 0 && len(strings.TrimSpace(getenv("XLOG_LVL"))) == 0 {
		cfg.logLevel = xlog.LogLevelError.String()
	}
	return cfg, nil
}
