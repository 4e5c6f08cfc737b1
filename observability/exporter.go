package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type ExporterKind uint8

const (
	NoneExporter ExporterKind = iota
	StdoutExporter
	PrometheusExporter
)

func (k ExporterKind) String() string {
	switch k {
	case StdoutExporter:
		return "stdout"
	case PrometheusExporter:
		return "prometheus"
	case NoneExporter:
		fallthrough
	default:
	}
	return "none"
}

func ParseExporterKind(s string) (ExporterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return NoneExporter, nil
	case "stdout", "console":
		return StdoutExporter, nil
	case "prometheus", "prom":
		return PrometheusExporter, nil
	default:
	}
	return NoneExporter, fmt.Errorf("[observability] unknown metrics exporter %q", s)
}

// Metrics is the installed global meter provider. Handler is only
// set for the prometheus exporter.
type Metrics struct {
	Kind     ExporterKind
	Handler  http.Handler
	shutdown func(ctx context.Context) error
}

func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.shutdown == nil {
		return nil
	}
	return m.shutdown(ctx)
}

type metricsConfig struct {
	writer   io.Writer
	interval time.Duration
	timeout  time.Duration
}

type MetricsOption func(*metricsConfig)

// WithStdoutWriter redirects the stdout exporter output.
func WithStdoutWriter(w io.Writer) MetricsOption {
	return func(cfg *metricsConfig) {
		cfg.writer = w
	}
}

func WithExportInterval(interval, timeout time.Duration) MetricsOption {
	return func(cfg *metricsConfig) {
		cfg.interval, cfg.timeout = interval, timeout
	}
}

// InitMetrics installs the global meter provider for the exporter kind.
// NoneExporter leaves the otel no-op provider in place.
func InitMetrics(kind ExporterKind, opts ...MetricsOption) (*Metrics, error) {
	cfg := &metricsConfig{
		interval: 10 * time.Second,
		timeout:  5 * time.Second,
	}
	for _, o := range opts {
		o(cfg)
	}

	m := &Metrics{Kind: kind}
	var err error
	switch kind {
	case StdoutExporter:
		stdoutOpts := make([]stdoutmetric.Option, 0, 1)
		if cfg.writer != nil {
			stdoutOpts = append(stdoutOpts, stdoutmetric.WithWriter(cfg.writer))
		}
		m.shutdown, err = newConsoleMetricsExporter(cfg.interval, cfg.timeout, stdoutOpts...)
	case PrometheusExporter:
		m.shutdown, m.Handler, err = newPrometheusMetricsExporter()
	case NoneExporter:
	default:
		err = fmt.Errorf("[observability] unknown metrics exporter %d", kind)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (func(ctx context.Context) error, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	callback := mp.Shutdown
	otel.SetMeterProvider(mp)
	return callback, nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
// Each provider gets its own registry, the handler only serves it.
func newPrometheusMetricsExporter() (func(ctx context.Context) error, http.Handler, error) {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	callback := mp.Shutdown
	otel.SetMeterProvider(mp)
	return callback, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}
