package observability

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/process"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	once sync.Once
	app  *appStats
)

type appStats struct {
	goroutines metric.Int64ObservableUpDownCounter
	processes  metric.Int64ObservableUpDownCounter
	rss        metric.Int64ObservableGauge
}

// InitAppStats registers the process level instruments once per
// process, against the meter provider installed at that time.
func InitAppStats(name string) {
	once.Do(func() {
		builder := &strings.Builder{}
		builder.WriteString("xtree/app")
		builder.Write([]byte("/"))
		if len(strings.TrimSpace(name)) > 0 {
			builder.WriteString(name)
		} else {
			builder.WriteString("default")
		}
		name = builder.String()
		meter := otel.Meter(
			name,
			metric.WithInstrumentationVersion(otelruntime.Version()),
		)
		proc, procErr := process.NewProcess(int32(os.Getpid()))
		app = &appStats{
			goroutines: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
				"app.core.goroutines",
				metric.WithDescription(`The application goroutines' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ob.Observe(int64(runtime.NumGoroutine()))
					return nil
				}),
			)),
			processes: lo.Must[metric.Int64ObservableUpDownCounter](meter.Int64ObservableUpDownCounter(
				"app.core.processes",
				metric.WithDescription(`The application processes' info.`),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					ob.Observe(int64(runtime.GOMAXPROCS(0)))
					return nil
				}),
			)),
			rss: lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
				"app.core.rss",
				metric.WithDescription(`The application resident set size.`),
				metric.WithUnit("By"),
				metric.WithInt64Callback(func(ctx context.Context, ob metric.Int64Observer) error {
					if procErr != nil {
						return nil
					}
					rss, err := ProcessRSS(ctx, proc)
					if err != nil {
						return err
					}
					ob.Observe(int64(rss))
					return nil
				}),
			)),
		}
		_ = otelruntime.Start(otelruntime.WithMinimumReadMemStatsInterval(time.Second))
	})
}

// ProcessRSS reads the resident set size of the process in bytes,
// the current process if proc is nil.
func ProcessRSS(ctx context.Context, proc *process.Process) (uint64, error) {
	if proc == nil {
		p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
		if err != nil {
			return 0, err
		}
		proc = p
	}
	info, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}
