package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/lib/xlog"
	"github.com/benz9527/xtree/observability"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type console struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

type runner struct {
	cfg     *config
	console console
	logger  xlog.XLogger
	metrics *observability.Metrics
}

func (r *runner) treeOptions() []tree.TreeOption {
	opts := []tree.TreeOption{tree.WithTreeLogger(r.logger)}
	if r.metrics.Kind != observability.NoneExporter {
		opts = append(opts, tree.WithTreeStats())
	}
	return opts
}

func (r *runner) run(ctx context.Context) error {
	if r.cfg.bench {
		return runBench(ctx, r.cfg, r.logger, r.console.out, r.treeOptions()...)
	}

	in := r.console.in
	if len(r.cfg.script) > 0 {
		f, err := openScript(r.cfg.script)
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		in = f
	}
	ts := newTester(in, r.console.out, r.logger, r.treeOptions()...)
	if kind, ok := r.cfg.preselected(); ok {
		ts.choose(kind)
	}
	return ts.run()
}

func newLogger(cfg *config, c console) xlog.XLogger {
	return xlog.NewXLogger(cfg.loggerOptions(c.errOut)...)
}

func newMetrics(lc fx.Lifecycle, cfg *config, logger xlog.XLogger) (*observability.Metrics, error) {
	m, err := observability.InitMetrics(cfg.exporter())
	if err != nil {
		return nil, err
	}
	if m.Kind != observability.NoneExporter {
		observability.InitAppStats("xtree")
	}

	var srv *http.Server
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if m.Handler == nil {
				return nil
			}
			ln, err := net.Listen("tcp", cfg.metricsAddr)
			if err != nil {
				return fmt.Errorf("metrics listen %s: %w", cfg.metricsAddr, err)
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", m.Handler)
			srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error(err, "metrics server stopped")
				}
			}()
			logger.Info("metrics served", zap.String("addr", ln.Addr().String()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var err error
			if srv != nil {
				err = srv.Shutdown(ctx)
			}
			return multierr.Append(err, m.Shutdown(ctx))
		},
	})
	return m, nil
}

func newRunner(cfg *config, c console, logger xlog.XLogger, m *observability.Metrics) *runner {
	return &runner{cfg: cfg, console: c, logger: logger, metrics: m}
}

func newApp(cfg *config, c console, r **runner) *fx.App {
	return fx.New(
		fx.Supply(cfg, c),
		fx.Provide(newLogger, newMetrics, newRunner),
		fx.WithLogger(func(logger xlog.XLogger) fxevent.Logger {
			return xlog.NewFxXLogger(logger)
		}),
		fx.Populate(r),
	)
}

func run(args []string, c console) (err error) {
	cfg, err := parseConfig(args, os.Getenv, c.errOut)
	if err != nil {
		return err
	}

	var r *runner
	app := newApp(cfg, c, &r)
	if err = app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err = app.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
		defer cancel()
		err = multierr.Append(err, app.Stop(stopCtx))
		_ = r.logger.Sync()
	}()

	undo, mpErr := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		r.logger.Logf(zapcore.DebugLevel, format, args...)
	}))
	defer undo()
	if mpErr != nil {
		r.logger.Warn("set GOMAXPROCS failed", zap.String("error", mpErr.Error()))
	}

	return r.run(context.Background())
}

func main() {
	err := run(os.Args[1:], console{in: os.Stdin, out: os.Stdout, errOut: os.Stderr})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
