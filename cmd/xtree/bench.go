package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/lib/xlog"
	"github.com/benz9527/xtree/observability"
	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type benchCase struct {
	kind     tree.Kind
	shuffled bool
}

type benchResult struct {
	benchCase
	size   int
	insert time.Duration
	search time.Duration
	height uint32
	err    error
}

func (c benchCase) order() string {
	if c.shuffled {
		return "random"
	}
	return "sequential"
}

// runBenchCase inserts size keys, then searches the first tenth of them.
func runBenchCase(c benchCase, size int, opts ...tree.TreeOption) benchResult {
	res := benchResult{benchCase: c, size: size}
	keys := lo.Range(size)
	if c.shuffled {
		keys = lo.Shuffle(keys)
	}
	t := tree.New[int](c.kind, append([]tree.TreeOption{tree.WithTreeCapacity(size)}, opts...)...)
	defer t.Release()

	start := time.Now()
	for _, k := range keys {
		t.Insert(k)
	}
	res.insert = time.Since(start)

	start = time.Now()
	for k := 0; k < size/10; k++ {
		if !t.Search(k) {
			res.err = fmt.Errorf("%s tree lost key %d", c.kind, k)
			return res
		}
	}
	res.search = time.Since(start)
	res.height = t.Height()
	return res
}

// runBench runs every case as an ants task, each task owns its tree.
func runBench(ctx context.Context, cfg *config, logger xlog.XLogger, out io.Writer, opts ...tree.TreeOption) (err error) {
	pool, err := ants.NewPool(cfg.benchWorkers,
		ants.WithLogger(xlog.NewAntsXLogger(logger)),
		ants.WithPreAlloc(true),
	)
	if err != nil {
		return fmt.Errorf("bench pool: %w", err)
	}
	defer func() {
		err = multierr.Append(err, pool.ReleaseTimeout(5*time.Second))
	}()

	cases := []benchCase{
		{kind: tree.AVL},
		{kind: tree.AVL, shuffled: true},
		{kind: tree.RedBlack},
		{kind: tree.RedBlack, shuffled: true},
	}
	results := make([]benchResult, len(cases))
	wg := sync.WaitGroup{}
	for i, c := range cases {
		i, c := i, c
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = runBenchCase(c, cfg.benchSize, opts...)
		}); err != nil {
			wg.Done()
			results[i] = benchResult{benchCase: c, err: err}
		}
	}
	wg.Wait()

	for _, res := range results {
		if res.err != nil {
			err = multierr.Append(err, res.err)
			continue
		}
		if res.size == 0 {
			continue
		}
		_, _ = fmt.Fprintf(out, "%-4s %-10s size=%d height=%d insert=%s search=%s\n",
			res.kind, res.order(), res.size, res.height, res.insert, res.search)
		logger.Info("bench case done",
			zap.Stringer("kind", res.kind),
			zap.String("order", res.order()),
			zap.Int("size", res.size),
			zap.Uint32("height", res.height),
			zap.Duration("insert", res.insert),
			zap.Duration("search", res.search),
		)
	}

	rss, rssErr := observability.ProcessRSS(ctx, nil)
	if rssErr != nil {
		logger.Warn("read process rss failed", zap.String("error", rssErr.Error()))
		return err
	}
	_, _ = fmt.Fprintf(out, "rss=%.2fMiB\n", float64(rss)/(1<<20))
	return err
}
