package tree

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "xtree"
)

type treeStats struct {
	kind          attribute.KeyValue
	nodeCount     metric.Int64UpDownCounter
	insertCount   metric.Int64Counter
	deleteCount   metric.Int64Counter
	rotationCount metric.Int64Counter
	fixupCount    metric.Int64Counter
}

func (stats *treeStats) RecordNodeCount(delta int64) {
	if stats == nil {
		return
	}
	stats.nodeCount.Add(context.Background(), delta, metric.WithAttributes(stats.kind))
}

func (stats *treeStats) IncreaseInsertCount(inserted bool) {
	if stats == nil {
		return
	}
	stats.insertCount.Add(context.Background(), 1, metric.WithAttributes(
		stats.kind,
		attribute.Bool("xtree.op.hit", inserted),
	))
	if inserted {
		stats.RecordNodeCount(1)
	}
}

func (stats *treeStats) IncreaseDeleteCount(deleted bool) {
	if stats == nil {
		return
	}
	stats.deleteCount.Add(context.Background(), 1, metric.WithAttributes(
		stats.kind,
		attribute.Bool("xtree.op.hit", deleted),
	))
	if deleted {
		stats.RecordNodeCount(-1)
	}
}

// IncreaseRotationCount counts one rebalancing case, a double
// rotation ("LR", "RL") counts once.
func (stats *treeStats) IncreaseRotationCount(rotationCase string) {
	if stats == nil {
		return
	}
	stats.rotationCount.Add(context.Background(), 1, metric.WithAttributes(
		stats.kind,
		attribute.String("xtree.rotation.case", rotationCase),
	))
}

func (stats *treeStats) IncreaseFixupCount(fixupCase string) {
	if stats == nil {
		return
	}
	stats.fixupCount.Add(context.Background(), 1, metric.WithAttributes(
		stats.kind,
		attribute.String("xtree.fixup.case", fixupCase),
	))
}

func newTreeStats(kind Kind) *treeStats {
	meterName := fmt.Sprintf("%s/%s", TreeStatsName, kind.treeName())
	meter := otel.Meter(meterName)
	return &treeStats{
		kind: attribute.String("xtree.kind", kind.String()),
		nodeCount: lo.Must[metric.Int64UpDownCounter](meter.
			Int64UpDownCounter(
				"xtree.node.count",
				metric.WithDescription("The number of nodes in the tree."),
			),
		),
		insertCount: lo.Must[metric.Int64Counter](meter.
			Int64Counter(
				"xtree.insert.count",
				metric.WithDescription("The number of insert calls, hit=false for duplicate keys."),
			),
		),
		deleteCount: lo.Must[metric.Int64Counter](meter.
			Int64Counter(
				"xtree.delete.count",
				metric.WithDescription("The number of delete calls, hit=false for absent keys."),
			),
		),
		rotationCount: lo.Must[metric.Int64Counter](meter.
			Int64Counter(
				"xtree.rotation.count",
				metric.WithDescription("The number of rebalancing rotations by case."),
			),
		),
		fixupCount: lo.Must[metric.Int64Counter](meter.
			Int64Counter(
				"xtree.fixup.count",
				metric.WithDescription("The number of red-black fixup steps by case."),
			),
		),
	}
}
