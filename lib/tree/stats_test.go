package tree

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/benz9527/xtree/lib/xlog"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collectSums(t *testing.T, reader sdkmetric.Reader) map[string][]metricdata.DataPoint[int64] {
	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	res := make(map[string][]metricdata.DataPoint[int64])
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				res[m.Name] = append(res[m.Name], sum.DataPoints...)
			}
		}
	}
	return res
}

func sumOf(points []metricdata.DataPoint[int64], kv attribute.KeyValue) int64 {
	total := int64(0)
	for _, dp := range points {
		if v, ok := dp.Attributes.Value(kv.Key); ok && v == kv.Value {
			total += dp.Value
		}
	}
	return total
}

func TestTreeStats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	defer func() {
		_ = provider.Shutdown(context.Background())
	}()

	avl := NewAVLTree[int](WithTreeStats())
	rb := NewRBTree[int](WithTreeStats())
	for _, k := range []int{5, 6, 8, 8} {
		avl.Insert(k)
		rb.Insert(k)
	}
	avl.Delete(6)
	avl.Delete(100)
	rb.Release()

	sums := collectSums(t, reader)
	hit := attribute.Bool("xtree.op.hit", true)
	miss := attribute.Bool("xtree.op.hit", false)
	require.Equal(t, int64(6), sumOf(sums["xtree.insert.count"], hit))
	require.Equal(t, int64(2), sumOf(sums["xtree.insert.count"], miss))
	require.Equal(t, int64(1), sumOf(sums["xtree.delete.count"], hit))
	require.Equal(t, int64(1), sumOf(sums["xtree.delete.count"], miss))
	require.Equal(t, int64(2), sumOf(sums["xtree.node.count"], attribute.String("xtree.kind", "avl")))
	require.Equal(t, int64(0), sumOf(sums["xtree.node.count"], attribute.String("xtree.kind", "rb")))
	require.Equal(t, int64(1), sumOf(sums["xtree.rotation.count"], attribute.String("xtree.rotation.case", "RR")))
	require.Equal(t, int64(1), sumOf(sums["xtree.rotation.count"], attribute.String("xtree.rotation.case", "i6")))
}

func TestTreeLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := xlog.NewXLogger(
		xlog.WithXLoggerLevel(xlog.LogLevelDebug),
		xlog.WithXLoggerOutput(buf),
	)
	avl := NewAVLTree[int](WithTreeLogger(logger))
	for _, k := range []int{5, 6, 8} {
		avl.Insert(k)
	}
	rb := NewRBTree[int](WithTreeLogger(logger))
	for _, k := range []int{5, 6, 8} {
		rb.Insert(k)
	}
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	records := make([]map[string]any, 0, 2)
	for _, line := range lines {
		rec := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	require.Equal(t, "avltree", records[0]["component"])
	require.Equal(t, "RR", records[0]["case"])
	require.EqualValues(t, 5, records[0]["key"])
	require.EqualValues(t, 6, records[0]["newTop"])
	require.Equal(t, "rbtree", records[1]["component"])
	require.Equal(t, "i6", records[1]["case"])
}
