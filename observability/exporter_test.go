package observability

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestParseExporterKind(t *testing.T) {
	testcases := []struct {
		in   string
		kind ExporterKind
		err  bool
	}{
		{"", NoneExporter, false},
		{"off", NoneExporter, false},
		{"stdout", StdoutExporter, false},
		{"Console", StdoutExporter, false},
		{"prometheus", PrometheusExporter, false},
		{"prom", PrometheusExporter, false},
		{"jaeger", NoneExporter, true},
	}
	for _, tc := range testcases {
		kind, err := ParseExporterKind(tc.in)
		require.Equal(t, tc.kind, kind)
		if tc.err {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}
	}
	require.Equal(t, "prometheus", PrometheusExporter.String())
}

func TestInitMetrics_None(t *testing.T) {
	m, err := InitMetrics(NoneExporter)
	require.NoError(t, err)
	require.Nil(t, m.Handler)
	require.NoError(t, m.Shutdown(context.Background()))

	_, err = InitMetrics(ExporterKind(9))
	require.Error(t, err)
}

func TestInitMetrics_Stdout(t *testing.T) {
	defer goleak.VerifyNone(t)

	buf := &bytes.Buffer{}
	m, err := InitMetrics(StdoutExporter,
		WithStdoutWriter(buf),
		WithExportInterval(time.Hour, time.Second),
	)
	require.NoError(t, err)

	avl := tree.NewAVLTree[int](tree.WithTreeStats())
	for i := 0; i < 16; i++ {
		avl.Insert(i)
	}
	// Shutdown flushes the last collection.
	require.NoError(t, m.Shutdown(context.Background()))
	require.Contains(t, buf.String(), "xtree.insert.count")
	require.Contains(t, buf.String(), "xtree.rotation.count")
}

func TestInitMetrics_Prometheus(t *testing.T) {
	m, err := InitMetrics(PrometheusExporter)
	require.NoError(t, err)
	require.NotNil(t, m.Handler)
	defer func() {
		require.NoError(t, m.Shutdown(context.Background()))
	}()

	InitAppStats("test")
	rb := tree.NewRBTree[int](tree.WithTreeStats())
	for i := 0; i < 16; i++ {
		rb.Insert(i)
	}
	rb.Delete(3)

	srv := httptest.NewServer(m.Handler)
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "xtree_insert_count_total")
	require.Contains(t, string(body), "xtree_delete_count_total")
	require.Contains(t, string(body), "app_core_goroutines")
}

func TestProcessRSS(t *testing.T) {
	rss, err := ProcessRSS(context.Background(), nil)
	require.NoError(t, err)
	require.Greater(t, rss, uint64(0))
}
