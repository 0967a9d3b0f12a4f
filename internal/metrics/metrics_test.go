package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()
	var m *Metrics
	require.NotPanics(t, func() {
		m.RecordRequest("get", 0.1)
		m.RecordError("get", "not_found")
		m.RecordCommitLogAppend(0.1)
		m.RecordReplay(3)
		m.RecordReap("hints", 2)
		m.RecordCDCEvent()
		m.RecordCDCDropped()
		m.SetCDCSubscribers(1)
		m.RegisterRowGauge(func() int { return 1 })
	})
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	s, err := NewServer(&Config{Metrics: m})
	require.NoError(t, err)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Record(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	m := New("node-1")

	m.RecordRequest("insert", 0.01)
	m.RecordRequest("insert", 0.02)
	m.RecordError("insert", "invalid_request")
	m.RecordReap("sweep", 4)

	body := scrape(t, m)
	req.Contains(body, `tessera_operations_requests_total{node_id="node-1",operation="insert"} 2`)
	req.Contains(body, `tessera_operations_errors_total{kind="invalid_request",node_id="node-1",operation="insert"} 1`)
	req.Contains(body, `tessera_reaper_purged_total{node_id="node-1"} 4`)

	// a second instance has its own registry
	req.Contains(scrape(t, New("node-2")), `tessera_reaper_purged_total{node_id="node-2"} 0`)
}

func TestServer_Handlers(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	m := New("node-1")
	m.RegisterRowGauge(func() int { return 42 })

	_, err := NewServer(&Config{Port: 9100})
	req.Error(err)

	s, err := NewServer(&Config{Port: 0, Metrics: m})
	req.NoError(err)

	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	req.NoError(err)
	req.Equal(http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	req.True(strings.Contains(scrape(t, m), "tessera_storage_rows 42"))
}
