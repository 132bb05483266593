package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, 200, 10*time.Millisecond)
	c.RecordRequest(http.MethodGet, 200, 20*time.Millisecond)
	c.RecordRequest(http.MethodPost, 401, 5*time.Millisecond)
	c.RecordRequest(http.MethodDelete, 0, time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	var observed uint64
	for _, mf := range families {
		switch mf.GetName() {
		case "posclient_requests_total":
			for _, m := range mf.GetMetric() {
				var method, status string
				for _, l := range m.GetLabel() {
					switch l.GetName() {
					case "method":
						method = l.GetValue()
					case "status":
						status = l.GetValue()
					}
				}
				counts[method+" "+status] = m.GetCounter().GetValue()
			}
		case "posclient_request_duration_seconds":
			for _, m := range mf.GetMetric() {
				observed += m.GetHistogram().GetSampleCount()
			}
		}
	}

	assert.Equal(t, map[string]float64{"GET 200": 2, "POST 401": 1, "DELETE 0": 1}, counts)
	assert.Equal(t, uint64(4), observed)
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg).RecordRequest(http.MethodGet, 200, time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `posclient_requests_total{method="GET",status="200"} 1`))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop{}.RecordRequest("GET", 200, time.Second) })
}
