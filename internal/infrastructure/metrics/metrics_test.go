package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.AuditRecorded("user_created")
	m.AuditRecorded("user_created")
	m.SideChannelFailed("mail")
	m.SetStreamClients(3)
	m.ObserveRequest(http.MethodGet, "/api/v1/users", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.auditEntries.WithLabelValues("user_created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sideChannelFailures.WithLabelValues("mail")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.streamClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/users", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.AuditRecorded("blog_deleted")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `backoffice_audit_entries_total{action="blog_deleted"} 1`))
}
