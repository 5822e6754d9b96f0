package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Collectors register against the default registry, so the test binary
// shares a single instance.
var testMetrics = NewMetrics()

func TestRecordOperation(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.OperationsTotal.WithLabelValues("list", "ok"))
	testMetrics.RecordOperation("list", "ok", 5*time.Millisecond)
	after := testutil.ToFloat64(testMetrics.OperationsTotal.WithLabelValues("list", "ok"))
	assert.Equal(t, before+1, after)
}

func TestRecordOperationError(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.OperationErrors.WithLabelValues("read", "not_found"))
	testMetrics.RecordOperationError("read", "not_found")
	after := testutil.ToFloat64(testMetrics.OperationErrors.WithLabelValues("read", "not_found"))
	assert.Equal(t, before+1, after)
}

func TestByteCountersIgnoreNonPositive(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.BytesRead)
	testMetrics.AddBytesRead(0)
	testMetrics.AddBytesRead(-5)
	assert.Equal(t, before, testutil.ToFloat64(testMetrics.BytesRead))

	testMetrics.AddBytesRead(128)
	assert.Equal(t, before+128, testutil.ToFloat64(testMetrics.BytesRead))
}

func TestTimer(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.OperationsTotal.WithLabelValues("copy", "ok"))
	timer := NewTimer(testMetrics, "copy")
	timer.Stop("ok")
	after := testutil.ToFloat64(testMetrics.OperationsTotal.WithLabelValues("copy", "ok"))
	assert.Equal(t, before+1, after)
}

func TestMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(testMetrics))
	r.GET("/files", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files?path=x", nil))
	require.Equal(t, http.StatusOK, w.Code)

	// Labeled by route template, not by the raw URL.
	count := testutil.ToFloat64(testMetrics.RequestsTotal.WithLabelValues("GET", "/files", "200"))
	assert.GreaterOrEqual(t, count, 1.0)
}
