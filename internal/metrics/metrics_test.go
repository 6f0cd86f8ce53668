package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(requestsTotal.WithLabelValues("info", "error"))
	ObserveRequest("info", errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(requestsTotal.WithLabelValues("info", "error")))

	before = testutil.ToFloat64(requestsTotal.WithLabelValues("info", "success"))
	ObserveRequest("info", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(requestsTotal.WithLabelValues("info", "success")))
}

func TestAddStoredBytesIgnoresEmpty(t *testing.T) {
	before := testutil.ToFloat64(storedBytesTotal.WithLabelValues("thumbnail"))
	AddStoredBytes("thumbnail", 0)
	AddStoredBytes("thumbnail", 10)
	assert.Equal(t, before+10, testutil.ToFloat64(storedBytesTotal.WithLabelValues("thumbnail")))
}

func TestObserveExtraction(t *testing.T) {
	assert.NotPanics(t, func() {
		ObserveExtraction("video", time.Now(), nil)
	})
}
