package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCatalogLoad(t *testing.T) {
	r := NewRecorder()

	okBefore := testutil.ToFloat64(catalogLoads.WithLabelValues("file", "ok"))
	errBefore := testutil.ToFloat64(catalogLoads.WithLabelValues("file", "error"))
	skippedBefore := testutil.ToFloat64(catalogSkippedRows)

	r.RecordCatalogLoad("file", 20*time.Millisecond, 12, 3, nil)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(catalogLoads.WithLabelValues("file", "ok")))
	assert.Equal(t, float64(12), testutil.ToFloat64(catalogProducts))
	assert.Equal(t, skippedBefore+3, testutil.ToFloat64(catalogSkippedRows))

	r.RecordCatalogLoad("file", time.Second, 0, 0, errors.New("locked"))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(catalogLoads.WithLabelValues("file", "error")))
	assert.Equal(t, float64(12), testutil.ToFloat64(catalogProducts), "a failed load keeps the gauge")
}

func TestRecordSearchAndContact(t *testing.T) {
	r := NewRecorder()

	matched := testutil.ToFloat64(searchQueries.WithLabelValues("true"))
	unmatched := testutil.ToFloat64(searchQueries.WithLabelValues("false"))
	r.RecordSearch(3)
	r.RecordSearch(0)
	assert.Equal(t, matched+1, testutil.ToFloat64(searchQueries.WithLabelValues("true")))
	assert.Equal(t, unmatched+1, testutil.ToFloat64(searchQueries.WithLabelValues("false")))

	created := testutil.ToFloat64(contactSubmissions.WithLabelValues("created"))
	r.RecordContact("created")
	assert.Equal(t, created+1, testutil.ToFloat64(contactSubmissions.WithLabelValues("created")))

	failures := testutil.ToFloat64(emailFailures)
	r.RecordEmailFailure()
	assert.Equal(t, failures+1, testutil.ToFloat64(emailFailures))

	views := testutil.ToFloat64(productViews)
	r.RecordProductView()
	assert.Equal(t, views+1, testutil.ToFloat64(productViews))
}

func filterSampleCount(t *testing.T) uint64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "catalog_filter_result_ratio" {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func TestRecordFilter(t *testing.T) {
	r := NewRecorder()
	before := filterSampleCount(t)
	r.RecordFilter(0, 0)
	r.RecordFilter(10, 4)
	assert.Equal(t, before+2, filterSampleCount(t))
}
