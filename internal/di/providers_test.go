package di

import (
	"os"
	"path/filepath"
	"testing"

	"AvoDash/pkg/config"
	applogger "AvoDash/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `,Date,AveragePrice,Total Volume,4046,4225,4770,Total Bags,Small Bags,Large Bags,XLarge Bags,type,year,region
0,2015-01-11,1.60,1100,0,0,0,0,0,0,0,organic,2015,Albany
1,2015-01-04,1.50,1000,0,0,0,0,0,0,0,organic,2015,Albany
2,2015-01-04,1.00,5000,0,0,0,0,0,0,0,conventional,2015,Albany
`

type nopMetrics struct{ size int }

func (m *nopMetrics) RecordLatency(string, float64) {}
func (m *nopMetrics) RecordError(string)            {}
func (m *nopMetrics) RecordMatchedRows(int)         {}
func (m *nopMetrics) RecordCache(bool)              {}
func (m *nopMetrics) SetDatasetSize(n int)          { m.size = n }

func testConfig(t *testing.T, csv string) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "avocado.csv")
	require.NoError(t, os.WriteFile(cfg.Dataset.Path, []byte(csv), 0o644))
	return cfg
}

func TestProvideDatasetFromCSV(t *testing.T) {
	cfg := testConfig(t, sampleCSV)
	l := applogger.Nop()
	m := &nopMetrics{}

	src, cleanup, err := ProvideRecordSource(cfg, l)
	require.NoError(t, err)
	defer cleanup()

	ds, err := ProvideDataset(cfg, src, l, m)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 3, m.size)
	assert.Equal(t, []string{"conventional", "organic"}, ds.Types())
}

func TestProvideDatasetFailsOnBadRow(t *testing.T) {
	cfg := testConfig(t, sampleCSV+"3,not-a-date,1.0,1,0,0,0,0,0,0,0,organic,2015,Albany\n")
	l := applogger.Nop()

	src, cleanup, err := ProvideRecordSource(cfg, l)
	require.NoError(t, err)
	defer cleanup()

	_, err = ProvideDataset(cfg, src, l, &nopMetrics{})
	assert.ErrorContains(t, err, "csv line 5")
}

func TestProvideCache(t *testing.T) {
	cfg := testConfig(t, sampleCSV)
	l := applogger.Nop()

	cfg.Cache.Enabled = false
	svc, cleanup, err := ProvideCache(cfg, l)
	require.NoError(t, err)
	cleanup()
	assert.Nil(t, svc)

	cfg.Cache.Enabled = true
	svc, cleanup, err = ProvideCache(cfg, l)
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, svc)
}

func TestProvideHandlersAndServer(t *testing.T) {
	cfg := testConfig(t, sampleCSV)
	cfg.Metrics.Enabled = false
	l := applogger.Nop()
	m := &nopMetrics{}

	src, cleanup, err := ProvideRecordSource(cfg, l)
	require.NoError(t, err)
	defer cleanup()
	ds, err := ProvideDataset(cfg, src, l, m)
	require.NoError(t, err)

	uc := ProvideChartsUseCase(cfg, ds, m)
	dash := ProvideDashboardHandler(cfg, l, uc, nil, ProvideRateLimiter(cfg), m)
	page, err := ProvideWebHandler(cfg)
	require.NoError(t, err)

	srv := ProvideHTTPServer(cfg, l, dash, page)
	routes := map[string]bool{}
	for _, r := range srv.Echo().Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{"GET /api/options", "GET /api/layout", "GET /api/charts", "GET /api/ws", "GET /healthz", "GET /"} {
		assert.True(t, routes[want], want)
	}
	assert.False(t, routes["GET /metrics"])
	assert.NotNil(t, ProvideApp(l, srv))
}
