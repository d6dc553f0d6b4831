package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecord(t *testing.T) {
	day := time.Date(2015, 12, 27, 0, 0, 0, 0, time.UTC)
	withClock := time.Date(2015, 12, 27, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    time.Time
		price   string
		volume  string
		wantErr string
	}{
		{name: "decimal strings", date: day, price: "1.33", volume: "64236.62"},
		{name: "integer volume", date: day, price: "0.9", volume: "1000"},
		{name: "time of day dropped", date: withClock, price: "1.33", volume: "64236.62"},
		{name: "bad price", date: day, price: "n/a", volume: "1", wantErr: "average_price"},
		{name: "empty volume", date: day, price: "1.33", volume: "", wantErr: "total_volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := toRecord(tt.date, "Albany", "organic", tt.price, tt.volume)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, rec.Date.Equal(day), "date %v", rec.Date)
			assert.Equal(t, "Albany", rec.Region)
			assert.Equal(t, "organic", rec.Type)
			assert.True(t, rec.AveragePrice.Equal(decimal.RequireFromString(tt.price)))
			assert.True(t, rec.TotalVolume.Equal(decimal.RequireFromString(tt.volume)))
		})
	}
}

func TestNewClickHouseSourceRejectsBadTable(t *testing.T) {
	_, err := NewClickHouseSource(nil, "avocado; DROP TABLE x")
	assert.Error(t, err)

	src, err := NewClickHouseSource(nil, "analytics.avocado")
	require.NoError(t, err)
	assert.Equal(t, "clickhouse:analytics.avocado", src.Name())
}
