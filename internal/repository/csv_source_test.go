package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	domrepo "AvoDash/internal/domain/repository"

	"github.com/shopspring/decimal"
)

const sampleCSV = `,Date,AveragePrice,Total Volume,4046,type,year,region
0,2015-12-27,1.33,64236.62,1036.74,conventional,2015,Albany
1,2015-12-20,1.35,54876.98,674.28,conventional,2015,Albany
0,2015-12-27,1.83,989.55,8.16,organic,2015,Albany
`

func TestCSVSourceReadsRequiredColumns(t *testing.T) {
	src := NewCSVSource("mem", "")
	recs, err := src.Read(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}

	r := recs[0]
	if !r.Date.Equal(time.Date(2015, 12, 27, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", r.Date)
	}
	if r.Region != "Albany" || r.Type != "conventional" {
		t.Fatalf("unexpected categorical fields %+v", r)
	}
	if !r.AveragePrice.Equal(decimal.RequireFromString("1.33")) {
		t.Fatalf("unexpected price %s", r.AveragePrice)
	}
	if !r.TotalVolume.Equal(decimal.RequireFromString("64236.62")) {
		t.Fatalf("unexpected volume %s", r.TotalVolume)
	}
}

func TestCSVSourceMissingColumn(t *testing.T) {
	src := NewCSVSource("mem", "")
	_, err := src.Read(context.Background(), strings.NewReader("Date,AveragePrice,type,region\n2015-01-04,1.0,organic,Albany\n"))
	if !errors.Is(err, domrepo.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestCSVSourceBadDateIsFatal(t *testing.T) {
	body := "Date,AveragePrice,Total Volume,type,region\n" +
		"2015-01-04,1.0,10,organic,Albany\n" +
		"not-a-date,1.0,10,organic,Albany\n"

	src := NewCSVSource("mem", "")
	_, err := src.Read(context.Background(), strings.NewReader(body))
	if err == nil {
		t.Fatalf("expected error for bad date")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestCSVSourceBadNumberIsFatal(t *testing.T) {
	body := "Date,AveragePrice,Total Volume,type,region\n2015-01-04,cheap,10,organic,Albany\n"

	src := NewCSVSource("mem", "")
	if _, err := src.Read(context.Background(), strings.NewReader(body)); err == nil {
		t.Fatalf("expected error for bad price")
	}
}

func TestCSVSourceEmptyInput(t *testing.T) {
	src := NewCSVSource("mem", "")
	if _, err := src.Read(context.Background(), strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestCSVSourceLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avocado.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src := NewCSVSource(path, "2006-01-02")
	recs, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if src.Name() != "csv:"+path {
		t.Fatalf("unexpected name %q", src.Name())
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), "")
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewClickHouseSourceRejectsBadTable(t *testing.T) {
	if _, err := NewClickHouseSource(nil, "avocado; DROP TABLE x"); err == nil {
		t.Fatalf("expected invalid table error")
	}
	if _, err := NewClickHouseSource(nil, "market.avocado"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
