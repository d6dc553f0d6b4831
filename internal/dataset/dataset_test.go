package dataset

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"AvoDash/internal/domain/models"

	"github.com/shopspring/decimal"
)

type staticSource struct {
	recs []models.Record
	err  error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(context.Context) ([]models.Record, error) { return s.recs, s.err }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(date, region, typ string, price, vol string) models.Record {
	return models.Record{
		Date:         day(date),
		Region:       region,
		Type:         typ,
		AveragePrice: decimal.RequireFromString(price),
		TotalVolume:  decimal.RequireFromString(vol),
	}
}

func unsorted() []models.Record {
	return []models.Record{
		rec("2015-01-11", "Albany", "organic", "1.60", "1100"),
		rec("2015-01-04", "Boston", "conventional", "1.00", "5000"),
		rec("2015-01-04", "Albany", "organic", "1.50", "1000"),
		rec("2015-01-18", "Albany", "conventional", "1.10", "5200"),
		rec("2015-01-04", "Albany", "conventional", "1.00", "4900"),
	}
}

func TestNewSortsByDateStable(t *testing.T) {
	ds := New(unsorted())

	if ds.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", ds.Len())
	}
	for i := 1; i < ds.Len(); i++ {
		if ds.At(i).Date.Before(ds.At(i - 1).Date) {
			t.Fatalf("records not sorted at %d", i)
		}
	}
	// equal dates keep source order: Boston, Albany/organic, Albany/conventional
	if ds.At(0).Region != "Boston" || ds.At(1).Type != "organic" || ds.At(2).Type != "conventional" {
		t.Fatalf("stable order violated: %+v %+v %+v", ds.At(0), ds.At(1), ds.At(2))
	}
}

func TestNewDoesNotAliasInput(t *testing.T) {
	in := unsorted()
	ds := New(in)
	in[0].Region = "Mutated"

	for r := range ds.All() {
		if r.Region == "Mutated" {
			t.Fatalf("dataset shares backing array with caller")
		}
	}
}

func TestDistinctValuesComplete(t *testing.T) {
	ds := New(unsorted())

	if got, want := ds.Regions(), []string{"Albany", "Boston"}; !slices.Equal(got, want) {
		t.Fatalf("regions: want %v, got %v", want, got)
	}
	if got, want := ds.Types(), []string{"conventional", "organic"}; !slices.Equal(got, want) {
		t.Fatalf("types: want %v, got %v", want, got)
	}
}

func TestRegionsReturnsCopy(t *testing.T) {
	ds := New(unsorted())
	r := ds.Regions()
	r[0] = "Changed"
	if ds.Regions()[0] != "Albany" {
		t.Fatalf("Regions exposed internal slice")
	}
}

func TestMinMaxDate(t *testing.T) {
	ds := New(unsorted())
	if !ds.MinDate().Equal(day("2015-01-04")) {
		t.Fatalf("unexpected min %v", ds.MinDate())
	}
	if !ds.MaxDate().Equal(day("2015-01-18")) {
		t.Fatalf("unexpected max %v", ds.MaxDate())
	}
}

func TestBetweenInclusive(t *testing.T) {
	ds := New(unsorted())

	var got []string
	for r := range ds.Between(day("2015-01-04"), day("2015-01-11")) {
		got = append(got, r.Date.Format("2006-01-02"))
	}
	want := []string{"2015-01-04", "2015-01-04", "2015-01-04", "2015-01-11"}
	if !slices.Equal(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestBetweenInvertedRange(t *testing.T) {
	ds := New(unsorted())
	for range ds.Between(day("2015-01-18"), day("2015-01-04")) {
		t.Fatalf("expected no records for inverted range")
	}
}

func TestBetweenEarlyStop(t *testing.T) {
	ds := New(unsorted())
	n := 0
	for range ds.Between(day("2015-01-01"), day("2015-12-31")) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("expected to stop after 2, got %d", n)
	}
}

func TestLoadEmptySource(t *testing.T) {
	_, err := Load(context.Background(), staticSource{})
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadPropagatesSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(context.Background(), staticSource{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestLoadBuildsDataset(t *testing.T) {
	ds, err := Load(context.Background(), staticSource{recs: unsorted()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", ds.Len())
	}
}
