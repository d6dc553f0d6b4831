// Package dataset holds the read-only, date-sorted record table loaded at startup.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
	"time"

	"AvoDash/internal/domain/models"
	"AvoDash/internal/domain/repository"
)

// ErrEmpty is returned when a source yields no rows.
var ErrEmpty = errors.New("dataset: no records")

// Dataset is an immutable table of records sorted ascending by date, plus the
// distinct values of its categorical fields. It is safe for concurrent readers.
type Dataset struct {
	records []models.Record
	regions []string
	types   []string
}

// Load reads every row from src once. Any source error is fatal for the caller.
func Load(ctx context.Context, src repository.RecordSource) (*Dataset, error) {
	recs, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("load %s: %w", src.Name(), ErrEmpty)
	}
	return New(recs), nil
}

// New copies recs, sorts them by date (stable, so source order breaks ties)
// and derives the distinct region and type lists.
func New(recs []models.Record) *Dataset {
	owned := slices.Clone(recs)
	slices.SortStableFunc(owned, func(a, b models.Record) int {
		return a.Date.Compare(b.Date)
	})

	regions := make([]string, 0, 64)
	types := make([]string, 0, 4)
	for _, r := range owned {
		regions = append(regions, r.Region)
		types = append(types, r.Type)
	}

	return &Dataset{
		records: owned,
		regions: distinct(regions),
		types:   distinct(types),
	}
}

func distinct(values []string) []string {
	slices.SortFunc(values, strings.Compare)
	return slices.Clip(slices.Compact(values))
}

func (d *Dataset) Len() int { return len(d.records) }

// At returns the i-th record in date order.
func (d *Dataset) At(i int) models.Record { return d.records[i] }

// Regions returns the sorted distinct region values.
func (d *Dataset) Regions() []string { return slices.Clone(d.regions) }

// Types returns the sorted distinct type values.
func (d *Dataset) Types() []string { return slices.Clone(d.types) }

// MinDate is the earliest record date; zero for an empty dataset.
func (d *Dataset) MinDate() time.Time {
	if len(d.records) == 0 {
		return time.Time{}
	}
	return d.records[0].Date
}

// MaxDate is the latest record date; zero for an empty dataset.
func (d *Dataset) MaxDate() time.Time {
	if len(d.records) == 0 {
		return time.Time{}
	}
	return d.records[len(d.records)-1].Date
}

// All yields every record in date order.
func (d *Dataset) All() iter.Seq[models.Record] {
	return func(yield func(models.Record) bool) {
		for _, r := range d.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Between yields records with start <= date <= end, in date order.
// An inverted range yields nothing.
func (d *Dataset) Between(start, end time.Time) iter.Seq[models.Record] {
	return func(yield func(models.Record) bool) {
		lo := sort.Search(len(d.records), func(i int) bool {
			return !d.records[i].Date.Before(start)
		})
		for i := lo; i < len(d.records); i++ {
			r := d.records[i]
			if r.Date.After(end) {
				return
			}
			if !yield(r) {
				return
			}
		}
	}
}
