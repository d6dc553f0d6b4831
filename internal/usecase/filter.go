package usecase

import (
	"AvoDash/internal/dataset"
	"AvoDash/internal/domain/models"
)

// Filter returns the records matching all four selector predicates, in
// ascending date order. Unknown region/type values simply match nothing.
// The result is never nil.
func Filter(ds *dataset.Dataset, sel models.SelectorState) []models.Record {
	out := make([]models.Record, 0, 256)
	for r := range ds.Between(sel.StartDate, sel.EndDate) {
		if r.Region == sel.Region && r.Type == sel.Type {
			out = append(out, r)
		}
	}
	return out
}
