package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one dated observation of price and volume for a region/type pair.
type Record struct {
	Date         time.Time
	Region       string
	Type         string
	AveragePrice decimal.Decimal
	TotalVolume  decimal.Decimal
}

// SelectorState holds the four dashboard filter values.
// StartDate <= EndDate is expected but not enforced.
type SelectorState struct {
	Region    string
	Type      string
	StartDate time.Time
	EndDate   time.Time
}

// Matches reports whether r satisfies all four selector predicates.
func (s SelectorState) Matches(r Record) bool {
	return r.Region == s.Region &&
		r.Type == s.Type &&
		!r.Date.Before(s.StartDate) &&
		!r.Date.After(s.EndDate)
}
