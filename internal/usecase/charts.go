package usecase

import (
	"context"
	"fmt"
	"time"

	"AvoDash/internal/dataset"
	"AvoDash/internal/domain/models"
	domrepo "AvoDash/internal/domain/repository"
	"AvoDash/pkg/util"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ChartsUseCase answers selector changes with chart pairs over a fixed dataset.
type ChartsUseCase struct {
	ds            *dataset.Dataset
	metrics       domrepo.Metrics
	defaultRegion string
	defaultType   string
}

func NewChartsUseCase(ds *dataset.Dataset, metrics domrepo.Metrics, defaultRegion, defaultType string) *ChartsUseCase {
	return &ChartsUseCase{
		ds:            ds,
		metrics:       metrics,
		defaultRegion: defaultRegion,
		defaultType:   defaultType,
	}
}

// Dataset exposes the read-only dataset handle.
func (uc *ChartsUseCase) Dataset() *dataset.Dataset { return uc.ds }

// Update runs Filter then Project for one selector change.
func (uc *ChartsUseCase) Update(_ context.Context, sel models.SelectorState) models.Charts {
	start := time.Now()
	recs := Filter(uc.ds, sel)
	price, volume := Project(recs)

	if uc.metrics != nil {
		uc.metrics.RecordMatchedRows(len(recs))
		uc.metrics.RecordLatency("charts_update", time.Since(start).Seconds())
	}
	return models.Charts{Price: price, Volume: volume, Count: len(recs)}
}

// Resolve turns raw request values into a selector. Empty dates fall back to
// the dataset bounds; empty region/type fall back to the configured defaults.
func (uc *ChartsUseCase) Resolve(req models.ChartsRequest) (models.SelectorState, error) {
	sel := models.SelectorState{
		Region:    req.Region,
		Type:      req.Type,
		StartDate: uc.ds.MinDate(),
		EndDate:   uc.ds.MaxDate(),
	}
	if sel.Region == "" {
		sel.Region = uc.defaultRegion
	}
	if sel.Type == "" {
		sel.Type = uc.defaultType
	}
	if req.StartDate != "" {
		t, err := util.ParseDate(req.StartDate, util.DateLayout)
		if err != nil {
			return models.SelectorState{}, fmt.Errorf("start_date: %w", err)
		}
		sel.StartDate = t
	}
	if req.EndDate != "" {
		t, err := util.ParseDate(req.EndDate, util.DateLayout)
		if err != nil {
			return models.SelectorState{}, fmt.Errorf("end_date: %w", err)
		}
		sel.EndDate = t
	}
	return sel, nil
}

// Options lists widget choices and the initial selector.
func (uc *ChartsUseCase) Options() models.Options {
	title := cases.Title(language.English)

	regions := uc.ds.Regions()
	types := uc.ds.Types()
	opts := models.Options{
		Regions: make([]models.Option, 0, len(regions)),
		Types:   make([]models.Option, 0, len(types)),
		MinDate: util.FormatDate(uc.ds.MinDate()),
		MaxDate: util.FormatDate(uc.ds.MaxDate()),
	}
	for _, r := range regions {
		opts.Regions = append(opts.Regions, models.Option{Label: r, Value: r})
	}
	for _, t := range types {
		opts.Types = append(opts.Types, models.Option{Label: title.String(t), Value: t})
	}
	opts.Default = models.DefaultFilter{
		Region:    uc.defaultRegion,
		Type:      uc.defaultType,
		StartDate: opts.MinDate,
		EndDate:   opts.MaxDate,
	}
	return opts
}
