package usecase

import (
	"slices"

	"AvoDash/internal/domain/models"
	"AvoDash/pkg/util"
)

const (
	PriceChartTitle  = "Average Price of Avocado"
	VolumeChartTitle = "Avocados Sold"

	PriceColor  = "#17B897"
	VolumeColor = "#E12D39"

	priceHoverTemplate = "$%{y:.2f}<extra></extra>"
	lineTrace          = "lines"
	titleX             = 0.05
)

// Project turns filtered records into the price and volume figures.
// Empty input yields figures with empty (non-nil) series.
func Project(recs []models.Record) (price, volume models.Figure) {
	x := make([]string, len(recs))
	prices := make([]float64, len(recs))
	volumes := make([]float64, len(recs))
	for i, r := range recs {
		x[i] = util.FormatDate(r.Date)
		prices[i] = r.AveragePrice.InexactFloat64()
		volumes[i] = r.TotalVolume.InexactFloat64()
	}

	price = models.Figure{
		Data: []models.Trace{{
			X:             x,
			Y:             prices,
			Type:          lineTrace,
			HoverTemplate: priceHoverTemplate,
		}},
		Layout: figureLayout(PriceChartTitle, PriceColor, "$"),
	}
	volume = models.Figure{
		Data: []models.Trace{{
			X:    slices.Clone(x),
			Y:    volumes,
			Type: lineTrace,
		}},
		Layout: figureLayout(VolumeChartTitle, VolumeColor, ""),
	}
	return price, volume
}

func figureLayout(title, color, tickPrefix string) models.FigureLayout {
	return models.FigureLayout{
		Title:    models.Title{Text: title, X: titleX, XAnchor: "left"},
		XAxis:    models.Axis{FixedRange: true},
		YAxis:    models.Axis{FixedRange: true, TickPrefix: tickPrefix},
		Colorway: []string{color},
	}
}
