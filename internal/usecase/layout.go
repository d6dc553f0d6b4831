package usecase

import "AvoDash/internal/domain/models"

// Component IDs shared with the front end.
const (
	RegionFilterID = "region-filter"
	TypeFilterID   = "type-filter"
	DateRangeID    = "date-range"
	PriceChartID   = "price-chart"
	VolumeChartID  = "volume-chart"
)

// BuildLayout assembles the static page tree. It holds no logic beyond
// copying widget options in; call it once at startup.
func BuildLayout(title string, opts models.Options) models.Layout {
	header := models.Component{
		Kind:      models.KindDiv,
		ClassName: "header",
		Children: []models.Component{
			{Kind: models.KindParagraph, ClassName: "header-emoji", Text: "🥑"},
			{Kind: models.KindHeading, ClassName: "header-title", Text: "Avocado Analytics"},
			{
				Kind:      models.KindParagraph,
				ClassName: "header-description",
				Text: "Analyze the behavior of avocado prices and the number " +
					"of avocados sold in the US between 2015 and 2018",
			},
		},
	}

	menu := models.Component{
		Kind:      models.KindDiv,
		ClassName: "menu",
		Children: []models.Component{
			menuItem("Region", models.Component{
				ID:        RegionFilterID,
				Kind:      models.KindDropdown,
				ClassName: "dropdown",
				Props: map[string]interface{}{
					"options":   opts.Regions,
					"value":     opts.Default.Region,
					"clearable": false,
				},
			}),
			menuItem("Type", models.Component{
				ID:        TypeFilterID,
				Kind:      models.KindDropdown,
				ClassName: "dropdown",
				Props: map[string]interface{}{
					"options":   opts.Types,
					"value":     opts.Default.Type,
					"clearable": false,
				},
			}),
			menuItem("Date Range", models.Component{
				ID:   DateRangeID,
				Kind: models.KindDatePickerRange,
				Props: map[string]interface{}{
					"min_date_allowed": opts.MinDate,
					"max_date_allowed": opts.MaxDate,
					"start_date":       opts.Default.StartDate,
					"end_date":         opts.Default.EndDate,
				},
			}),
		},
	}

	charts := models.Component{
		Kind:      models.KindDiv,
		ClassName: "wrapper",
		Children: []models.Component{
			graphCard(PriceChartID),
			graphCard(VolumeChartID),
		},
	}

	return models.Layout{
		Title: title,
		Root: models.Component{
			Kind:     models.KindDiv,
			Children: []models.Component{header, menu, charts},
		},
	}
}

func menuItem(label string, widget models.Component) models.Component {
	return models.Component{
		Kind: models.KindDiv,
		Children: []models.Component{
			{Kind: models.KindDiv, ClassName: "menu-title", Text: label},
			widget,
		},
	}
}

func graphCard(id string) models.Component {
	return models.Component{
		Kind:      models.KindDiv,
		ClassName: "card",
		Children: []models.Component{{
			ID:    id,
			Kind:  models.KindGraph,
			Props: map[string]interface{}{"config": map[string]interface{}{"displayModeBar": false}},
		}},
	}
}
