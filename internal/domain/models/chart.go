package models

// Figure is a declarative plot description consumed by the front end (Plotly schema).
type Figure struct {
	Data   []Trace      `json:"data"`
	Layout FigureLayout `json:"layout"`
}

type Trace struct {
	X             []string  `json:"x"`
	Y             []float64 `json:"y"`
	Type          string    `json:"type"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
}

type FigureLayout struct {
	Title    Title    `json:"title"`
	XAxis    Axis     `json:"xaxis"`
	YAxis    Axis     `json:"yaxis"`
	Colorway []string `json:"colorway"`
}

type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	XAnchor string  `json:"xanchor"`
}

type Axis struct {
	FixedRange bool   `json:"fixedrange"`
	TickPrefix string `json:"tickprefix,omitempty"`
}

// Charts is the pair of figures produced for one selector change.
type Charts struct {
	Price  Figure `json:"price"`
	Volume Figure `json:"volume"`
	Count  int    `json:"count"`
}
