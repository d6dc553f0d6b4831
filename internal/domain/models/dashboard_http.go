package models

// Requests for dashboard HTTP/WebSocket endpoints. Empty fields fall back to the
// configured defaults and the dataset bounds when the request is resolved.

type ChartsRequest struct {
	Region    string `query:"region" json:"region" validate:"omitempty,max=64"`
	Type      string `query:"type" json:"type" validate:"omitempty,max=32"`
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options populates the selector widgets.
type Options struct {
	Regions []Option      `json:"regions"`
	Types   []Option      `json:"types"`
	MinDate string        `json:"min_date"`
	MaxDate string        `json:"max_date"`
	Default DefaultFilter `json:"default"`
}

type DefaultFilter struct {
	Region    string `json:"region"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Health struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// Stream message types sent over the websocket.
const (
	StreamCharts = "charts"
	StreamError  = "error"
)

// StreamMessage is one server-to-client websocket frame.
type StreamMessage struct {
	Type   string      `json:"type"`
	Data   interface{} `json:"data,omitempty"`
	Errors interface{} `json:"errors,omitempty"`
}
