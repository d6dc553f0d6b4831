package models

// Component kinds understood by the front end.
const (
	KindDiv             = "div"
	KindHeading         = "h1"
	KindParagraph       = "p"
	KindDropdown        = "dropdown"
	KindDatePickerRange = "date-picker-range"
	KindGraph           = "graph"
)

// Component is one node of the declarative page tree.
type Component struct {
	ID        string                 `json:"id,omitempty"`
	Kind      string                 `json:"kind"`
	ClassName string                 `json:"class_name,omitempty"`
	Text      string                 `json:"text,omitempty"`
	Props     map[string]interface{} `json:"props,omitempty"`
	Children  []Component            `json:"children,omitempty"`
}

// Layout is the whole page: document title plus the component tree.
type Layout struct {
	Title string    `json:"title"`
	Root  Component `json:"root"`
}
