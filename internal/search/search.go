package search

// Mode selects which query templates and site filters apply.
type Mode string

const (
	ModeLearning Mode = "learning"
	ModeEvents   Mode = "events"
)

// Request is one topic to resolve. Location only matters in events mode.
type Request struct {
	Topic    string
	Location string
}

// Result is a raw, unvalidated entry from the search collaborator.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Item is a result that passed filtering and reachability verification.
type Item struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}
