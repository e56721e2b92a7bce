package action

import (
	"encoding/json"

	"github.com/drflex-app/drflex-proxy/internal/search"
)

const (
	TypeAddGoals        = "add_goals"
	TypeAddTodos        = "add_todos"
	TypeAddLearning     = "add_learning"
	TypeAddEvents       = "add_events"
	TypeRequestLearning = "request_learning"
	TypeRequestEvents   = "request_events"
)

// Action is a structured command extracted from LLM output. The raw JSON
// object is kept verbatim so unknown types round-trip unchanged to the client.
type Action struct {
	Type string
	Raw  json.RawMessage
}

func (a Action) MarshalJSON() ([]byte, error) {
	if len(a.Raw) == 0 {
		return []byte("null"), nil
	}
	return a.Raw, nil
}

// Query is the payload of request_learning and request_events actions.
type Query struct {
	Topics   []string `json:"topics"`
	Location string   `json:"location,omitempty"`
}

// ParseQuery reads the request payload. Some prompt revisions emitted the
// topics at the top level instead of under "query", so both shapes are read.
func (a Action) ParseQuery() Query {
	var envelope struct {
		Query    Query    `json:"query"`
		Topics   []string `json:"topics"`
		Location string   `json:"location"`
	}
	if err := json.Unmarshal(a.Raw, &envelope); err != nil {
		return Query{}
	}
	q := envelope.Query
	if len(q.Topics) == 0 {
		q.Topics = envelope.Topics
	}
	if q.Location == "" {
		q.Location = envelope.Location
	}
	return q
}

// NewAddAction builds an add_learning or add_events action from resolved items.
func NewAddAction(actionType string, items []search.Item) (Action, error) {
	payload := struct {
		Type  string        `json:"type"`
		Items []search.Item `json:"items"`
	}{Type: actionType, Items: items}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Action{}, err
	}
	return Action{Type: actionType, Raw: raw}, nil
}
