package action

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/drflex-app/drflex-proxy/internal/search"
)

type fakeResolver struct {
	items    []search.Item
	lastMode search.Mode
	lastReqs []search.Request
	calls    int
}

func (f *fakeResolver) Resolve(ctx context.Context, mode search.Mode, requests []search.Request, targetCount int) []search.Item {
	f.calls++
	f.lastMode = mode
	f.lastReqs = requests
	return f.items
}

func TestExpand_RequestLearningReplaced(t *testing.T) {
	resolver := &fakeResolver{items: []search.Item{
		{Title: "Deep Work basics", URL: "https://hbr.org/article/deep-work"},
	}}
	expander := NewExpander(resolver, 20, nil)

	in := []Action{{
		Type: TypeRequestLearning,
		Raw:  json.RawMessage(`{"type":"request_learning","query":{"topics":["time management"]}}`),
	}}
	out := expander.Expand(context.Background(), in)

	if len(out) != 1 {
		t.Fatalf("expected 1 action, got %d", len(out))
	}
	if out[0].Type != TypeAddLearning {
		t.Errorf("type = %q, want add_learning", out[0].Type)
	}
	if resolver.lastMode != search.ModeLearning {
		t.Errorf("mode = %q", resolver.lastMode)
	}
	if len(resolver.lastReqs) != 1 || resolver.lastReqs[0].Topic != "time management" {
		t.Errorf("unexpected requests: %+v", resolver.lastReqs)
	}

	var payload struct {
		Type  string        `json:"type"`
		Items []search.Item `json:"items"`
	}
	if err := json.Unmarshal(out[0].Raw, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Type != TypeAddLearning || len(payload.Items) != 1 {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestExpand_RequestEventsCarriesLocation(t *testing.T) {
	resolver := &fakeResolver{items: []search.Item{
		{Title: "Jazz night", URL: "https://www.eventbrite.co.uk/e/jazz-night"},
	}}
	expander := NewExpander(resolver, 20, nil)

	in := []Action{{
		Type: TypeRequestEvents,
		Raw:  json.RawMessage(`{"type":"request_events","query":{"topics":["jazz"],"location":"Bristol"}}`),
	}}
	out := expander.Expand(context.Background(), in)

	if len(out) != 1 || out[0].Type != TypeAddEvents {
		t.Fatalf("unexpected result: %+v", out)
	}
	if resolver.lastMode != search.ModeEvents {
		t.Errorf("mode = %q", resolver.lastMode)
	}
	if resolver.lastReqs[0].Location != "Bristol" {
		t.Errorf("location = %q", resolver.lastReqs[0].Location)
	}
}

func TestExpand_EmptyResolutionDropsAction(t *testing.T) {
	resolver := &fakeResolver{items: nil}
	expander := NewExpander(resolver, 20, nil)

	in := []Action{{
		Type: TypeRequestLearning,
		Raw:  json.RawMessage(`{"type":"request_learning","query":{"topics":["time management"]}}`),
	}}
	out := expander.Expand(context.Background(), in)

	if len(out) != 0 {
		t.Fatalf("expected dropped action, got %+v", out)
	}
	if resolver.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", resolver.calls)
	}
}

func TestExpand_NoTopicsDropsWithoutResolving(t *testing.T) {
	resolver := &fakeResolver{items: []search.Item{{Title: "x", URL: "https://a.com"}}}
	expander := NewExpander(resolver, 20, nil)

	in := []Action{{
		Type: TypeRequestEvents,
		Raw:  json.RawMessage(`{"type":"request_events","query":{"topics":[]}}`),
	}}
	out := expander.Expand(context.Background(), in)

	if len(out) != 0 {
		t.Fatalf("expected dropped action, got %+v", out)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver should not be called without topics, calls = %d", resolver.calls)
	}
}

func TestExpand_OtherActionsPassThrough(t *testing.T) {
	resolver := &fakeResolver{}
	expander := NewExpander(resolver, 20, nil)

	raw := json.RawMessage(`{"type":"add_goals","items":["run 5k"]}`)
	out := expander.Expand(context.Background(), []Action{{Type: TypeAddGoals, Raw: raw}})

	if len(out) != 1 {
		t.Fatalf("expected 1 action, got %d", len(out))
	}
	if string(out[0].Raw) != string(raw) {
		t.Errorf("pass-through action modified: %s", out[0].Raw)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver should not be called, calls = %d", resolver.calls)
	}
}

func TestExpand_NoRequestActionsSurvive(t *testing.T) {
	resolver := &fakeResolver{items: []search.Item{{Title: "x", URL: "https://meetup.com/x"}}}
	expander := NewExpander(resolver, 20, nil)

	in := []Action{
		{Type: TypeRequestLearning, Raw: json.RawMessage(`{"type":"request_learning","query":{"topics":["a"]}}`)},
		{Type: TypeAddTodos, Raw: json.RawMessage(`{"type":"add_todos","items":["b"]}`)},
		{Type: TypeRequestEvents, Raw: json.RawMessage(`{"type":"request_events","query":{"topics":["c"]}}`)},
	}
	out := expander.Expand(context.Background(), in)

	for _, a := range out {
		if a.Type == TypeRequestLearning || a.Type == TypeRequestEvents {
			t.Errorf("request action leaked to output: %s", a.Type)
		}
	}
	if len(out) != 3 {
		t.Errorf("expected 3 actions, got %d", len(out))
	}
}
