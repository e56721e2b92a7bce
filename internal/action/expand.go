package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/drflex-app/drflex-proxy/internal/search"
)

// ItemResolver is satisfied by search.Resolver.
type ItemResolver interface {
	Resolve(ctx context.Context, mode search.Mode, requests []search.Request, targetCount int) []search.Item
}

// Expander replaces request_* actions with concrete add_* actions carrying
// verified items. Every other action passes through untouched.
type Expander struct {
	resolver    ItemResolver
	targetCount int
	logger      *zap.Logger
}

func NewExpander(resolver ItemResolver, targetCount int, logger *zap.Logger) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	if targetCount <= 0 {
		targetCount = 20
	}
	return &Expander{resolver: resolver, targetCount: targetCount, logger: logger}
}

// Expand guarantees that no request_learning or request_events action reaches
// the client: each is replaced by its add_* counterpart, or dropped entirely
// when resolution produced nothing.
func (e *Expander) Expand(ctx context.Context, actions []Action) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		switch a.Type {
		case TypeRequestLearning:
			if expanded, ok := e.expand(ctx, a, search.ModeLearning, TypeAddLearning); ok {
				out = append(out, expanded)
			}
		case TypeRequestEvents:
			if expanded, ok := e.expand(ctx, a, search.ModeEvents, TypeAddEvents); ok {
				out = append(out, expanded)
			}
		default:
			out = append(out, a)
		}
	}
	return out
}

func (e *Expander) expand(ctx context.Context, a Action, mode search.Mode, addType string) (Action, bool) {
	query := a.ParseQuery()
	if len(query.Topics) == 0 {
		e.logger.Info("dropping request action without topics", zap.String("type", a.Type))
		return Action{}, false
	}

	requests := make([]search.Request, 0, len(query.Topics))
	for _, topic := range query.Topics {
		requests = append(requests, search.Request{Topic: topic, Location: query.Location})
	}

	items := e.resolver.Resolve(ctx, mode, requests, e.targetCount)
	if len(items) == 0 {
		e.logger.Info("dropping request action, nothing resolved",
			zap.String("type", a.Type),
			zap.Int("topics", len(requests)))
		return Action{}, false
	}

	expanded, err := NewAddAction(addType, items)
	if err != nil {
		e.logger.Error("failed to build add action", zap.Error(err))
		return Action{}, false
	}
	e.logger.Info("request action expanded",
		zap.String("type", a.Type),
		zap.Int("items", len(items)))
	return expanded, true
}
