package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/drflex-app/drflex-proxy/internal/action"
	"github.com/drflex-app/drflex-proxy/internal/llm"
	"github.com/drflex-app/drflex-proxy/internal/personality"
)

// Result is one completed chat turn.
type Result struct {
	Reply   string          `json:"reply"`
	Actions []action.Action `json:"actions"`
}

// Orchestrator runs a chat turn: system prompt + bounded history to the LLM,
// then action extraction and expansion on the raw reply.
type Orchestrator struct {
	provider     llm.Provider
	expander     *action.Expander
	historyLimit int
	logger       *zap.Logger
}

type Config struct {
	Provider     llm.Provider
	Expander     *action.Expander
	HistoryLimit int
	Logger       *zap.Logger
}

func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = 16
	}
	return &Orchestrator{
		provider:     cfg.Provider,
		expander:     cfg.Expander,
		historyLimit: limit,
		logger:       logger,
	}
}

// Handle completes one turn. An LLM failure is terminal and returned to the
// caller; resolution failures during expansion only shrink the action list.
func (o *Orchestrator) Handle(ctx context.Context, persona string, history []llm.Message) (*Result, error) {
	messages := make([]llm.Message, 0, o.historyLimit+1)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: personality.Resolve(persona),
	})
	if len(history) > o.historyLimit {
		history = history[len(history)-o.historyLimit:]
	}
	messages = append(messages, history...)

	raw, err := o.provider.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	cleaned, actions := action.Parse(raw)
	o.logger.Debug("reply parsed",
		zap.Int("history", len(history)),
		zap.Int("actions", len(actions)))

	final := o.expander.Expand(ctx, actions)
	return &Result{Reply: cleaned, Actions: final}, nil
}
