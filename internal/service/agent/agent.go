package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/finchlabs/finchbot/internal/config"
	"github.com/finchlabs/finchbot/internal/core"
	"github.com/finchlabs/finchbot/internal/service/plugins"
	"github.com/finchlabs/finchbot/pkg/log"
)

// Agent sequences one inbound message through the full pipeline: remember the
// user turn, retrieve knowledge, run plugins, compose the prompt, generate,
// remember the reply. Stages after the user-turn append fail without rolling
// it back.
type Agent struct {
	memory          core.Memory
	retriever       core.Retriever
	engine          *plugins.Engine
	generator       core.Generator
	topK            int
	historyWindow   int
	maxPromptTokens int
}

func NewAgent(
	cfg *config.AppConfig,
	memory core.Memory,
	retriever core.Retriever,
	engine *plugins.Engine,
	generator core.Generator,
) *Agent {
	return &Agent{
		memory:          memory,
		retriever:       retriever,
		engine:          engine,
		generator:       generator,
		topK:            cfg.TopK,
		historyWindow:   cfg.HistoryWindow,
		maxPromptTokens: cfg.MaxPromptTokens,
	}
}

func (a *Agent) Run(ctx context.Context, sessionID, message string) (string, error) {
	logger := log.FromCtx(ctx)

	a.memory.Append(sessionID, core.RoleUser, message)

	// The current message is rendered in its own prompt section, so it is
	// sliced off the history tail.
	history := a.memory.Recent(sessionID, a.historyWindow+1)
	if len(history) > 0 {
		history = history[:len(history)-1]
	}

	chunks := a.retriever.Query(ctx, message, a.topK)

	results := a.engine.Run(ctx, message)
	toolText := a.engine.Format(results)

	prompt := composeWithinBudget(message, history, chunks, toolText, a.maxPromptTokens)
	logger.Debug().
		Int("tokens", CountTokens(prompt)).
		Int("chunks", len(chunks)).
		Int("history", len(history)).
		Int("plugins", len(results)).
		Msg("prompt composed")

	reply, err := a.generator.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	a.memory.Append(sessionID, core.RoleAssistant, reply)
	return reply, nil
}

// FallbackMessage maps a pipeline failure to the friendly reply shown to the
// end user. Raw provider errors never reach them.
func FallbackMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrRateLimited):
		return "Please wait a moment before making another request."
	case errors.Is(err, core.ErrUnauthorized):
		return "The AI service is currently being configured. Please try again later."
	default:
		return "Something went wrong. Please try again."
	}
}
