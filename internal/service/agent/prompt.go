package agent

import (
	"strings"
	"sync"

	"github.com/finchlabs/finchbot/internal/core"
	"github.com/pkoukk/tiktoken-go"
)

const systemInstructions = "You are FinchBot, a helpful assistant. " +
	"Ground your answer in the knowledge base and tool results when they are relevant, " +
	"and keep replies concise and conversational."

const chunkSeparator = "\n---\n"

var (
	tk     *tiktoken.Tiktoken
	tkOnce sync.Once
)

func getTokenizer() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}

// CountTokens reports the cl100k_base token count of text.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(getTokenizer().Encode(text, nil, nil))
}

// BuildPrompt deterministically assembles the model input. Section order is
// fixed: system instructions, knowledge base, conversation history, tool
// results, current user message. Empty sections are omitted entirely.
func BuildPrompt(userMessage string, history []core.Message, chunks []string, toolText string) string {
	var b strings.Builder
	b.WriteString(systemInstructions)

	if len(chunks) > 0 {
		b.WriteString("\n\nKnowledge base:\n")
		b.WriteString(strings.Join(chunks, chunkSeparator))
	}

	if len(history) > 0 {
		b.WriteString("\n\nConversation history:")
		for _, msg := range history {
			b.WriteString("\n")
			b.WriteString(msg.Role)
			b.WriteString(": ")
			b.WriteString(msg.Content)
		}
	}

	if toolText != "" {
		b.WriteString("\n\nTool results:\n")
		b.WriteString(toolText)
	}

	b.WriteString("\n\nUser message: ")
	b.WriteString(userMessage)
	return b.String()
}

// composeWithinBudget builds the prompt and, while it exceeds maxTokens,
// drops the lowest-ranked retrieved chunk and rebuilds. History and tool
// output are never trimmed; retrieval is the optional enrichment.
func composeWithinBudget(userMessage string, history []core.Message, chunks []string, toolText string, maxTokens int) string {
	prompt := BuildPrompt(userMessage, history, chunks, toolText)
	if maxTokens <= 0 {
		return prompt
	}

	for CountTokens(prompt) > maxTokens && len(chunks) > 0 {
		chunks = chunks[:len(chunks)-1]
		prompt = BuildPrompt(userMessage, history, chunks, toolText)
	}
	return prompt
}
