package core

import "context"

// Memory is the per-session bounded conversation history.
type Memory interface {
	Append(sessionID, role, content string)
	Recent(sessionID string, n int) []Message
}

// Retriever answers top-k similarity queries over the knowledge base.
type Retriever interface {
	Query(ctx context.Context, text string, k int) []string
}
