package core

const (
	AppName    = "FinchBot"
	AppVersion = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single conversation turn. Immutable after creation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
