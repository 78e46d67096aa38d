package plugins

import "context"

// Plugin is a self-contained text-in/text-out capability triggered by intent
// detection. Implementations are stateless and registered once at startup.
type Plugin interface {
	Name() string
	Description() string
	Execute(ctx context.Context, input string) (string, error)
}

// Result is the transient outcome of one plugin invocation.
type Result struct {
	PluginName string
	Input      string
	Output     string
}
