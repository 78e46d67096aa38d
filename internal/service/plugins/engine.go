package plugins

import (
	"context"
	"fmt"
	"strings"

	"github.com/finchlabs/finchbot/pkg/log"
)

// registration pairs a plugin with its independent intent predicate. Triggers
// are not mutually exclusive; one message may fire several plugins.
type registration struct {
	plugin    Plugin
	triggered func(message string) bool
}

// Engine dispatches messages to plugins based on natural-language intent
// detection. Registration order is fixed and determines result order.
type Engine struct {
	registry []registration
}

func NewEngine() *Engine {
	return &Engine{
		registry: []registration{
			{plugin: NewWeather(), triggered: weatherIntent},
			{plugin: NewMath(), triggered: mathIntent},
		},
	}
}

// Detect returns the plugins whose intent predicate fires for the message,
// in registration order.
func (e *Engine) Detect(message string) []Plugin {
	var triggered []Plugin
	for _, reg := range e.registry {
		if reg.triggered(message) {
			triggered = append(triggered, reg.plugin)
		}
	}
	return triggered
}

// Run executes every detected plugin. Tool failures become conversational
// output; they never propagate past the engine.
func (e *Engine) Run(ctx context.Context, message string) []Result {
	logger := log.FromCtx(ctx)

	var results []Result
	for _, plugin := range e.Detect(message) {
		logger.Debug().Str("plugin", plugin.Name()).Msg("executing plugin")

		output, err := plugin.Execute(ctx, message)
		if err != nil {
			logger.Warn().Err(err).Str("plugin", plugin.Name()).Msg("plugin execution failed")
			output = fmt.Sprintf("Error: %v", err)
		}
		results = append(results, Result{
			PluginName: plugin.Name(),
			Input:      message,
			Output:     output,
		})
	}
	return results
}

// Format renders plugin results for prompt injection. Empty input yields an
// empty string.
func (e *Engine) Format(results []Result) string {
	if len(results) == 0 {
		return ""
	}

	lines := make([]string, 0, len(results))
	for _, result := range results {
		switch result.PluginName {
		case weatherPluginName:
			lines = append(lines, "Weather data: "+result.Output)
		case mathPluginName:
			lines = append(lines, "Calculation: "+result.Output)
		default:
			lines = append(lines, result.Output)
		}
	}
	return strings.Join(lines, "\n")
}

func containsAny(message string, keywords []string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
