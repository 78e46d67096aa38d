package plugins

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pluginNames(plugins []Plugin) []string {
	var names []string
	for _, p := range plugins {
		names = append(names, p.Name())
	}
	return names
}

func TestEngine_Detect(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "math only",
			message: "What's 7+8?",
			want:    []string{"math"},
		},
		{
			name:    "weather only",
			message: "How's the weather in Pune?",
			want:    []string{"weather"},
		},
		{
			name:    "weather keyword without city",
			message: "will it rain tomorrow",
			want:    []string{"weather"},
		},
		{
			name:    "math keyword without digits",
			message: "help me solve this math problem",
			want:    []string{"math"},
		},
		{
			name:    "digits plus operator",
			message: "does 12*12 ring a bell",
			want:    []string{"math"},
		},
		{
			name:    "both triggers, weather ordered first",
			message: "How's the weather in Mumbai? Also calculate 2 + 2",
			want:    []string{"weather", "math"},
		},
		{
			name:    "neither",
			message: "tell me a story about a fox",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Detect(tt.message)
			assert.Equal(t, tt.want, pluginNames(got))
		})
	}
}

func TestEngine_RunProducesOrderedResults(t *testing.T) {
	engine := NewEngine()

	results := engine.Run(context.Background(), "How's the weather in Mumbai? Also calculate 2 + 2")
	require.Len(t, results, 2)

	assert.Equal(t, "weather", results[0].PluginName)
	assert.Contains(t, results[0].Output, "Mumbai")

	assert.Equal(t, "math", results[1].PluginName)
	assert.Contains(t, results[1].Output, "equals 4")
}

func TestEngine_RunNoIntent(t *testing.T) {
	engine := NewEngine()
	assert.Empty(t, engine.Run(context.Background(), "tell me a story"))
}

func TestEngine_Format(t *testing.T) {
	engine := NewEngine()

	t.Run("empty results", func(t *testing.T) {
		assert.Equal(t, "", engine.Format(nil))
	})

	t.Run("labels per plugin", func(t *testing.T) {
		got := engine.Format([]Result{
			{PluginName: "weather", Output: "Current conditions in Pune: sunny"},
			{PluginName: "math", Output: "2 + 2 equals 4"},
		})
		assert.Equal(t, "Weather data: Current conditions in Pune: sunny\nCalculation: 2 + 2 equals 4", got)
	})

	t.Run("unknown plugin passes through", func(t *testing.T) {
		got := engine.Format([]Result{{PluginName: "other", Output: "raw output"}})
		assert.Equal(t, "raw output", got)
	})
}
