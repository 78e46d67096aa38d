package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/finchlabs/finchbot/pkg/log"
)

type GeminiConfig struct {
	APIKey     string `env:"GOOGLE_API_KEY,required,notEmpty"`
	BaseURL    string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	EmbedModel string `env:"GEMINI_EMBED_MODEL" envDefault:"embedding-001"`
	ChatModel  string `env:"GEMINI_CHAT_MODEL" envDefault:"gemini-1.5-flash"`
}

func NewGeminiConfig(ctx context.Context) *GeminiConfig {
	c := &GeminiConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Gemini config")
	}
	return c
}
