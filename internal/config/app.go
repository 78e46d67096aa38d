package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/finchlabs/finchbot/pkg/log"
)

type AppConfig struct {
	// Transport flags
	EnableHTTP     bool   `env:"ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool   `env:"ENABLE_TELEGRAM" envDefault:"false"`
	ListenAddr     string `env:"FINCH_LISTEN_ADDR" envDefault:":3000"`

	// Knowledge base
	DocsPath string `env:"FINCH_DOCS_PATH" envDefault:"docs"`
	TopK     int    `env:"FINCH_TOP_K" envDefault:"3"`

	// Conversation memory caps
	MaxSessionMessages int `env:"FINCH_MAX_SESSION_MESSAGES" envDefault:"50"`
	MaxSessions        int `env:"FINCH_MAX_SESSIONS" envDefault:"100"`

	// Messages of prior conversation included in the prompt
	HistoryWindow int `env:"FINCH_HISTORY_WINDOW" envDefault:"10"`

	// Prompt budget (cl100k_base tokens)
	MaxPromptTokens int `env:"FINCH_MAX_PROMPT_TOKENS" envDefault:"4096"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}
