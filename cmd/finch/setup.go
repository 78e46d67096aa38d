package main

import (
	"context"
	"os"

	"github.com/finchlabs/finchbot/internal/config"
	"github.com/finchlabs/finchbot/internal/providers/docs"
	"github.com/finchlabs/finchbot/internal/providers/gemini"
	"github.com/finchlabs/finchbot/internal/service/agent"
	"github.com/finchlabs/finchbot/internal/service/memory"
	"github.com/finchlabs/finchbot/internal/service/plugins"
	"github.com/finchlabs/finchbot/internal/storage/vector"
	"github.com/finchlabs/finchbot/internal/transport/httpapi"
	"github.com/finchlabs/finchbot/internal/transport/telegram"
	"github.com/finchlabs/finchbot/pkg/log"
	"github.com/finchlabs/finchbot/pkg/srv"
	"github.com/joho/godotenv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	geminiCfg := config.NewGeminiConfig(ctx)

	// 2. Gemini gateways (embedding + generation share one client)
	client := gemini.NewClient(geminiCfg)

	// 3. Knowledge base: ingest in the background so transports come up
	// immediately. Queries against the not-yet-ingested store return nothing.
	store := vector.NewStore(client)
	go ingestDocs(ctx, store, appCfg.DocsPath)

	// 4. Conversation memory
	sessions := memory.NewSessions(appCfg.MaxSessionMessages, appCfg.MaxSessions)

	// 5. Agent
	ag := agent.NewAgent(appCfg, sessions, store, plugins.NewEngine(), client)

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, ag)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func ingestDocs(ctx context.Context, store *vector.Store, dir string) {
	logger := log.FromCtx(ctx)

	chunks, err := docs.NewLoader(dir).LoadChunks(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("knowledge base not loaded, serving without retrieval")
		return
	}

	if err := store.Ingest(ctx, chunks); err != nil {
		logger.Error().Err(err).Msg("knowledge base ingestion failed")
	}
}

func initTransports(ctx context.Context, cfg *config.AppConfig, ag *agent.Agent) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableHTTP {
		services = append(services, httpapi.NewServer(cfg, ag))
	}

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, ag)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Msg("loaded .env file")
	return nil
}
