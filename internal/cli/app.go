package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/destination"
	"github.com/joseph-ayodele/resumes-tracker/internal/destination/notion"
	"github.com/joseph-ayodele/resumes-tracker/internal/export"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm/gemini"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm/openai"
	"github.com/joseph-ayodele/resumes-tracker/internal/pipeline"
	"github.com/joseph-ayodele/resumes-tracker/internal/repository"
	"github.com/joseph-ayodele/resumes-tracker/internal/server"
)

// app holds the wiring shared by commands.
type app struct {
	cfg     *common.Config
	log     *slog.Logger
	db      *repository.DB
	runs    repository.UploadRepository
	service *pipeline.Service
	export  *export.Service
}

// newApp loads config, applies flag overrides and opens history unless withHistory is false.
func newApp(ctx context.Context, withHistory bool) (*app, error) {
	cfg := common.LoadConfig()
	if flagToken != "" {
		cfg.Notion.APIKey = flagToken
	}
	if flagDatabaseID != "" {
		cfg.Notion.DatabaseID = flagDatabaseID
	}
	a := &app{cfg: cfg, log: slog.Default()}

	if withHistory && !flagNoHistory {
		db, err := server.ConnectHistory(ctx, cfg.History.URL, int32(cfg.History.MaxConns), a.log)
		if err != nil {
			return nil, err
		}
		if db != nil {
			a.db = db
			a.runs = repository.NewUploadRepository(db, a.log)
		}
	}

	var history pipeline.HistoryRecorder
	if a.runs != nil {
		history = a.runs
	}
	a.service = pipeline.NewService(a.destinationFactory(), history, a.log)
	a.export = export.NewService(a.runs, a.log)
	return a, nil
}

func (a *app) destinationFactory() destination.Factory {
	return notion.NewFactory(a.cfg.Notion.Timeout, a.log)
}

// extractor builds the configured vision model client.
func (a *app) extractor(ctx context.Context) (llm.Extractor, error) {
	if err := a.cfg.ValidateLLM(); err != nil {
		return nil, err
	}
	switch a.cfg.LLM.Provider {
	case common.ProviderOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:      a.cfg.LLM.OpenAIAPIKey,
			BaseURL:     a.cfg.LLM.OpenAIBaseURL,
			Model:       a.cfg.LLM.OpenAIModel,
			Temperature: a.cfg.LLM.Temperature,
			Timeout:     a.cfg.LLM.Timeout,
		}, a.log), nil
	case common.ProviderGemini:
		return gemini.NewClient(ctx, gemini.Config{
			APIKey:      a.cfg.LLM.GeminiAPIKey,
			Model:       a.cfg.LLM.GeminiModel,
			Temperature: a.cfg.LLM.Temperature,
			Timeout:     a.cfg.LLM.Timeout,
		}, a.log)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", a.cfg.LLM.Provider)
	}
}

func (a *app) requireDestination() error {
	return a.cfg.ValidateDestination()
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close(a.log)
	}
}
