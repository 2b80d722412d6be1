package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yangwenmai/holidaymeme/internal/clock"
	"github.com/yangwenmai/holidaymeme/internal/config"
	"github.com/yangwenmai/holidaymeme/internal/engine"
	"github.com/yangwenmai/holidaymeme/internal/holiday"
	"github.com/yangwenmai/holidaymeme/internal/media"
	"github.com/yangwenmai/holidaymeme/internal/session"
	"github.com/yangwenmai/holidaymeme/internal/store"
)

// app is the wired object graph shared by the commands.
type app struct {
	pipeline *engine.Pipeline
	session  *session.Session
	closers  []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("close", "error", err)
		}
	}
}

// buildApp wires store, holiday source, ranker, media cascade and session from cfg.
func buildApp(cfg config.Config) (*app, error) {
	a := &app{}

	kv, err := openKV(cfg, a)
	if err != nil {
		return nil, err
	}

	table := holiday.NewTable()
	library := media.NewLibrary()
	if cfg.MediaLibraryPath != "" {
		f, err := media.LoadLibraryFile(cfg.MediaLibraryPath)
		if err != nil {
			a.Close()
			return nil, err
		}
		table.Merge(f.HolidayDays())
		f.ApplyTo(library)
		slog.Info("loaded media library", "path", cfg.MediaLibraryPath, "entries", library.Len())
	}

	mc := newModelClient(cfg)
	clk := clock.System{Location: cfg.Location()}

	source := holiday.NewSource(newHolidayFetcher(cfg),
		holiday.WithCountry(cfg.HolidayCountry),
		holiday.WithTimeout(cfg.StageTimeout),
		holiday.WithTable(table),
	)
	ranker := engine.NewRanker(mc, cfg.StageTimeout)
	resolver := media.NewResolver(clk, newTiers(cfg, library, mc), media.WithTierTimeout(cfg.StageTimeout))

	a.pipeline = engine.NewPipeline(clk, source, ranker, resolver, store.NewContentSlot(kv))
	a.session = session.New(a.pipeline)
	return a, nil
}

func openKV(cfg config.Config, a *app) (store.KV, error) {
	if cfg.DBPath == "" {
		slog.Info("DB_PATH empty, keeping the daily card in memory")
		return store.NewMemoryStore(), nil
	}
	db, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	s, err := store.New(db)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	return s, nil
}

// newModelClient selects the oracle backend, falling back to the stub when
// the selected provider has no credentials.
func newModelClient(cfg config.Config) engine.ModelClient {
	if cfg.UseStubs() {
		slog.Info("no API key for LLM provider, using stub oracle", "provider", cfg.LLMProvider)
		return &engine.StubModelClient{}
	}
	switch cfg.LLMProvider {
	case "claude":
		slog.Info("using Claude model client", "model", cfg.AnthropicModel)
		return engine.NewClaudeClient(cfg.AnthropicKey, engine.WithClaudeModel(cfg.AnthropicModel))
	case "gemini":
		slog.Info("using Gemini model client", "model", cfg.GeminiModel)
		return engine.NewGeminiClient(cfg.GeminiKey, engine.WithGeminiModel(cfg.GeminiModel))
	case "ollama":
		slog.Info("using Ollama model client", "url", cfg.OllamaURL, "model", cfg.OllamaModel)
		return engine.NewOllamaClient(cfg.OllamaURL, engine.WithOllamaModel(cfg.OllamaModel))
	default:
		slog.Info("using OpenAI model client", "base_url", cfg.OpenAIBaseURL, "model", cfg.OpenAIModel)
		return engine.NewOpenAIClient(cfg.OpenAIKey,
			engine.WithBaseURL(cfg.OpenAIBaseURL),
			engine.WithModel(cfg.OpenAIModel),
			engine.WithHTTPTimeout(cfg.HTTPTimeout),
		)
	}
}

func newHolidayFetcher(cfg config.Config) holiday.Fetcher {
	if cfg.HolidayAPIURL == "" {
		return nil
	}
	return holiday.NewNinjasClient(cfg.HolidayAPIKey,
		holiday.WithNinjasURL(cfg.HolidayAPIURL),
		holiday.WithNinjasHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
}

// newTiers builds the cascade: curated, generate, then search when any
// searcher is configured. The generic fallback is implicit.
func newTiers(cfg config.Config, library *media.Library, mc engine.ModelClient) []media.Tier {
	var probe media.Prober
	if cfg.ProbeMedia {
		probe = media.NewHTTPProber(cfg.HTTPTimeout)
	}

	picker := media.NewPicker()
	tiers := []media.Tier{
		media.NewCuratedTier(library, picker),
		media.NewGenerateTier(engine.NewMemeGenerator(mc), probe),
	}

	var searchers []media.Searcher
	if cfg.GiphyKey != "" {
		searchers = append(searchers, media.NewGiphyClient(cfg.GiphyKey, cfg.HTTPTimeout))
	}
	if cfg.PageImageBaseURL != "" {
		searchers = append(searchers, media.NewPageImageSearcher(cfg.PageImageBaseURL, cfg.HTTPTimeout))
	}
	if len(searchers) > 0 {
		tiers = append(tiers, media.NewSearchTier(probe, cfg.SearchLimit, cfg.GiphyRating, searchers...))
	}
	return tiers
}
