// Package config provides centralized configuration for the holidaymeme server.
// All configurable values are loaded from environment variables with sensible defaults.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// envFile is read before the environment; real variables take precedence.
const envFile = ".env.local"

// Config holds all server configuration values.
type Config struct {
	// Port is the HTTP server listen port.
	Port string

	// DBPath is the path to the SQLite database file. Empty keeps the card in memory.
	DBPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat selects the slog handler: "json" or "text".
	LogFormat string

	// LLMProvider selects which LLM backend to use: "openai", "claude", "gemini", "ollama".
	LLMProvider string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	AnthropicKey   string
	AnthropicModel string

	GeminiKey   string
	GeminiModel string

	OllamaURL   string
	OllamaModel string

	// HolidayAPIURL and HolidayAPIKey configure the remote holiday service.
	HolidayAPIURL  string
	HolidayAPIKey  string
	HolidayCountry string

	// GiphyKey enables GIPHY search; empty disables it.
	GiphyKey    string
	GiphyRating string
	SearchLimit int

	// PageImageBaseURL is where reference pages for holidays are looked up.
	// Empty disables the page lead-image search.
	PageImageBaseURL string

	// ProbeMedia checks that image URLs respond before they are used.
	ProbeMedia bool

	// MediaLibraryPath is an optional YAML file with extra holidays and curated media.
	MediaLibraryPath string

	// StageTimeout bounds each external call made by a pipeline stage or media tier.
	StageTimeout time.Duration

	// HTTPTimeout is the timeout for outgoing HTTP requests.
	HTTPTimeout time.Duration

	// WorkerInterval is how often the prewarm worker checks for a new day.
	// Durations that are unparsable or not positive use the default.
	WorkerInterval time.Duration

	// Timezone names the location used to decide what "today" is. Empty or
	// "Local" uses the process's local time.
	Timezone string

	// CORSOrigin is the allowed CORS origin. Defaults to "*".
	CORSOrigin string

	// OTLPEndpoint enables trace export when set.
	OTLPEndpoint string
}

// Load reads .env.local (if present) and then configuration from environment
// variables, applying defaults.
func Load() Config {
	loadEnvFile(envFile)
	return Config{
		Port:             envOr("PORT", "8080"),
		DBPath:           envOrEmpty("DB_PATH", "holidaymeme.db"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		LogFormat:        envOr("LOG_FORMAT", "text"),
		LLMProvider:      envOr("LLM_PROVIDER", "openai"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:      envOr("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicKey:     os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:   envOr("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		OllamaURL:        envOr("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:      envOr("OLLAMA_MODEL", "llama3"),
		HolidayAPIURL:    envOr("HOLIDAY_API_URL", "https://api.api-ninjas.com/v1/holidays"),
		HolidayAPIKey:    os.Getenv("HOLIDAY_API_KEY"),
		HolidayCountry:   envOr("HOLIDAY_COUNTRY", "US"),
		GiphyKey:         os.Getenv("GIPHY_API_KEY"),
		GiphyRating:      envOr("GIPHY_RATING", "g"),
		SearchLimit:      envInt("SEARCH_LIMIT", 5),
		PageImageBaseURL: envOrEmpty("PAGE_IMAGE_BASE_URL", "https://en.wikipedia.org/wiki/"),
		ProbeMedia:       envBool("PROBE_MEDIA", true),
		MediaLibraryPath: os.Getenv("MEDIA_LIBRARY_PATH"),
		StageTimeout:     envDuration("STAGE_TIMEOUT", 20*time.Second),
		HTTPTimeout:      envDuration("HTTP_TIMEOUT", 30*time.Second),
		WorkerInterval:   envDuration("WORKER_INTERVAL", 15*time.Minute),
		Timezone:         envOr("TIMEZONE", "Local"),
		CORSOrigin:       envOr("CORS_ORIGIN", "*"),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

// UseStubs returns true when no LLM API key is configured for the selected provider.
func (c Config) UseStubs() bool {
	switch c.LLMProvider {
	case "claude":
		return c.AnthropicKey == ""
	case "gemini":
		return c.GeminiKey == ""
	case "ollama":
		return false // Ollama runs locally, no key needed
	default:
		return c.OpenAIKey == ""
	}
}

// Location resolves Timezone, falling back to time.Local when it is unknown.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("unknown timezone, using local time", "timezone", c.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// NewLogger builds the process logger from LogLevel and LogFormat.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// loadEnvFile loads key=value pairs from path without overriding variables
// that are already set. A missing file is ignored.
func loadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("read env file", "path", path, "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrEmpty is like envOr but an explicitly empty variable yields "".
func envOrEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
