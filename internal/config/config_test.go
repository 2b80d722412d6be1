package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env.local")

	content := `# comment line
FOO_TEST_KEY=hello
BAR_TEST_KEY="quoted value"
BAZ_TEST_KEY='single quoted'

EMPTY_LINE_ABOVE=works
`
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	unsetEnv(t, "FOO_TEST_KEY", "BAR_TEST_KEY", "BAZ_TEST_KEY", "EMPTY_LINE_ABOVE")

	loadEnvFile(envFile)

	tests := []struct {
		key  string
		want string
	}{
		{"FOO_TEST_KEY", "hello"},
		{"BAR_TEST_KEY", "quoted value"},
		{"BAZ_TEST_KEY", "single quoted"},
		{"EMPTY_LINE_ABOVE", "works"},
	}
	for _, tt := range tests {
		if got := os.Getenv(tt.key); got != tt.want {
			t.Errorf("os.Getenv(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestLoadEnvFile_RealEnvTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env.local")

	if err := os.WriteFile(envFile, []byte("PRECEDENCE_TEST=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PRECEDENCE_TEST", "from-env")

	loadEnvFile(envFile)

	if got := os.Getenv("PRECEDENCE_TEST"); got != "from-env" {
		t.Errorf("env var = %q, want %q (real env should take precedence)", got, "from-env")
	}
}

func TestLoadEnvFile_MissingFile(t *testing.T) {
	loadEnvFile("/nonexistent/path/.env.local")
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t,
		"PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "LLM_PROVIDER",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"HOLIDAY_API_URL", "HOLIDAY_API_KEY", "HOLIDAY_COUNTRY",
		"GIPHY_API_KEY", "GIPHY_RATING", "SEARCH_LIMIT", "PAGE_IMAGE_BASE_URL", "PROBE_MEDIA",
		"STAGE_TIMEOUT", "HTTP_TIMEOUT", "WORKER_INTERVAL", "TIMEZONE", "CORS_ORIGIN",
		"OTEL_EXPORTER_OTLP_ENDPOINT",
	)

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DBPath != "holidaymeme.db" {
		t.Errorf("DBPath = %q, want holidaymeme.db", cfg.DBPath)
	}
	if cfg.LLMProvider != "openai" || cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("LLM = %s/%s, want openai/gpt-4o-mini", cfg.LLMProvider, cfg.OpenAIModel)
	}
	if cfg.HolidayCountry != "US" {
		t.Errorf("HolidayCountry = %q, want US", cfg.HolidayCountry)
	}
	if cfg.GiphyRating != "g" || cfg.SearchLimit != 5 {
		t.Errorf("search = %q/%d, want g/5", cfg.GiphyRating, cfg.SearchLimit)
	}
	if !cfg.ProbeMedia {
		t.Error("ProbeMedia should default to true")
	}
	if cfg.StageTimeout != 20*time.Second || cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("timeouts = %v/%v, want 20s/30s", cfg.StageTimeout, cfg.HTTPTimeout)
	}
	if cfg.WorkerInterval != 15*time.Minute {
		t.Errorf("WorkerInterval = %v, want 15m", cfg.WorkerInterval)
	}
	if cfg.OTLPEndpoint != "" {
		t.Errorf("OTLPEndpoint = %q, want empty", cfg.OTLPEndpoint)
	}
	if !cfg.UseStubs() {
		t.Error("UseStubs() = false without an OpenAI key")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "https://aiberm.com/v1")
	t.Setenv("OPENAI_MODEL", "google/gemini-2.5-flash")
	t.Setenv("OPENAI_API_KEY", "sk-test-key")
	t.Setenv("HOLIDAY_COUNTRY", "GB")
	t.Setenv("PROBE_MEDIA", "false")
	t.Setenv("DB_PATH", "")

	cfg := Load()

	if cfg.OpenAIBaseURL != "https://aiberm.com/v1" {
		t.Errorf("OpenAIBaseURL = %q, want Aiberm URL", cfg.OpenAIBaseURL)
	}
	if cfg.OpenAIModel != "google/gemini-2.5-flash" {
		t.Errorf("OpenAIModel = %q, want %q", cfg.OpenAIModel, "google/gemini-2.5-flash")
	}
	if cfg.OpenAIKey != "sk-test-key" {
		t.Errorf("OpenAIKey = %q, want %q", cfg.OpenAIKey, "sk-test-key")
	}
	if cfg.HolidayCountry != "GB" {
		t.Errorf("HolidayCountry = %q, want GB", cfg.HolidayCountry)
	}
	if cfg.ProbeMedia {
		t.Error("ProbeMedia = true, want false")
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty for in-memory", cfg.DBPath)
	}
}

func TestUseStubs(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantStub bool
	}{
		{"openai without key", Config{LLMProvider: "openai"}, true},
		{"openai with key", Config{LLMProvider: "openai", OpenAIKey: "sk-x"}, false},
		{"claude without key", Config{LLMProvider: "claude"}, true},
		{"claude with key", Config{LLMProvider: "claude", AnthropicKey: "sk-x"}, false},
		{"gemini without key", Config{LLMProvider: "gemini"}, true},
		{"gemini with key", Config{LLMProvider: "gemini", GeminiKey: "key"}, false},
		{"ollama always false", Config{LLMProvider: "ollama"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.UseStubs(); got != tt.wantStub {
				t.Errorf("UseStubs() = %v, want %v", got, tt.wantStub)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	if got := (Config{Timezone: "Local"}).Location(); got != time.Local {
		t.Errorf("Location(Local) = %v", got)
	}
	if got := (Config{Timezone: "UTC"}).Location(); got.String() != "UTC" {
		t.Errorf("Location(UTC) = %v", got)
	}
	if got := (Config{Timezone: "Mars/Olympus_Mons"}).Location(); got != time.Local {
		t.Errorf("Location(unknown) = %v, want Local", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := Config{LogLevel: "warn", LogFormat: "json"}.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "stage", "source")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"stage":"source"`) {
		t.Errorf("json output = %q", out)
	}

	buf.Reset()
	Config{LogLevel: "bogus"}.NewLogger(&buf).Info("text record")
	if !strings.Contains(buf.String(), "msg=\"text record\"") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestEnvDuration_Invalid(t *testing.T) {
	t.Setenv("TEST_DUR_INVALID", "not-a-duration")

	got := envDuration("TEST_DUR_INVALID", 5*time.Second)
	if got != 5*time.Second {
		t.Errorf("envDuration with invalid value = %v, want fallback 5s", got)
	}
}

func TestEnvDuration_NonPositive(t *testing.T) {
	for _, v := range []string{"0", "0s", "-5m"} {
		t.Setenv("WORKER_INTERVAL", v)
		if got := Load().WorkerInterval; got != 15*time.Minute {
			t.Errorf("WORKER_INTERVAL=%q: WorkerInterval = %v, want 15m", v, got)
		}
	}
}

func TestEnvInt_Invalid(t *testing.T) {
	t.Setenv("TEST_INT_INVALID", "abc")

	got := envInt("TEST_INT_INVALID", 42)
	if got != 42 {
		t.Errorf("envInt with invalid value = %d, want fallback 42", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "0")
	if envBool("TEST_BOOL", true) {
		t.Error("envBool(0) = true")
	}
	t.Setenv("TEST_BOOL", "maybe")
	if !envBool("TEST_BOOL", true) {
		t.Error("envBool(invalid) should fall back")
	}
}
