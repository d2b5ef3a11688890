package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.DBPath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}

// --- Load defaults ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("server defaults unexpected: %+v", cfg)
	}
	if cfg.WriteTimeout != 120*time.Second || cfg.MaxHeaderBytes != 1<<20 {
		t.Fatalf("timeouts unexpected: %+v", cfg)
	}
	if cfg.DBPath != "interactions.db" || cfg.LogsLimit != 50 {
		t.Fatalf("interaction log defaults unexpected: %+v", cfg)
	}
	if cfg.RateRPS != 0 || cfg.RateBurst != 10 {
		t.Fatalf("rate limiter must be off by default: rps=%v burst=%d", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.LLM.Provider != ProviderOpenAI || cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Fatalf("llm defaults unexpected: %+v", cfg.LLM)
	}
	if cfg.LLM.SystemPrompt != DefaultSystemPrompt {
		t.Fatalf("system prompt default = %q", cfg.LLM.SystemPrompt)
	}
	if cfg.Security.HSTSMaxAge != 180*24*time.Hour {
		t.Fatalf("hsts default unexpected: %v", cfg.Security.HSTSMaxAge)
	}
	if cfg.OTEL.Enabled || cfg.OTEL.ServiceName != "go-support-chat" || cfg.OTEL.SampleRatio != 1.0 {
		t.Fatalf("otel defaults unexpected: %+v", cfg.OTEL)
	}
	if cfg.CORS.AllowedOrigins != nil {
		t.Fatalf("expected no CORS origins by default, got %#v", cfg.CORS.AllowedOrigins)
	}
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_Overrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"

	t.Setenv("LOG_LEVEL", "WARNING") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("SWAGGER_ENABLED", "1")

	t.Setenv("DB_PATH", "db.sqlite")
	t.Setenv("LOGS_LIMIT", "20")

	t.Setenv("RATE_RPS", "2.5")
	t.Setenv("RATE_BURST", "3")

	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.com , , http://b ")
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	t.Setenv("LLM_PROVIDER", " Yandex ")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "https://openrouter.ai/api/v1")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENROUTER_REFERRER", "https://example.com")
	t.Setenv("OPENROUTER_TITLE", "support")
	t.Setenv("YANDEX_OAUTH_TOKEN", "y0_token")
	t.Setenv("YANDEX_FOLDER_ID", "b1g")
	t.Setenv("SYSTEM_PROMPT", "You are terse.")

	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || !cfg.LogPretty || !cfg.SwaggerEnabled {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}
	if cfg.DBPath != "db.sqlite" || cfg.LogsLimit != 20 {
		t.Fatalf("interaction log unexpected: %+v", cfg)
	}
	if cfg.RateRPS != 2.5 || cfg.RateBurst != 3 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"}) {
		t.Fatalf("cors origins unexpected: %#v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}
	want := LLMConfig{
		Provider:           ProviderYandex,
		Model:              "gpt-4o-mini",
		SystemPrompt:       "You are terse.",
		OpenAIAPIKey:       "sk-test",
		OpenAIBaseURL:      "https://openrouter.ai/api/v1",
		OpenRouterReferrer: "https://example.com",
		OpenRouterTitle:    "support",
		YandexOAuthToken:   "y0_token",
		YandexFolderID:     "b1g",
	}
	if cfg.LLM != want {
		t.Fatalf("llm unexpected:\n got  %+v\n want %+v", cfg.LLM, want)
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	t.Run("bad float", func(t *testing.T) {
		t.Setenv("RATE_RPS", "x")
		if _, err := Load(); err == nil || !containsErr(err, "parse config") {
			t.Fatalf("expected parse error, got: %v", err)
		}
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("READ_TIMEOUT", "zzz")
		if _, err := Load(); err == nil {
			t.Fatalf("expected parse error for READ_TIMEOUT")
		}
	})
	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("LOG_PRETTY", "maybe")
		if _, err := Load(); err == nil {
			t.Fatalf("expected parse error for LOG_PRETTY")
		}
	})
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	t.Run("invalid LOG_LEVEL", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		if _, err := Load(); err == nil || !containsErr(err, "LOG_LEVEL") {
			t.Fatalf("expected LOG_LEVEL validation error, got: %v", err)
		}
	})
	t.Run("empty PORT via spaces", func(t *testing.T) {
		t.Setenv("PORT", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "PORT must not be empty") {
			t.Fatalf("expected port validation error, got: %v", err)
		}
	})
	t.Run("non-positive timeouts", func(t *testing.T) {
		t.Setenv("READ_TIMEOUT", "0s")
		if _, err := Load(); err == nil || !containsErr(err, "timeouts must be positive") {
			t.Fatalf("expected timeouts validation error, got: %v", err)
		}
	})
	t.Run("max header bytes <= 0", func(t *testing.T) {
		t.Setenv("MAX_HEADER_BYTES", "0")
		if _, err := Load(); err == nil || !containsErr(err, "MAX_HEADER_BYTES") {
			t.Fatalf("expected MAX_HEADER_BYTES validation error, got: %v", err)
		}
	})
	t.Run("empty DB_PATH", func(t *testing.T) {
		t.Setenv("DB_PATH", "   ")
		if _, err := Load(); err == nil || !containsErr(err, "DB_PATH must not be empty") {
			t.Fatalf("expected DB_PATH validation error, got: %v", err)
		}
	})
	t.Run("logs limit < 1", func(t *testing.T) {
		t.Setenv("LOGS_LIMIT", "0")
		if _, err := Load(); err == nil || !containsErr(err, "LOGS_LIMIT") {
			t.Fatalf("expected LOGS_LIMIT validation error, got: %v", err)
		}
	})
	t.Run("rate rps negative", func(t *testing.T) {
		t.Setenv("RATE_RPS", "-1")
		if _, err := Load(); err == nil || !containsErr(err, "RATE_RPS") {
			t.Fatalf("expected RATE_RPS validation error, got: %v", err)
		}
	})
	t.Run("rate burst < 1", func(t *testing.T) {
		t.Setenv("RATE_BURST", "0")
		if _, err := Load(); err == nil || !containsErr(err, "RATE_BURST") {
			t.Fatalf("expected RATE_BURST validation error, got: %v", err)
		}
	})
	t.Run("hsts max age negative", func(t *testing.T) {
		t.Setenv("HSTS_MAX_AGE", "-1s")
		if _, err := Load(); err == nil || !containsErr(err, "HSTS_MAX_AGE") {
			t.Fatalf("expected HSTS_MAX_AGE validation error, got: %v", err)
		}
	})
	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "anthropic")
		if _, err := Load(); err == nil || !containsErr(err, "LLM_PROVIDER") {
			t.Fatalf("expected LLM_PROVIDER validation error, got: %v", err)
		}
	})
	t.Run("otel sample ratio out of range", func(t *testing.T) {
		t.Setenv("OTEL_TRACES_SAMPLER_ARG", "1.5")
		if _, err := Load(); err == nil || !containsErr(err, "OTEL_TRACES_SAMPLER_ARG") {
			t.Fatalf("expected OTEL_TRACES_SAMPLER_ARG validation error, got: %v", err)
		}
	})
}

func TestLoad_BlankSystemPromptFallsBack(t *testing.T) {
	t.Setenv("SYSTEM_PROMPT", "   ")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LLM.SystemPrompt != DefaultSystemPrompt {
		t.Fatalf("expected default persona, got %q", cfg.LLM.SystemPrompt)
	}
}

// --- helpers ---

func TestAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", ":9000": ":9000", " 7000 ": ":7000"}
	for in, want := range cases {
		if got := (Config{Port: in}).Addr(); got != want {
			t.Fatalf("Addr(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestCompact(t *testing.T) {
	if out := compact(nil); out != nil {
		t.Fatalf("compact(nil) should return nil")
	}
	if out := compact([]string{" ", ""}); out != nil {
		t.Fatalf("compact(blanks) should return nil, got %#v", out)
	}
	want := []string{"a", "b", "c"}
	if got := compact([]string{" a", " ", "b ", "  c  "}); !reflect.DeepEqual(got, want) {
		t.Fatalf("compact mismatch: got %#v want %#v", got, want)
	}
}

// Ensure tests don't inherit deployment env.
func TestMain(m *testing.M) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "DB_PATH", "LOGS_LIMIT", "LLM_PROVIDER", "OPENAI_MODEL",
		"SYSTEM_PROMPT", "OTEL_ENABLED", "CORS_ALLOWED_ORIGINS", "GIN_MODE",
	} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
