package bootstrap

import (
	"io"
	"log/slog"
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_ADDR", "CORS_ORIGINS", "LOG_LEVEL", "DATABASE_DSN",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "SUMMARY_CACHE_TTL", "ANALYTICS_TIMEZONE",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}

	cfg := LoadConfig()

	if cfg.ServerAddr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.ServerAddr)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("expected wildcard CORS, got %v", cfg.CORSOrigins)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 0 {
		t.Errorf("unexpected redis config: %q db %d", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.SummaryCacheTTL != 30*time.Second {
		t.Errorf("expected 30s TTL, got %v", cfg.SummaryCacheTTL)
	}
	if cfg.AnalyticsTimezone != "UTC" {
		t.Errorf("expected UTC, got %q", cfg.AnalyticsTimezone)
	}
	if cfg.RedisTimeout != 500*time.Millisecond {
		t.Errorf("expected 500ms redis timeout, got %v", cfg.RedisTimeout)
	}
	if !cfg.CacheEnabled() {
		t.Error("expected summary cache enabled by default")
	}
	if cfg.Persistent() {
		t.Error("expected non-persistent config without DATABASE_DSN")
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DATABASE_DSN", "postgres://localhost/chat")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SUMMARY_CACHE_TTL", "0s")
	t.Setenv("ANALYTICS_TIMEZONE", "Europe/Paris")

	cfg := LoadConfig()

	if cfg.ServerAddr != ":9090" {
		t.Errorf("expected :9090, got %q", cfg.ServerAddr)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.CORSOrigins)
	}
	if !cfg.Persistent() {
		t.Error("expected persistent config with DATABASE_DSN")
	}
	if cfg.RedisDB != 2 {
		t.Errorf("expected redis db 2, got %d", cfg.RedisDB)
	}
	if cfg.SummaryCacheTTL != 0 {
		t.Errorf("expected caching disabled, got %v", cfg.SummaryCacheTTL)
	}
	if cfg.AnalyticsTimezone != "Europe/Paris" {
		t.Errorf("expected Europe/Paris, got %q", cfg.AnalyticsTimezone)
	}
}

func TestLoadConfig_EmptyRedisAddrDisablesCache(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("SUMMARY_CACHE_TTL", "")

	cfg := LoadConfig()

	if cfg.RedisAddr != "" {
		t.Errorf("expected empty redis address, got %q", cfg.RedisAddr)
	}
	if cfg.CacheEnabled() {
		t.Error("expected summary cache disabled")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if client := ProvideRedisClient(cfg, logger); client != nil {
		t.Error("expected no redis client when REDIS_ADDR is empty")
	}
}

func TestProvideRedisClient_Timeouts(t *testing.T) {
	cfg := &Config{RedisAddr: "localhost:6379", RedisTimeout: 200 * time.Millisecond}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := ProvideRedisClient(cfg, logger)
	if client == nil {
		t.Fatal("expected a redis client")
	}
	defer client.Close()

	opts := client.Options()
	if opts.DialTimeout != 200*time.Millisecond || opts.ReadTimeout != 200*time.Millisecond || opts.WriteTimeout != 200*time.Millisecond {
		t.Errorf("unexpected timeouts: dial %v read %v write %v", opts.DialTimeout, opts.ReadTimeout, opts.WriteTimeout)
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	if got := getEnvInt("TEST_INT", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}
}

func TestGetEnvDuration_Invalid(t *testing.T) {
	tests := []string{"soon", "-5s"}
	for _, value := range tests {
		t.Setenv("TEST_DURATION", value)
		if got := getEnvDuration("TEST_DURATION", time.Minute); got != time.Minute {
			t.Errorf("%q: expected default, got %v", value, got)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := parseLogLevel(input); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestProvideAnalyticsOptions(t *testing.T) {
	opts, err := ProvideAnalyticsOptions(&Config{AnalyticsTimezone: "America/New_York"})
	if err != nil {
		t.Fatalf("ProvideAnalyticsOptions() error = %v", err)
	}
	if opts.Location.String() != "America/New_York" {
		t.Errorf("expected America/New_York, got %s", opts.Location)
	}

	if _, err := ProvideAnalyticsOptions(&Config{AnalyticsTimezone: "Mars/Olympus"}); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig([]string{"https://widget.example"})
	if !reflect.DeepEqual(cfg.AllowOrigins, []string{"https://widget.example"}) {
		t.Errorf("unexpected origins: %v", cfg.AllowOrigins)
	}
}
