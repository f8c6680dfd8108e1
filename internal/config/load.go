package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override file values. Credentials are usually
// injected this way on container platforms; the file covers the rest.
const (
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvTelegramToken = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChat  = "TELEGRAM_CHAT_ID"
	EnvScheduleTime  = "SCHEDULE_TIME"
)

// Load reads the config file at path (JSON or YAML, strict: unknown keys are
// rejected), applies defaults and environment overrides, and validates the
// result. An empty path skips the file and builds the config from defaults
// and environment alone.
func Load(path string) (*Config, error) {
	return loadWith(path, os.Getenv)
}

func loadWith(path string, getenv func(string) string) (*Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		jb, format, err := coerceToJSONBytes(path, data)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s (%s): %w", path, format, err)
		}
		dec := json.NewDecoder(bytes.NewReader(jb))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s (%s): %w", path, format, err)
		}
	}

	if err := applyEnv(cfg, getenv); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Console: true},
	}
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvGitHubToken)); v != "" {
		cfg.Sources.GitHub.Token = v
	}
	if v := strings.TrimSpace(getenv(EnvTelegramToken)); v != "" {
		cfg.Telegram.Token = v
	}
	if v := strings.TrimSpace(getenv(EnvTelegramChat)); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: invalid chat id %q: %w", EnvTelegramChat, v, err)
		}
		cfg.Telegram.ChatID = id
	}
	if v := strings.TrimSpace(getenv(EnvScheduleTime)); v != "" {
		cfg.Scheduler.Time = v
	}

	// Provider-specific generation key; OPENAI_API_KEY wins for the default
	// provider, GEMINI_API_KEY for gemini.
	switch strings.ToLower(strings.TrimSpace(cfg.Summarizer.Provider)) {
	case "", "openai":
		if v := strings.TrimSpace(getenv(EnvOpenAIKey)); v != "" {
			cfg.Summarizer.APIKey = v
		}
	case "gemini":
		if v := strings.TrimSpace(getenv(EnvGeminiKey)); v != "" {
			cfg.Summarizer.APIKey = v
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Scheduler.Time == "" {
		cfg.Scheduler.Time = "05:00"
	}
	if cfg.Scheduler.Timezone == "" {
		cfg.Scheduler.Timezone = "UTC"
	}
	if cfg.Sources.Limit <= 0 {
		cfg.Sources.Limit = 10
	}
	if cfg.Sources.GitHub.Keywords == "" {
		cfg.Sources.GitHub.Keywords = "AI LLM video workflow"
	}
	if cfg.Sources.GitHub.WindowDays <= 0 {
		cfg.Sources.GitHub.WindowDays = 7
	}
	// Normalized once here; everything downstream (validation, backend
	// selection) matches the provider exactly.
	cfg.Summarizer.Provider = strings.ToLower(strings.TrimSpace(cfg.Summarizer.Provider))
	if cfg.Summarizer.Provider == "" {
		cfg.Summarizer.Provider = "openai"
	}
	if cfg.Summarizer.RatePerSec <= 0 {
		cfg.Summarizer.RatePerSec = 2
	}
	if cfg.Telegram.AlertChatID == 0 {
		cfg.Telegram.AlertChatID = cfg.Telegram.ChatID
	}
}

func validate(cfg *Config) error {
	if err := checkTimeOfDay(cfg.Scheduler.Time); err != nil {
		return fmt.Errorf("config: scheduler.time: %w", err)
	}
	switch cfg.Summarizer.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("config: summarizer.provider: unknown provider %q", cfg.Summarizer.Provider)
	}
	for _, f := range []struct{ path, raw string }{
		{"telegram.send_timeout", cfg.Telegram.SendTimeout},
		{"scheduler.poll_interval", cfg.Scheduler.PollInterval},
		{"scheduler.liveness_interval", cfg.Scheduler.LivenessInterval},
		{"sources.github.timeout", cfg.Sources.GitHub.Timeout},
		{"sources.clawhub.timeout", cfg.Sources.ClawHub.Timeout},
		{"summarizer.timeout", cfg.Summarizer.Timeout},
	} {
		if _, err := ParseDurationField(f.path, f.raw); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	for i, r := range cfg.Sources.RSS {
		if strings.TrimSpace(r.URL) == "" {
			return fmt.Errorf("config: sources.rss[%d]: url is required", i)
		}
		if strings.TrimSpace(r.Label) == "" {
			return fmt.Errorf("config: sources.rss[%d]: label is required", i)
		}
		if _, err := ParseDurationField(fmt.Sprintf("sources.rss[%d].timeout", i), r.Timeout); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

func checkTimeOfDay(s string) error {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return fmt.Errorf("invalid minute in %q", s)
	}
	return nil
}
