// Package app wires configuration into components and owns the pipeline:
// fetch -> summarize -> compose -> deliver, with failure escalation.
package app

import (
	"fmt"

	"trendwatch/internal/config"
	"trendwatch/internal/feed"
	"trendwatch/internal/feed/clawhub"
	"trendwatch/internal/feed/github"
	"trendwatch/internal/feed/rss"
	"trendwatch/internal/notify"
	"trendwatch/internal/summarize"
	kit "trendwatch/internal/transport"
	"trendwatch/internal/transport/telegram"
	"trendwatch/pkg/logx"
)

type App struct {
	log        logx.Logger
	sources    []feed.Source
	summarizer *summarize.Service
	delivery   *notify.Delivery
	alerter    *notify.Alerter
	limit      int
}

func New(cfg *config.Config, log logx.Logger) (*App, error) {
	adapter, err := buildAdapter(cfg, log)
	if err != nil {
		return nil, err
	}
	backend, err := buildBackend(cfg, log)
	if err != nil {
		return nil, err
	}
	sources, err := buildSources(cfg, log)
	if err != nil {
		return nil, err
	}

	sumTimeout, err := config.ParseDurationField("summarizer.timeout", cfg.Summarizer.Timeout)
	if err != nil {
		return nil, err
	}
	summarizer := summarize.New(summarize.Config{
		Timeout:    sumTimeout,
		RatePerSec: cfg.Summarizer.RatePerSec,
	}, backend, log.With(logx.String("comp", "summarize")))

	return &App{
		log:        log.With(logx.String("comp", "pipeline")),
		sources:    sources,
		summarizer: summarizer,
		delivery: notify.NewDelivery(adapter, kit.ChatTarget{ChatID: cfg.Telegram.ChatID},
			log.With(logx.String("comp", "delivery"))),
		alerter: notify.NewAlerter(adapter, kit.ChatTarget{ChatID: cfg.Telegram.AlertChatID},
			log.With(logx.String("comp", "alert"))),
		limit: cfg.Sources.Limit,
	}, nil
}

func buildAdapter(cfg *config.Config, log logx.Logger) (kit.Adapter, error) {
	if cfg.Telegram.Token == "" {
		// Delivery fails closed; the pipeline still runs so the failure is
		// visible in logs on every invocation.
		log.Warn("telegram token not configured; delivery will fail closed")
		return nil, nil
	}
	sendTimeout, err := config.ParseDurationField("telegram.send_timeout", cfg.Telegram.SendTimeout)
	if err != nil {
		return nil, err
	}
	return telegram.New(telegram.Config{
		Token:       cfg.Telegram.Token,
		SendTimeout: sendTimeout,
	}, log.With(logx.String("comp", "telegram")))
}

func buildBackend(cfg *config.Config, log logx.Logger) (summarize.Backend, error) {
	if cfg.Summarizer.APIKey == "" {
		log.Warn("no generation credential configured; summaries fall back to item descriptions")
		return nil, nil
	}
	switch cfg.Summarizer.Provider {
	case "gemini":
		return summarize.NewGemini(summarize.GeminiConfig{
			APIKey:      cfg.Summarizer.APIKey,
			Model:       cfg.Summarizer.Model,
			Instruction: cfg.Summarizer.Instruction,
		})
	default:
		return summarize.NewOpenAI(summarize.OpenAIConfig{
			APIKey:      cfg.Summarizer.APIKey,
			Model:       cfg.Summarizer.Model,
			Instruction: cfg.Summarizer.Instruction,
		})
	}
}

func buildSources(cfg *config.Config, log logx.Logger) ([]feed.Source, error) {
	ghTimeout, err := config.ParseDurationField("sources.github.timeout", cfg.Sources.GitHub.Timeout)
	if err != nil {
		return nil, err
	}
	chTimeout, err := config.ParseDurationField("sources.clawhub.timeout", cfg.Sources.ClawHub.Timeout)
	if err != nil {
		return nil, err
	}

	sources := []feed.Source{
		github.New(github.Config{
			Token:      cfg.Sources.GitHub.Token,
			Keywords:   cfg.Sources.GitHub.Keywords,
			WindowDays: cfg.Sources.GitHub.WindowDays,
			Timeout:    ghTimeout,
		}, log.With(logx.String("comp", "feed.github"))),
		clawhub.New(clawhub.Config{
			BaseURL: cfg.Sources.ClawHub.BaseURL,
			APIKey:  cfg.Sources.ClawHub.APIKey,
			Timeout: chTimeout,
		}, log.With(logx.String("comp", "feed.clawhub"))),
	}

	for i, rc := range cfg.Sources.RSS {
		timeout, err := config.ParseDurationField(fmt.Sprintf("sources.rss[%d].timeout", i), rc.Timeout)
		if err != nil {
			return nil, err
		}
		sources = append(sources, rss.New(rss.Config{
			Label:   rc.Label,
			URL:     rc.URL,
			Tag:     rc.Tag,
			Timeout: timeout,
		}, log.With(logx.String("comp", "feed.rss"), logx.String("feed", rc.Label))))
	}
	return sources, nil
}
