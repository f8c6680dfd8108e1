// Package rss adapts an RSS/Atom feed into a feed.Source.
package rss

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"trendwatch/internal/feed"
	"trendwatch/pkg/logx"
)

type Config struct {
	Label string
	URL   string
	// Tag is an optional qualitative popularity label applied to every entry
	// (RSS carries no ranking signal of its own).
	Tag     string
	Timeout time.Duration
}

type Source struct {
	cfg    Config
	log    logx.Logger
	parser *gofeed.Parser
}

func New(cfg Config, log logx.Logger) *Source {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: cfg.Timeout}
	return &Source{cfg: cfg, log: log, parser: p}
}

func (s *Source) Label() string { return s.cfg.Label }

func (s *Source) Fetch(ctx context.Context, limit int) []feed.Item {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	f, err := s.parser.ParseURLWithContext(s.cfg.URL, ctx)
	if err != nil {
		s.log.Error("rss fetch failed", logx.String("url", s.cfg.URL), logx.Err(err))
		return nil
	}

	n := len(f.Items)
	if limit > 0 && n > limit {
		n = limit
	}
	items := make([]feed.Item, 0, n)
	for _, it := range f.Items[:n] {
		items = append(items, feed.Item{
			Name:        strings.TrimSpace(it.Title),
			URL:         it.Link,
			Description: strings.TrimSpace(it.Description),
			Popularity:  feed.Tag(s.cfg.Tag),
		})
	}
	s.log.Info("rss fetch ok", logx.String("feed", s.cfg.Label), logx.Int("count", len(items)))
	return items
}
