// Package github discovers newly-trending repositories via the GitHub
// search API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trendwatch/internal/feed"
	"trendwatch/pkg/logx"
)

const defaultBaseURL = "https://api.github.com"

type Config struct {
	Token      string
	Keywords   string
	WindowDays int
	Timeout    time.Duration // per-call; default 15s
	BaseURL    string        // override for tests
	HTTPClient *http.Client  // optional
}

// Source is a feed.Source with two-tier query escalation: the primary query
// filters by creation date, the fallback relaxes it to push date. A quiet
// week frequently leaves the primary query empty; a softer query serves the
// "report today's notable items" contract better than an empty report.
type Source struct {
	cfg  Config
	log  logx.Logger
	http *http.Client
}

func New(cfg Config, log logx.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 7
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Source{cfg: cfg, log: log, http: hc}
}

func (s *Source) Label() string { return "GitHub" }

// errQueryRejected marks a client-side query rejection (HTTP 422), which
// triggers the fallback query rather than degrading to empty.
var errQueryRejected = errors.New("query rejected")

func (s *Source) Fetch(ctx context.Context, limit int) []feed.Item {
	if s.cfg.Token == "" {
		s.log.Warn("github token not configured; skipping source")
		return nil
	}

	since := time.Now().AddDate(0, 0, -s.cfg.WindowDays).Format("2006-01-02")
	primary := fmt.Sprintf("%s created:>%s", s.cfg.Keywords, since)

	items, err := s.search(ctx, primary, limit)
	switch {
	case errors.Is(err, errQueryRejected):
		s.log.Warn("primary query rejected, escalating", logx.String("query", primary), logx.Err(err))
	case err != nil:
		s.log.Error("github search failed", logx.String("query", primary), logx.Err(err))
		return nil
	case len(items) == 0:
		s.log.Info("primary query empty, escalating to recently-pushed", logx.String("query", primary))
	default:
		s.log.Info("github search ok", logx.Int("count", len(items)))
		return items
	}

	// Terminal tier: same keywords, relaxed time filter. Whatever this
	// yields (possibly nothing) is the answer.
	fallback := fmt.Sprintf("%s pushed:>%s", s.cfg.Keywords, since)
	items, err = s.search(ctx, fallback, limit)
	if err != nil {
		s.log.Error("fallback search failed", logx.String("query", fallback), logx.Err(err))
		return nil
	}
	s.log.Info("github search ok (fallback)", logx.Int("count", len(items)))
	return items
}

type searchResponse struct {
	Items []struct {
		Name        string `json:"name"`
		HTMLURL     string `json:"html_url"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
	} `json:"items"`
}

func (s *Source) search(ctx context.Context, query string, limit int) ([]feed.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", query)
	q.Set("sort", "stars")
	q.Set("order", "desc")
	q.Set("per_page", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/search/repositories?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+s.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	res, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusUnprocessableEntity {
		return nil, fmt.Errorf("%w: %s", errQueryRejected, body)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github search: want 200, got %d: %s", res.StatusCode, body)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("github search: decode: %w", err)
	}

	items := make([]feed.Item, 0, len(sr.Items))
	for _, r := range sr.Items {
		items = append(items, feed.Item{
			Name:        r.Name,
			URL:         r.HTMLURL,
			Description: r.Description,
			Popularity:  feed.Stars(r.Stars),
		})
	}
	return items, nil
}
