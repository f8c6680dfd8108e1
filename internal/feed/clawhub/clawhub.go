// Package clawhub lists trending skills from the ClawHub catalog.
package clawhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"trendwatch/internal/feed"
	"trendwatch/pkg/logx"
)

const defaultBaseURL = "https://clawhub.ai"

type Config struct {
	BaseURL    string
	APIKey     string // optional
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Source struct {
	cfg  Config
	log  logx.Logger
	http *http.Client
}

func New(cfg Config, log logx.Logger) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
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

func (s *Source) Label() string { return "ClawHub" }

type listResponse struct {
	Skills []struct {
		Name        string `json:"name"`
		URL         string `json:"url"`
		Description string `json:"description"`
		// Badge is a qualitative popularity tag ("Official", "Hot", ...).
		Badge string `json:"badge"`
	} `json:"skills"`
}

func (s *Source) Fetch(ctx context.Context, limit int) []feed.Item {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/api/skills/trending?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		s.log.Error("clawhub request build failed", logx.Err(err))
		return nil
	}
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	res, err := s.http.Do(req)
	if err != nil {
		s.log.Error("clawhub fetch failed", logx.Err(err))
		return nil
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		s.log.Error("clawhub fetch failed", logx.Err(err))
		return nil
	}
	if res.StatusCode != http.StatusOK {
		s.log.Error("clawhub fetch failed", logx.Err(fmt.Errorf("want 200, got %d: %s", res.StatusCode, body)))
		return nil
	}

	var lr listResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		s.log.Error("clawhub decode failed", logx.Err(err))
		return nil
	}

	items := make([]feed.Item, 0, len(lr.Skills))
	for _, sk := range lr.Skills {
		items = append(items, feed.Item{
			Name:        sk.Name,
			URL:         sk.URL,
			Description: sk.Description,
			Popularity:  feed.Tag(sk.Badge),
		})
	}
	s.log.Info("clawhub fetch ok", logx.Int("count", len(items)))
	return items
}
