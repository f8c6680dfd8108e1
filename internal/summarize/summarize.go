// Package summarize turns candidate items into display-ready summaries.
package summarize

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"trendwatch/internal/feed"
	"trendwatch/pkg/logx"
)

// DefaultInstruction is the fixed prompt prefix when config does not
// override the language/length constraint.
const DefaultInstruction = "Summarize this project in one short sentence of at most 30 words."

// Summary is one item plus its generated text. One Summary per item, never
// dropped: generation failure degrades Text to the item's own description.
type Summary struct {
	Item feed.Item
	Text string
}

// Backend is the generation boundary. Implementations carry their own
// credentials, model and instruction text.
type Backend interface {
	Generate(ctx context.Context, name, description string) (string, error)
}

type Config struct {
	Timeout    time.Duration // per-call; default 10s
	RatePerSec int           // backend call pacing; default 2
}

// Service maps item lists to summary lists, one-to-one and order-preserving.
// Summarize is total: it never fails the caller.
type Service struct {
	cfg     Config
	backend Backend // nil means identity fallback (no credential configured)
	log     logx.Logger
	limiter *rate.Limiter
}

func New(cfg Config, backend Backend, log logx.Logger) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 2
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{
		cfg:     cfg,
		backend: backend,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec),
	}
}

// Summarize returns one Summary per input item, in input order. Items are
// processed independently; a failed generation falls back to that one item's
// description and never aborts the batch.
func (s *Service) Summarize(ctx context.Context, items []feed.Item) []Summary {
	if len(items) == 0 {
		return nil
	}
	out := make([]Summary, 0, len(items))
	for _, it := range items {
		out = append(out, Summary{Item: it, Text: s.textFor(ctx, it)})
	}
	return out
}

func (s *Service) textFor(ctx context.Context, it feed.Item) string {
	if s.backend == nil {
		return it.Desc()
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return it.Desc()
	}

	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.backend.Generate(cctx, it.Name, it.Desc())
	if err != nil {
		s.log.Warn("summary generation failed, using description", logx.String("item", it.Name), logx.Err(err))
		return it.Desc()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return it.Desc()
	}
	s.log.Debug("summary generated", logx.String("item", it.Name))
	return text
}
