package telegram

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"trendwatch/internal/digest"
	"trendwatch/internal/feed"
	"trendwatch/internal/summarize"
	"trendwatch/pkg/logx"
)

func TestSplitTextShort(t *testing.T) {
	got := splitText("hello", 10)
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("splitText = %v", got)
	}
}

func TestSplitTextPrefersNewlines(t *testing.T) {
	lines := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		lines = append(lines, strings.Repeat("x", 9))
	}
	s := strings.Join(lines, "\n")

	got := splitText(s, 100)
	if len(got) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(got))
	}
	for i, c := range got {
		if utf8.RuneCountInString(c) > 100 {
			t.Errorf("chunk %d over limit: %d runes", i, utf8.RuneCountInString(c))
		}
		if strings.HasPrefix(c, "\n") || strings.HasSuffix(c, "\n") {
			t.Errorf("chunk %d has dangling newline: %q", i, c)
		}
	}
	if got[0] != strings.Join(lines[:10], "\n") {
		t.Errorf("first chunk not cut on newline boundary: %q", got[0])
	}
}

func TestSplitTextHardCutWithoutNewlines(t *testing.T) {
	s := strings.Repeat("a", 250)
	got := splitText(s, 100)
	if len(got) != 3 {
		t.Fatalf("chunks = %d, want 3", len(got))
	}
	if got[0] != strings.Repeat("a", 100) || got[2] != strings.Repeat("a", 50) {
		t.Errorf("unexpected chunking: lens %d %d %d", len(got[0]), len(got[1]), len(got[2]))
	}
}

// A digest that hit the composition cap (cap + marker runes) must still go
// out as a single message.
func TestSplitTextKeepsTruncatedDigestWhole(t *testing.T) {
	sec := digest.Section{Label: "GitHub"}
	for i := 0; i < 80; i++ {
		sec.Summaries = append(sec.Summaries, summarize.Summary{
			Item: feed.Item{Name: fmt.Sprintf("p%d", i), URL: "https://example.com"},
			Text: strings.Repeat("long summary text ", 10),
		})
	}
	msg := digest.Compose([]digest.Section{sec})
	if !strings.HasSuffix(msg, digest.TruncationMarker) {
		t.Fatal("digest under cap, truncation not exercised")
	}

	if got := splitText(msg, telegramTextLimit); len(got) != 1 {
		t.Errorf("truncated digest split into %d messages, want 1", len(got))
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(Config{}, logx.Nop()); err == nil {
		t.Error("want error for empty token")
	}
}
