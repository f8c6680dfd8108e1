package digest

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"trendwatch/internal/feed"
	"trendwatch/internal/summarize"
)

func section(label string, n int) Section {
	sec := Section{Label: label}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s-proj-%d", label, i)
		sec.Summaries = append(sec.Summaries, summarize.Summary{
			Item: feed.Item{Name: name, URL: "https://example.com/" + name, Popularity: feed.Stars(100 + i)},
			Text: "summary of " + name,
		})
	}
	return sec
}

func TestComposeAllEmpty(t *testing.T) {
	got := Compose([]Section{{Label: "GitHub"}, {Label: "ClawHub"}})
	if got != EmptyMessage {
		t.Errorf("Compose = %q, want fixed empty message", got)
	}
}

func TestComposeSectionsAndCount(t *testing.T) {
	got := Compose([]Section{section("GitHub", 2), {Label: "Quiet"}, section("ClawHub", 1)})

	if !strings.Contains(got, "<b>GitHub</b>") || !strings.Contains(got, "<b>ClawHub</b>") {
		t.Errorf("missing section headings:\n%s", got)
	}
	if strings.Contains(got, "Quiet") {
		t.Errorf("empty section should be skipped:\n%s", got)
	}
	if !strings.Contains(got, "<i>Total: 3 items</i>") {
		t.Errorf("missing total line:\n%s", got)
	}
	if !strings.Contains(got, `<a href="https://example.com/GitHub-proj-0">GitHub-proj-0</a>`) {
		t.Errorf("missing item link:\n%s", got)
	}
	if !strings.Contains(got, "(★100)") {
		t.Errorf("missing star rendering:\n%s", got)
	}
	// Section order follows input order.
	if strings.Index(got, "GitHub") > strings.Index(got, "ClawHub") {
		t.Errorf("section order not preserved:\n%s", got)
	}
}

func TestComposeItemOrderPreserved(t *testing.T) {
	got := Compose([]Section{section("GitHub", 3)})
	i0 := strings.Index(got, "GitHub-proj-0")
	i1 := strings.Index(got, "GitHub-proj-1")
	i2 := strings.Index(got, "GitHub-proj-2")
	if !(i0 < i1 && i1 < i2) {
		t.Errorf("item order not preserved: %d %d %d", i0, i1, i2)
	}
}

func TestComposeTruncation(t *testing.T) {
	// Enough long items to exceed the cap by a wide margin.
	sec := Section{Label: "GitHub"}
	for i := 0; i < 80; i++ {
		sec.Summaries = append(sec.Summaries, summarize.Summary{
			Item: feed.Item{Name: fmt.Sprintf("p%d", i), URL: "https://example.com"},
			Text: strings.Repeat("long summary text ", 10),
		})
	}
	got := Compose([]Section{sec})

	maxLen := MaxRunes + 1 + utf8.RuneCountInString(TruncationMarker)
	if n := utf8.RuneCountInString(got); n > maxLen {
		t.Errorf("rune len = %d, want at most %d (cap + marker)", n, maxLen)
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Errorf("missing truncation marker")
	}

	// The cut lands on a line boundary, so the kept part is whole lines of
	// the untruncated message and every link tag is closed.
	full := joinRender(sec)
	prefix := strings.TrimSuffix(got, "\n"+TruncationMarker)
	if !strings.HasPrefix(full, prefix) {
		t.Error("truncated message is not a prefix of the full message")
	}
	if full[len(prefix)] != '\n' {
		t.Error("cut did not land on a line boundary")
	}
	if strings.Count(prefix, "<a ") != strings.Count(prefix, "</a>") {
		t.Error("truncation left a link tag open")
	}
}

// joinRender rebuilds the untruncated rendering for prefix comparison.
func joinRender(sec Section) string {
	parts := []string{header, "", "📂 <b>GitHub</b>"}
	for _, s := range sec.Summaries {
		parts = append(parts, itemLine(s).String())
	}
	parts = append(parts, "", fmt.Sprintf("<i>Total: %d items</i>", len(sec.Summaries)))
	return strings.Join(parts, "\n")
}

func TestComposeShortMessageNotTruncated(t *testing.T) {
	got := Compose([]Section{section("GitHub", 2)})
	if strings.Contains(got, TruncationMarker) {
		t.Errorf("short message must not carry marker:\n%s", got)
	}
}
