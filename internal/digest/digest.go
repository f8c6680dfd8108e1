// Package digest composes the single outbound report message.
package digest

import (
	"fmt"

	"trendwatch/internal/summarize"
	"trendwatch/pkg/tghtml"
)

// MaxRunes caps the rendered message below Telegram's ~4096 limit, leaving
// margin for the truncation marker.
const MaxRunes = 4000

// TruncationMarker is appended when the assembled message had to be cut.
const TruncationMarker = "… (truncated)"

// EmptyMessage is the fixed report for a day with no notable items.
const EmptyMessage = "🤖 <b>Daily Trend Report</b>\n\nNothing notable today."

const header = "🚀 <b>Daily Trend Report</b> 🚀"

// Section is one source's summaries under its display label. Section and
// item order is preserved exactly as discovered.
type Section struct {
	Label     string
	Summaries []summarize.Summary
}

// Compose renders the digest: a header, one labeled block per non-empty
// section, and a trailing total count. If every section is empty the fixed
// EmptyMessage is returned. Truncation happens once, after full assembly, so
// early higher-priority content survives; the cut lands on a line boundary
// so no item's markup is left open.
func Compose(sections []Section) string {
	total := 0
	for _, sec := range sections {
		total += len(sec.Summaries)
	}
	if total == 0 {
		return EmptyMessage
	}

	parts := []tghtml.H{tghtml.Raw(header), ""}
	for _, sec := range sections {
		if len(sec.Summaries) == 0 {
			continue
		}
		parts = append(parts, "📂 "+tghtml.B(sec.Label))
		for _, s := range sec.Summaries {
			parts = append(parts, itemLine(s))
		}
		parts = append(parts, "")
	}
	parts = append(parts, tghtml.I(fmt.Sprintf("Total: %d items", total)))

	return tghtml.TruncLines(joinLines(parts), MaxRunes, TruncationMarker)
}

func itemLine(s summarize.Summary) tghtml.H {
	line := "🔹 " + tghtml.Link(s.Item.Name, s.Item.URL)
	if !s.Item.Popularity.IsZero() {
		line += " (" + tghtml.Esc(s.Item.Popularity.String()) + ")"
	}
	return line + " - " + tghtml.Esc(s.Text)
}

// joinLines keeps intentional blank separator lines, unlike tghtml.Join.
func joinLines(parts []tghtml.H) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}
		out += p.String()
	}
	return out
}
