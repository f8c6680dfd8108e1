// Package tghtml builds message text for Telegram's HTML parse mode.
package tghtml

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"
)

// H represents HTML that is safe to pass to Telegram when ParseMode="HTML".
// Values of type H should be treated as already-escaped.
type H string

func (h H) String() string { return string(h) }

// Esc escapes text for Telegram HTML parse mode.
func Esc(s string) H { return H(html.EscapeString(s)) }

// Raw marks a string as already-safe HTML. Use sparingly.
func Raw(s string) H { return H(s) }

func wrap(tag string, inner H) H { return H("<" + tag + ">" + inner.String() + "</" + tag + ">") }

func B(s string) H { return wrap("b", Esc(s)) }
func I(s string) H { return wrap("i", Esc(s)) }

// Link builds an HTML link.
func Link(text, url string) H {
	// Escape attribute; html.EscapeString also escapes quotes.
	return H(fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(url), html.EscapeString(text)))
}

// Join joins safe HTML parts with sep, skipping blank parts.
func Join(sep string, parts ...H) H {
	ss := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p.String()) == "" {
			continue
		}
		ss = append(ss, p.String())
	}
	return H(strings.Join(ss, sep))
}

// TruncRunes returns s truncated to at most n runes, appending marker when a
// cut was made. Messages already within the limit are returned unchanged.
func TruncRunes(s string, n int, marker string) string {
	if n <= 0 {
		return marker
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return s[:runeOffset(s, n)] + marker
}

// TruncLines truncates like TruncRunes but moves the cut back to the last
// line break inside the window, so a line's markup is never split open. Falls
// back to the hard cut when the window holds no line break.
func TruncLines(s string, n int, marker string) string {
	if n <= 0 {
		return marker
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := runeOffset(s, n)
	if i := strings.LastIndexByte(s[:cut], '\n'); i > 0 {
		return s[:i] + "\n" + marker
	}
	return s[:cut] + marker
}

// runeOffset returns the byte offset of the n-th rune of s, or len(s) when s
// has fewer runes.
func runeOffset(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}
