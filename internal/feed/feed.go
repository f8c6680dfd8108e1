// Package feed defines the candidate-item data model and the source contract
// shared by all feed clients.
package feed

import (
	"context"
	"strconv"
)

// NoDescription is the sentinel shown for items whose origin carries no
// description text.
const NoDescription = "no description available"

// Popularity is a tagged value: either a numeric star count or a qualitative
// label (e.g. "Official"). The zero value renders as an empty string.
type Popularity struct {
	stars   int
	label   string
	numeric bool
}

// Stars builds a numeric popularity.
func Stars(n int) Popularity { return Popularity{stars: n, numeric: true} }

// Tag builds a qualitative popularity label.
func Tag(s string) Popularity { return Popularity{label: s} }

// IsZero reports whether no popularity information is present.
func (p Popularity) IsZero() bool { return !p.numeric && p.label == "" }

func (p Popularity) String() string {
	if p.numeric {
		return "★" + strconv.Itoa(p.stars)
	}
	return p.label
}

// Item is one discovered project or entry. Immutable; lives for one pipeline
// run only.
type Item struct {
	Name        string
	URL         string
	Description string
	Popularity  Popularity
}

// Desc returns the item's description or the NoDescription sentinel.
func (it Item) Desc() string {
	if it.Description == "" {
		return NoDescription
	}
	return it.Description
}

// Source fetches a bounded list of candidate items for "today".
//
// Fetch is total at its boundary: transport and authentication failures are
// handled internally (logged, degraded to an empty slice) and never surface
// to the caller. Returned order is the source's own relevance ranking and is
// preserved end-to-end.
type Source interface {
	// Label names the source in the digest (e.g. "GitHub").
	Label() string
	Fetch(ctx context.Context, limit int) []Item
}
