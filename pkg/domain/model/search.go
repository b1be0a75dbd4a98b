package model

import (
	"strings"
	"time"

	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// ToolLink is a frozen projection of one tool database entry at capture
// time: not a live reference, so later tool database edits never rewrite
// history.
type ToolLink struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Badge    string `json:"badge"`
	Category string `json:"category"`
}

// SearchSnapshot is a frozen record of one search: the identity-attribute
// values entered and the tool links generated from them.
type SearchSnapshot struct {
	ID        types.SearchID    `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Values    map[string]string `json:"values"`
	ToolCount int               `json:"toolCount"`
	Links     []ToolLink        `json:"links"`
}

// NewSearchSnapshot freezes the given values and links into a snapshot.
// Both are copied; the caller's slices and maps stay untouched.
func NewSearchSnapshot(id types.SearchID, values map[string]string, links []ToolLink, now time.Time) SearchSnapshot {
	frozenValues := make(map[string]string, len(values))
	for k, v := range values {
		frozenValues[k] = v
	}
	frozenLinks := make([]ToolLink, len(links))
	copy(frozenLinks, links)

	return SearchSnapshot{
		ID:        id,
		Timestamp: now,
		Values:    frozenValues,
		ToolCount: len(links),
		Links:     frozenLinks,
	}
}

// summaryFields is the fixed order in which identity attributes contribute
// to a search summary.
var summaryFields = []string{"first", "last", "username", "email", "domain", "phone", "ip"}

// Summary joins the non-empty identity values in a fixed field order,
// comma-separated. Used for timeline events and report search history.
func (s SearchSnapshot) Summary() string {
	parts := make([]string, 0, len(summaryFields))
	for _, field := range summaryFields {
		if v := s.Values[field]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "(no values)"
	}
	return strings.Join(parts, ", ")
}

func (s SearchSnapshot) clone() SearchSnapshot {
	c := s
	c.Values = make(map[string]string, len(s.Values))
	for k, v := range s.Values {
		c.Values[k] = v
	}
	c.Links = append([]ToolLink(nil), s.Links...)
	return c
}
