// Package export projects a case aggregate into the three report formats:
// JSON (the round-trippable backup format), Markdown and standalone HTML.
// All serializers are pure: they read one case and never mutate it.
package export

import (
	"strings"
	"time"

	"github.com/osint-lab/casetrail/pkg/domain/model"
)

// Product is a ready-to-download artifact. The presentation layer decides
// what to do with it (file write, HTTP attachment, clipboard).
type Product struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
}

// Filename combines the slugified case name with the generation time
// truncated to the minute. Colons and dots are filesystem-unsafe and never
// appear in the output.
func Filename(c *model.Case, now time.Time, ext string) string {
	stamp := now.UTC().Format("2006-01-02T15-04")
	return slugify(c.Name) + "-" + stamp + "." + ext
}

// slugify lowercases the name and collapses every non-alphanumeric run
// into a single hyphen.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "case"
	}
	return slug
}

// formatTime renders timestamps for human-readable reports. Stored values
// stay raw; formatting happens at render time only.
func formatTime(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04")
}
