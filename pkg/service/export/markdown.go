package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// Markdown renders the case as a sectioned report: header, description,
// tags, subject, findings grouped by importance (critical first), search
// history (summaries only, not the full link lists), notes, and a
// tool-status tally.
func Markdown(c *model.Case, now time.Time) *Product {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", c.Name)
	fmt.Fprintf(&b, "**Status:** %s | **Priority:** %s\n", c.Status, c.Priority)
	fmt.Fprintf(&b, "**Created:** %s | **Updated:** %s\n", formatTime(c.CreatedAt), formatTime(c.UpdatedAt))

	if c.Description != "" {
		fmt.Fprintf(&b, "\n## Description\n\n%s\n", c.Description)
	}

	if len(c.Tags) > 0 {
		b.WriteString("\n## Tags\n\n")
		for i, tag := range c.Tags {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "`%s`", tag)
		}
		b.WriteByte('\n')
	}

	writeSubject(&b, c.Metadata)
	writeFindings(&b, c.Findings)
	writeSearchHistory(&b, c.Searches)
	writeNotes(&b, c.Notes)
	writeToolTally(&b, c)

	b.WriteString("\n---\n\n*Generated by casetrail*\n")

	return &Product{
		Content:  b.String(),
		Filename: Filename(c, now, "md"),
		MimeType: "text/markdown",
	}
}

func writeSubject(b *strings.Builder, meta model.Metadata) {
	lines := make([]string, 0, len(meta.Subject)+2)
	for _, key := range sortedKeys(meta.Subject) {
		if v := meta.Subject[key]; v != "" {
			lines = append(lines, fmt.Sprintf("- **%s:** %s", key, v))
		}
	}
	if meta.Assignee != "" {
		lines = append(lines, fmt.Sprintf("- **assignee:** %s", meta.Assignee))
	}
	if meta.DueDate != nil {
		lines = append(lines, fmt.Sprintf("- **due:** %s", formatTime(*meta.DueDate)))
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n## Subject\n\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

func writeFindings(b *strings.Builder, findings []model.Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## Findings (%d)\n", len(findings))

	for _, importance := range types.AllImportances() {
		group := make([]model.Finding, 0, len(findings))
		for _, f := range findings {
			if f.Importance == importance {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(b, "\n### %s Priority\n", importance.Label())
		for _, f := range group {
			fmt.Fprintf(b, "\n#### %s\n\n", f.Title)
			fmt.Fprintf(b, "- **Recorded:** %s\n", formatTime(f.Timestamp))
			if f.ToolName != "" {
				if f.Category != "" {
					fmt.Fprintf(b, "- **Tool:** %s (%s)\n", f.ToolName, f.Category)
				} else {
					fmt.Fprintf(b, "- **Tool:** %s\n", f.ToolName)
				}
			}
			if len(f.Tags) > 0 {
				fmt.Fprintf(b, "- **Tags:** %s\n", strings.Join(f.Tags, ", "))
			}
			if f.Content != "" {
				fmt.Fprintf(b, "\n%s\n", f.Content)
			}
			if f.ToolURL != "" {
				fmt.Fprintf(b, "\n[Source](%s)\n", f.ToolURL)
			}
		}
	}
}

func writeSearchHistory(b *strings.Builder, searches []model.SearchSnapshot) {
	if len(searches) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## Search History (%d)\n\n", len(searches))
	for i, s := range searches {
		fmt.Fprintf(b, "%d. **%s** — %s (%d tools)\n", i+1, formatTime(s.Timestamp), s.Summary(), s.ToolCount)
	}
}

func writeNotes(b *strings.Builder, notes []model.Note) {
	if len(notes) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## Notes (%d)\n\n", len(notes))
	for _, n := range notes {
		fmt.Fprintf(b, "- **%s** — %s\n", formatTime(n.Timestamp), n.Content)
	}
}

func writeToolTally(b *strings.Builder, c *model.Case) {
	if len(c.ToolStatuses) == 0 {
		return
	}
	counts := c.ToolStatusCounts()
	b.WriteString("\n## Tool Review Status\n\n")
	for _, status := range types.AllToolStatuses() {
		if n := counts[status]; n > 0 {
			fmt.Fprintf(b, "- %s %s: %d\n", status.Icon(), status.Label(), n)
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Sorted for stable report output; map iteration order is not.
	sort.Strings(keys)
	return keys
}
