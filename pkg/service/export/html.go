package export

import (
	"html/template"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// HTML renders the case as a self-contained styled document: header with
// status/priority badges, a four-cell summary grid, findings, notes, and a
// footer with the generation timestamp. There is deliberately no search
// history section; Markdown carries that instead.
func HTML(c *model.Case, now time.Time) (*Product, error) {
	data := htmlData{
		Name:        c.Name,
		Description: c.Description,
		Status:      c.Status.String(),
		Priority:    c.Priority.String(),
		Created:     formatTime(c.CreatedAt),
		Updated:     formatTime(c.UpdatedAt),
		SearchCount: len(c.Searches),
		FindingCnt:  len(c.Findings),
		Reviewed:    c.ReviewedToolCount(),
		UsefulCount: c.ToolStatusCounts()[types.ToolStatusUseful],
		GeneratedAt: formatTime(now),
	}

	for _, importance := range types.AllImportances() {
		for _, f := range c.Findings {
			if f.Importance != importance {
				continue
			}
			data.Findings = append(data.Findings, htmlFinding{
				Title:      f.Title,
				Importance: f.Importance.String(),
				Label:      f.Importance.Label(),
				Recorded:   formatTime(f.Timestamp),
				ToolName:   f.ToolName,
				Category:   f.Category,
				ToolURL:    f.ToolURL,
				Content:    f.Content,
			})
		}
	}

	for _, n := range c.Notes {
		data.Notes = append(data.Notes, htmlNote{
			Recorded: formatTime(n.Timestamp),
			Content:  n.Content,
		})
	}

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, data); err != nil {
		return nil, goerr.Wrap(err, "failed to render HTML report", goerr.V("case_id", c.ID))
	}

	return &Product{
		Content:  b.String(),
		Filename: Filename(c, now, "html"),
		MimeType: "text/html",
	}, nil
}

type htmlData struct {
	Name        string
	Description string
	Status      string
	Priority    string
	Created     string
	Updated     string
	SearchCount int
	FindingCnt  int
	Reviewed    int
	UsefulCount int
	Findings    []htmlFinding
	Notes       []htmlNote
	GeneratedAt string
}

type htmlFinding struct {
	Title      string
	Importance string
	Label      string
	Recorded   string
	ToolName   string
	Category   string
	ToolURL    string
	Content    string
}

type htmlNote struct {
	Recorded string
	Content  string
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 0; background: #f5f6f8; color: #1f2430; }
.container { max-width: 860px; margin: 0 auto; padding: 32px 24px; }
header { border-bottom: 2px solid #d8dce3; padding-bottom: 16px; margin-bottom: 24px; }
h1 { margin: 0 0 8px; font-size: 28px; }
.badge { display: inline-block; padding: 2px 10px; border-radius: 10px; font-size: 12px; text-transform: uppercase; letter-spacing: 0.04em; margin-right: 6px; background: #e3e7ee; }
.badge.status { background: #d8e9d8; }
.badge.priority-high, .badge.priority-critical { background: #f3d3d3; }
.meta { color: #5b6472; font-size: 13px; }
.stats { display: grid; grid-template-columns: repeat(4, 1fr); gap: 12px; margin: 24px 0; }
.stat { background: #fff; border: 1px solid #e1e5eb; border-radius: 8px; padding: 16px; text-align: center; }
.stat .num { font-size: 26px; font-weight: 600; }
.stat .label { font-size: 12px; color: #5b6472; text-transform: uppercase; }
section { margin-bottom: 28px; }
h2 { font-size: 18px; border-bottom: 1px solid #e1e5eb; padding-bottom: 6px; }
.finding { background: #fff; border: 1px solid #e1e5eb; border-radius: 8px; padding: 14px 16px; margin-bottom: 12px; }
.finding h3 { margin: 0 0 6px; font-size: 15px; }
.finding .tool { color: #5b6472; font-size: 13px; }
.finding p { margin: 8px 0 0; white-space: pre-wrap; }
.note { border-left: 3px solid #c6ccd6; padding: 4px 12px; margin-bottom: 10px; }
footer { color: #8b92a0; font-size: 12px; border-top: 1px solid #e1e5eb; padding-top: 12px; }
</style>
</head>
<body>
<div class="container">
<header>
<h1>{{.Name}}</h1>
<span class="badge status">{{.Status}}</span><span class="badge priority-{{.Priority}}">{{.Priority}}</span>
<div class="meta">Created {{.Created}} &middot; Updated {{.Updated}}</div>
{{if .Description}}<p>{{.Description}}</p>{{end}}
</header>
<div class="stats">
<div class="stat"><div class="num">{{.SearchCount}}</div><div class="label">Searches</div></div>
<div class="stat"><div class="num">{{.FindingCnt}}</div><div class="label">Findings</div></div>
<div class="stat"><div class="num">{{.Reviewed}}</div><div class="label">Tools Reviewed</div></div>
<div class="stat"><div class="num">{{.UsefulCount}}</div><div class="label">Useful</div></div>
</div>
{{if .Findings}}<section>
<h2>Findings</h2>
{{range .Findings}}<div class="finding">
<h3>{{.Title}} <span class="badge priority-{{.Importance}}">{{.Label}}</span></h3>
<div class="tool">{{.Recorded}}{{if .ToolName}} &middot; {{.ToolName}}{{if .Category}} ({{.Category}}){{end}}{{end}}</div>
{{if .Content}}<p>{{.Content}}</p>{{end}}
{{if .ToolURL}}<p><a href="{{.ToolURL}}">Source</a></p>{{end}}
</div>
{{end}}</section>{{end}}
{{if .Notes}}<section>
<h2>Notes</h2>
{{range .Notes}}<div class="note"><div class="meta">{{.Recorded}}</div><p>{{.Content}}</p></div>
{{end}}</section>{{end}}
<footer>Generated by casetrail at {{.GeneratedAt}}</footer>
</div>
</body>
</html>
`))
