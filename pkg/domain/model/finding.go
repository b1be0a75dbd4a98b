package model

import (
	"time"

	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// Finding is a discrete piece of discovered information. Provenance fields
// are optional: findings may be authored by hand with no originating tool.
type Finding struct {
	ID        types.FindingID `json:"id"`
	Timestamp time.Time       `json:"timestamp"`

	ToolID   string `json:"toolId,omitempty"`
	ToolName string `json:"toolName,omitempty"`
	ToolURL  string `json:"toolUrl,omitempty"`
	Category string `json:"category,omitempty"`

	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Importance  types.Importance `json:"importance"`
	Tags        []string         `json:"tags"`
	Attachments []string         `json:"attachments"`

	// UpdatedAt is stamped on the finding itself by UpdateFinding, distinct
	// from the parent case's UpdatedAt.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FindingInput carries caller-supplied fields for a new finding
type FindingInput struct {
	ToolID     string
	ToolName   string
	ToolURL    string
	Category   string
	Title      string
	Content    string
	Importance types.Importance
	Tags       []string
}

// NewFinding constructs a finding with the documented defaults
func NewFinding(id types.FindingID, in FindingInput, now time.Time) Finding {
	title := in.Title
	if title == "" {
		title = DefaultFindingTitle
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return Finding{
		ID:          id,
		Timestamp:   now,
		ToolID:      in.ToolID,
		ToolName:    in.ToolName,
		ToolURL:     in.ToolURL,
		Category:    in.Category,
		Title:       title,
		Content:     in.Content,
		Importance:  in.Importance.Normalize(),
		Tags:        tags,
		Attachments: []string{},
	}
}

// FindingPatch carries partial updates for a finding. Nil pointers leave the
// field untouched.
type FindingPatch struct {
	Title      *string
	Content    *string
	Importance *types.Importance
	Tags       []string
}

func (f *Finding) apply(p FindingPatch) {
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Content != nil {
		f.Content = *p.Content
	}
	if p.Importance != nil {
		f.Importance = p.Importance.Normalize()
	}
	if p.Tags != nil {
		f.Tags = append([]string(nil), p.Tags...)
	}
}

func (f Finding) clone() Finding {
	c := f
	c.Tags = append([]string(nil), f.Tags...)
	c.Attachments = append([]string(nil), f.Attachments...)
	if f.UpdatedAt != nil {
		u := *f.UpdatedAt
		c.UpdatedAt = &u
	}
	return c
}
