package model

import (
	"time"

	"github.com/osint-lab/casetrail/pkg/domain/types"
)

const (
	// MaxFindingsPerCase bounds the findings list. Insertion past the cap
	// evicts the single oldest finding.
	MaxFindingsPerCase = 500

	// MaxTimelineEvents bounds the activity log. The list is trimmed to the
	// trailing window when it grows past the cap.
	MaxTimelineEvents = 200

	// DefaultCaseName is used when a case is created with an empty name
	DefaultCaseName = "Untitled Investigation"

	// DefaultFindingTitle is used when a finding is added without a title
	DefaultFindingTitle = "Untitled Finding"
)

// Case is the aggregate root of one investigation: captured searches,
// findings, notes, per-tool review statuses and the derived activity
// timeline. All mutation goes through the methods below, which keep the
// sub-collections bounded and refresh UpdatedAt.
type Case struct {
	ID          types.CaseID     `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags"`
	Status      types.CaseStatus `json:"status"`
	Priority    types.Priority   `json:"priority"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	Searches     []SearchSnapshot              `json:"searches"`
	Findings     []Finding                     `json:"findings"`
	ToolStatuses map[string]types.ToolStatus   `json:"toolStatuses"`
	Notes        []Note                        `json:"notes"`
	Timeline     []TimelineEvent               `json:"timeline"`
	Metadata     Metadata                      `json:"metadata"`
}

// Metadata describes the investigation target and assignment
type Metadata struct {
	// Subject holds free-form key→value attributes of the investigation
	// target (name, email, aliases, ...). Treated as PII by the logging
	// layer.
	Subject  map[string]string `json:"subject"`
	Assignee string            `json:"assignee,omitempty"`
	DueDate  *time.Time        `json:"dueDate,omitempty"`
}

// New constructs a case with the documented defaults and the initial
// "created" timeline event.
func New(id types.CaseID, name string, now time.Time) *Case {
	if name == "" {
		name = DefaultCaseName
	}
	return &Case{
		ID:           id,
		Name:         name,
		Tags:         []string{},
		Status:       types.CaseStatusActive,
		Priority:     types.PriorityMedium,
		CreatedAt:    now,
		UpdatedAt:    now,
		Searches:     []SearchSnapshot{},
		Findings:     []Finding{},
		ToolStatuses: map[string]types.ToolStatus{},
		Notes:        []Note{},
		Timeline: []TimelineEvent{
			{Type: types.EventCreated, Timestamp: now, Description: "Case created"},
		},
		Metadata: Metadata{Subject: map[string]string{}},
	}
}

// AppendEvent records a timeline event and trims the log to the trailing
// window. It does not refresh UpdatedAt; the mutation that produced the
// event does.
func (c *Case) AppendEvent(eventType types.EventType, description string, now time.Time) {
	c.Timeline = append(c.Timeline, TimelineEvent{
		Type:        eventType,
		Timestamp:   now,
		Description: description,
	})
	c.Timeline = keepLast(c.Timeline, MaxTimelineEvents)
}

// AppendSearch appends a captured search snapshot and records its timeline
// event. Searches are append-only: there is no update or delete operation.
func (c *Case) AppendSearch(snap SearchSnapshot, now time.Time) {
	c.Searches = append(c.Searches, snap)
	c.AppendEvent(types.EventSearch, "Captured search: "+snap.Summary(), now)
	c.UpdatedAt = now
}

// AddFinding appends a finding, evicting the oldest one if the cap is
// exceeded, and records a timeline event citing the finding's title.
func (c *Case) AddFinding(f Finding, now time.Time) {
	c.Findings = append(c.Findings, f)
	c.Findings = evictOldest(c.Findings, MaxFindingsPerCase)
	c.AppendEvent(types.EventFinding, "Finding added: "+f.Title, now)
	c.UpdatedAt = now
}

// UpdateFinding shallow-merges non-zero patch fields into the finding and
// stamps the finding's own UpdatedAt. No timeline event is recorded.
// Returns false if the finding does not exist.
func (c *Case) UpdateFinding(id types.FindingID, patch FindingPatch, now time.Time) (*Finding, bool) {
	for i := range c.Findings {
		if c.Findings[i].ID != id {
			continue
		}
		c.Findings[i].apply(patch)
		c.Findings[i].UpdatedAt = &now
		c.UpdatedAt = now
		return &c.Findings[i], true
	}
	return nil, false
}

// DeleteFinding removes a finding. Deliberately records no timeline event,
// mirroring the asymmetry with AddFinding in the original design.
func (c *Case) DeleteFinding(id types.FindingID, now time.Time) bool {
	for i := range c.Findings {
		if c.Findings[i].ID == id {
			c.Findings = append(c.Findings[:i], c.Findings[i+1:]...)
			c.UpdatedAt = now
			return true
		}
	}
	return false
}

// AddNote appends a note and records a timeline event
func (c *Case) AddNote(n Note, now time.Time) {
	c.Notes = append(c.Notes, n)
	c.AppendEvent(types.EventNote, "Note added", now)
	c.UpdatedAt = now
}

// DeleteNote removes a note. Like DeleteFinding, no timeline event.
func (c *Case) DeleteNote(id types.NoteID, now time.Time) bool {
	for i := range c.Notes {
		if c.Notes[i].ID == id {
			c.Notes = append(c.Notes[:i], c.Notes[i+1:]...)
			c.UpdatedAt = now
			return true
		}
	}
	return false
}

// SetToolStatus records the review status of one tool. Invalid statuses are
// rejected without mutating anything; valid ones record a timeline event
// with the status's display label.
func (c *Case) SetToolStatus(toolID types.ToolID, status types.ToolStatus, now time.Time) bool {
	if !status.IsValid() {
		return false
	}
	if c.ToolStatuses == nil {
		c.ToolStatuses = map[string]types.ToolStatus{}
	}
	c.ToolStatuses[toolID.String()] = status
	c.AppendEvent(types.EventStatus, "Tool "+toolID.String()+" marked as "+status.Label(), now)
	c.UpdatedAt = now
	return true
}

// FindingByID returns the finding with the given id, or nil
func (c *Case) FindingByID(id types.FindingID) *Finding {
	for i := range c.Findings {
		if c.Findings[i].ID == id {
			return &c.Findings[i]
		}
	}
	return nil
}

// ToolStatusCounts tallies tool statuses per status value
func (c *Case) ToolStatusCounts() map[types.ToolStatus]int {
	counts := make(map[types.ToolStatus]int, len(types.AllToolStatuses()))
	for _, s := range c.ToolStatuses {
		counts[s]++
	}
	return counts
}

// ReviewedToolCount returns the number of tools with any status other than
// unchecked
func (c *Case) ReviewedToolCount() int {
	n := 0
	for _, s := range c.ToolStatuses {
		if s != types.ToolStatusUnchecked {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the case. Repositories hand out clones so
// callers never share memory with stored state.
func (c *Case) Clone() *Case {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Tags = append([]string(nil), c.Tags...)

	clone.Searches = make([]SearchSnapshot, len(c.Searches))
	for i, s := range c.Searches {
		clone.Searches[i] = s.clone()
	}

	clone.Findings = make([]Finding, len(c.Findings))
	for i, f := range c.Findings {
		clone.Findings[i] = f.clone()
	}

	if c.ToolStatuses != nil {
		clone.ToolStatuses = make(map[string]types.ToolStatus, len(c.ToolStatuses))
		for k, v := range c.ToolStatuses {
			clone.ToolStatuses[k] = v
		}
	}

	clone.Notes = append([]Note(nil), c.Notes...)
	clone.Timeline = append([]TimelineEvent(nil), c.Timeline...)

	if c.Metadata.Subject != nil {
		clone.Metadata.Subject = make(map[string]string, len(c.Metadata.Subject))
		for k, v := range c.Metadata.Subject {
			clone.Metadata.Subject[k] = v
		}
	}
	if c.Metadata.DueDate != nil {
		due := *c.Metadata.DueDate
		clone.Metadata.DueDate = &due
	}

	return &clone
}
