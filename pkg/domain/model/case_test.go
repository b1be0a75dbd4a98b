package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
)

func newTestCase() *model.Case {
	return model.New("case-1", "Test Case", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestNewDefaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	c := model.New("case-1", "", now)
	if c.Name != model.DefaultCaseName {
		t.Errorf("Name = %q, want %q", c.Name, model.DefaultCaseName)
	}
	if c.Status != types.CaseStatusActive {
		t.Errorf("Status = %v, want active", c.Status)
	}
	if c.Priority != types.PriorityMedium {
		t.Errorf("Priority = %v, want medium", c.Priority)
	}
	if !c.CreatedAt.Equal(now) || !c.UpdatedAt.Equal(now) {
		t.Error("timestamps must be set at creation")
	}
	if len(c.Timeline) != 1 || c.Timeline[0].Type != types.EventCreated {
		t.Errorf("expected single created event, got %v", c.Timeline)
	}
}

func TestAddFindingEvictsOldest(t *testing.T) {
	c := newTestCase()
	now := c.CreatedAt

	const extra = 3
	for i := 0; i < model.MaxFindingsPerCase+extra; i++ {
		f := model.NewFinding(types.FindingID(fmt.Sprintf("finding-%d", i)), model.FindingInput{
			Title: fmt.Sprintf("F%d", i),
		}, now)
		c.AddFinding(f, now)
	}

	if len(c.Findings) != model.MaxFindingsPerCase {
		t.Fatalf("findings length = %d, want %d", len(c.Findings), model.MaxFindingsPerCase)
	}
	// The oldest `extra` entries are gone; the retained set starts right after
	// them and ends at the most recent insert.
	if got := c.Findings[0].ID; got != types.FindingID(fmt.Sprintf("finding-%d", extra)) {
		t.Errorf("oldest retained finding = %s, want finding-%d", got, extra)
	}
	last := model.MaxFindingsPerCase + extra - 1
	if got := c.Findings[len(c.Findings)-1].ID; got != types.FindingID(fmt.Sprintf("finding-%d", last)) {
		t.Errorf("newest retained finding = %s, want finding-%d", got, last)
	}
}

func TestTimelineWindow(t *testing.T) {
	c := newTestCase()
	now := c.CreatedAt

	// Mix of mutators; 250 events on top of the created event.
	for i := 0; i < 125; i++ {
		c.AddNote(model.Note{ID: types.NoteID(fmt.Sprintf("note-%d", i)), Timestamp: now, Content: "n"}, now)
		c.SetToolStatus(types.ToolID(fmt.Sprintf("social-%d", i)), types.ToolStatusUseful, now)
	}

	if len(c.Timeline) != model.MaxTimelineEvents {
		t.Fatalf("timeline length = %d, want %d", len(c.Timeline), model.MaxTimelineEvents)
	}
	// The retained window must end with the most recent event.
	lastDesc := c.Timeline[len(c.Timeline)-1].Description
	if lastDesc != "Tool social-124 marked as Useful" {
		t.Errorf("last event = %q, want the final status event", lastDesc)
	}
	// The created event must have been trimmed away.
	for _, ev := range c.Timeline {
		if ev.Type == types.EventCreated {
			t.Error("created event should have been evicted from the window")
		}
	}
}

func TestSetToolStatus(t *testing.T) {
	c := newTestCase()
	now := c.CreatedAt

	if c.SetToolStatus("social-0", types.ToolStatus("bogus-status"), now) {
		t.Error("invalid status must be rejected")
	}
	if len(c.ToolStatuses) != 0 {
		t.Error("rejected status must not mutate the map")
	}
	if len(c.Timeline) != 1 {
		t.Error("rejected status must not record a timeline event")
	}

	if !c.SetToolStatus("social-0", types.ToolStatusUseful, now) {
		t.Fatal("valid status must be accepted")
	}
	if got := c.ToolStatuses["social-0"]; got != types.ToolStatusUseful {
		t.Errorf("ToolStatuses[social-0] = %v, want useful", got)
	}
}

func TestUpdateFinding(t *testing.T) {
	c := newTestCase()
	now := c.CreatedAt
	c.AddFinding(model.NewFinding("finding-1", model.FindingInput{Title: "Old"}, now), now)

	later := now.Add(time.Hour)
	newTitle := "New"
	f, ok := c.UpdateFinding("finding-1", model.FindingPatch{Title: &newTitle}, later)
	if !ok {
		t.Fatal("expected finding to be found")
	}
	if f.Title != "New" {
		t.Errorf("Title = %q, want New", f.Title)
	}
	if f.UpdatedAt == nil || !f.UpdatedAt.Equal(later) {
		t.Error("finding UpdatedAt must be stamped")
	}
	if !c.UpdatedAt.Equal(later) {
		t.Error("case UpdatedAt must be refreshed transitively")
	}

	if _, ok := c.UpdateFinding("finding-404", model.FindingPatch{}, later); ok {
		t.Error("unknown finding must report not found")
	}
}

func TestDeleteFindingAndNote(t *testing.T) {
	c := newTestCase()
	now := c.CreatedAt
	c.AddFinding(model.NewFinding("finding-1", model.FindingInput{}, now), now)
	c.AddNote(model.Note{ID: "note-1", Timestamp: now, Content: "x"}, now)
	eventsBefore := len(c.Timeline)

	if !c.DeleteFinding("finding-1", now) {
		t.Fatal("existing finding must delete")
	}
	if !c.DeleteNote("note-1", now) {
		t.Fatal("existing note must delete")
	}
	if c.DeleteFinding("finding-1", now) || c.DeleteNote("note-1", now) {
		t.Error("second delete must report false")
	}
	// Deletion records no timeline events.
	if len(c.Timeline) != eventsBefore {
		t.Errorf("timeline grew from %d to %d on delete", eventsBefore, len(c.Timeline))
	}
}

func TestSearchSummary(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		want   string
	}{
		{
			name:   "single email",
			values: map[string]string{"email": "a@b.com"},
			want:   "a@b.com",
		},
		{
			name:   "fixed field order",
			values: map[string]string{"ip": "1.2.3.4", "first": "Ada", "email": "a@b.com"},
			want:   "Ada, a@b.com, 1.2.3.4",
		},
		{
			name:   "empty values skipped",
			values: map[string]string{"email": "", "domain": "example.org"},
			want:   "example.org",
		},
		{
			name:   "unknown fields ignored",
			values: map[string]string{"wallet": "0xabc"},
			want:   "(no values)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := model.NewSearchSnapshot("search-1", tt.values, nil, time.Now())
			if got := snap.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchSnapshotFreezesInput(t *testing.T) {
	values := map[string]string{"email": "a@b.com"}
	links := []model.ToolLink{{ID: "x", Name: "Tool1", URL: "http://t", Badge: "free", Category: "Email"}}

	snap := model.NewSearchSnapshot("search-1", values, links, time.Now())

	values["email"] = "mutated"
	links[0].Name = "mutated"

	if snap.Values["email"] != "a@b.com" {
		t.Error("snapshot values must be a frozen copy")
	}
	if snap.Links[0].Name != "Tool1" {
		t.Error("snapshot links must be a frozen copy")
	}
	if snap.ToolCount != 1 {
		t.Errorf("ToolCount = %d, want 1", snap.ToolCount)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := newTestCase()
	now := c.CreatedAt
	c.AddFinding(model.NewFinding("finding-1", model.FindingInput{Title: "F"}, now), now)
	c.SetToolStatus("social-0", types.ToolStatusUseful, now)

	clone := c.Clone()
	clone.Findings[0].Title = "mutated"
	clone.ToolStatuses["social-0"] = types.ToolStatusDeadEnd
	clone.Tags = append(clone.Tags, "extra")

	if c.Findings[0].Title != "F" {
		t.Error("clone must not share findings")
	}
	if c.ToolStatuses["social-0"] != types.ToolStatusUseful {
		t.Error("clone must not share tool statuses")
	}
	if len(c.Tags) != 0 {
		t.Error("clone must not share tags")
	}
}
