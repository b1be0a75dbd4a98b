package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
	"github.com/osint-lab/casetrail/pkg/repository"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/usecase"
)

func newStore(t *testing.T) *usecase.CaseStore {
	t.Helper()
	adapter := kv.NewAdapter(kv.NewMemory())
	repo := repository.New(adapter)
	return usecase.New(repo, adapter)
}

func TestSaveSearch(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	c, err := store.CreateCase(ctx, repository.CreateInput{Name: "Test Case"})
	gt.NoError(t, err).Required()

	links := []model.ToolLink{
		{ID: "x", Name: "Tool1", URL: "http://t", Badge: "free", Category: "Email"},
	}
	snap, err := store.SaveSearch(ctx, c.ID, map[string]string{"email": "a@b.com"}, links)
	gt.NoError(t, err).Required()
	gt.Value(t, snap.ToolCount).Equal(1)

	stored, err := store.GetCase(ctx, c.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, stored.Searches).Length(1)
	gt.Value(t, stored.Searches[0].ToolCount).Equal(1)
	gt.Value(t, stored.Searches[0].Links[0].Name).Equal("Tool1")
	gt.Value(t, stored.Searches[0].Values["email"]).Equal("a@b.com")

	// Timeline gained a search event describing the captured values.
	last := stored.Timeline[len(stored.Timeline)-1]
	gt.Value(t, last.Type).Equal(types.EventSearch)
	gt.String(t, last.Description).Contains("a@b.com")

	// The global recent-search history recorded it too.
	history := store.History(ctx)
	gt.Array(t, history).Length(1)
	gt.Value(t, history[0].ToolCount).Equal(1)
}

func TestSaveSearchCaseNotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.SaveSearch(context.Background(), "case-missing", nil, nil)
	gt.Bool(t, errors.Is(err, usecase.ErrCaseNotFound)).True()
}

func TestSetToolStatus(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	c, err := store.CreateCase(ctx, repository.CreateInput{Name: "Test Case"})
	gt.NoError(t, err).Required()

	err = store.SetToolStatus(ctx, c.ID, "social-3", types.ToolStatus("bogus-status"))
	gt.Bool(t, errors.Is(err, usecase.ErrInvalidToolStatus)).True()

	stored, err := store.GetCase(ctx, c.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, len(stored.ToolStatuses)).Equal(0)

	gt.NoError(t, store.SetToolStatus(ctx, c.ID, "social-3", types.ToolStatusUseful)).Required()

	stored, err = store.GetCase(ctx, c.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.ToolStatuses["social-3"]).Equal(types.ToolStatusUseful)
}

func TestAddFindingDefaults(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	c, err := store.CreateCase(ctx, repository.CreateInput{Name: "Test Case"})
	gt.NoError(t, err).Required()

	f, err := store.AddFinding(ctx, c.ID, model.FindingInput{Content: "no title given"})
	gt.NoError(t, err).Required()
	gt.Value(t, f.Title).Equal("Untitled Finding")
	gt.Value(t, f.Importance).Equal(types.ImportanceMedium)
	gt.Array(t, f.Attachments).Length(0)

	stored, err := store.GetCase(ctx, c.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, stored.Findings).Length(1)
	last := stored.Timeline[len(stored.Timeline)-1]
	gt.Value(t, last.Type).Equal(types.EventFinding)
	gt.String(t, last.Description).Contains("Untitled Finding")
}

func TestUpdateAndDeleteFinding(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	c, err := store.CreateCase(ctx, repository.CreateInput{Name: "Test Case"})
	gt.NoError(t, err).Required()
	f, err := store.AddFinding(ctx, c.ID, model.FindingInput{Title: "Leaked email"})
	gt.NoError(t, err).Required()

	content := "Found on breach site"
	updated, err := store.UpdateFinding(ctx, c.ID, f.ID, model.FindingPatch{Content: &content})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Content).Equal(content)
	gt.Value(t, updated.UpdatedAt).NotNil()

	_, err = store.UpdateFinding(ctx, c.ID, "finding-missing", model.FindingPatch{})
	gt.Bool(t, errors.Is(err, usecase.ErrFindingNotFound)).True()

	gt.NoError(t, store.DeleteFinding(ctx, c.ID, f.ID)).Required()
	err = store.DeleteFinding(ctx, c.ID, f.ID)
	gt.Bool(t, errors.Is(err, usecase.ErrFindingNotFound)).True()
}

func TestNotes(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	c, err := store.CreateCase(ctx, repository.CreateInput{Name: "Test Case"})
	gt.NoError(t, err).Required()

	note, err := store.AddNote(ctx, c.ID, "check the whois record")
	gt.NoError(t, err).Required()

	stored, err := store.GetCase(ctx, c.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, stored.Notes).Length(1)
	gt.Value(t, stored.Notes[0].Content).Equal("check the whois record")

	gt.NoError(t, store.DeleteNote(ctx, c.ID, note.ID)).Required()
	err = store.DeleteNote(ctx, c.ID, note.ID)
	gt.Bool(t, errors.Is(err, usecase.ErrNoteNotFound)).True()
}

func TestUpdateCasePatch(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	c, err := store.CreateCase(ctx, repository.CreateInput{Name: "Test Case", Description: "original"})
	gt.NoError(t, err).Required()

	status := types.CaseStatusArchived
	name := "Renamed"
	updated, err := store.UpdateCase(ctx, c.ID, usecase.CasePatch{
		Name:   &name,
		Status: &status,
		Tags:   []string{"fraud"},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Name).Equal("Renamed")
	gt.Value(t, updated.Status).Equal(types.CaseStatusArchived)
	gt.Array(t, updated.Tags).Length(1)
	// Untouched fields survive the merge.
	gt.Value(t, updated.Description).Equal("original")
}

func TestImportCases(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	valid, err := store.CreateCase(ctx, repository.CreateInput{Name: "Exported Case"})
	gt.NoError(t, err).Required()
	validJSON, err := json.Marshal(valid)
	gt.NoError(t, err).Required()

	data := []byte(`[` + string(validJSON) + `,{"id":"case-bad","status":"nonsense"},{"name":"Minimal"}]`)

	// Fresh store to import into.
	dst := newStore(t)
	result, err := dst.ImportCases(ctx, data)
	gt.NoError(t, err).Required()
	gt.Value(t, result.Imported).Equal(2)
	gt.Value(t, result.Skipped).Equal(1)
	gt.Array(t, result.Errors).Length(1)

	restored, err := dst.GetCase(ctx, valid.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, restored.Name).Equal("Exported Case")

	// The minimal entry got defaults.
	cases, err := dst.ListCases(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, cases).Length(2)
}

func TestImportCasesMalformedDocument(t *testing.T) {
	store := newStore(t)

	_, err := store.ImportCases(context.Background(), []byte(`{not json`))
	gt.Error(t, err)
}
