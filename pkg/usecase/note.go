package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// AddNote appends a free-text note to the case
func (s *CaseStore) AddNote(ctx context.Context, caseID types.CaseID, content string) (*model.Note, error) {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	now := s.now()
	note := model.Note{
		ID:        types.NewNoteID(),
		Timestamp: now,
		Content:   content,
	}
	c.AddNote(note, now)

	if _, err := s.repo.Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to persist note", goerr.V(CaseIDKey, caseID))
	}
	return &note, nil
}

// DeleteNote removes a note from the case
func (s *CaseStore) DeleteNote(ctx context.Context, caseID types.CaseID, noteID types.NoteID) error {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	if !c.DeleteNote(noteID, s.now()) {
		return goerr.Wrap(ErrNoteNotFound, "note not found",
			goerr.V(CaseIDKey, caseID), goerr.V(NoteIDKey, noteID))
	}

	if _, err := s.repo.Update(ctx, c); err != nil {
		return goerr.Wrap(err, "failed to persist note deletion", goerr.V(CaseIDKey, caseID))
	}
	return nil
}
