package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// AddFinding appends a finding to the case, evicting the oldest one past
// the per-case cap, and returns the stored finding.
func (s *CaseStore) AddFinding(ctx context.Context, caseID types.CaseID, input model.FindingInput) (*model.Finding, error) {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	now := s.now()
	f := model.NewFinding(types.NewFindingID(), input, now)
	c.AddFinding(f, now)

	if _, err := s.repo.Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to persist finding", goerr.V(CaseIDKey, caseID))
	}
	return &f, nil
}

// UpdateFinding shallow-merges the patch into the finding and stamps the
// finding's own UpdatedAt. No timeline event is recorded.
func (s *CaseStore) UpdateFinding(ctx context.Context, caseID types.CaseID, findingID types.FindingID, patch model.FindingPatch) (*model.Finding, error) {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	f, ok := c.UpdateFinding(findingID, patch, s.now())
	if !ok {
		return nil, goerr.Wrap(ErrFindingNotFound, "finding not found",
			goerr.V(CaseIDKey, caseID), goerr.V(FindingIDKey, findingID))
	}
	updated := f.ID

	if _, err := s.repo.Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to persist finding update", goerr.V(CaseIDKey, caseID))
	}

	// Return the stored copy, not the pre-persist pointer.
	stored, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to re-read case", goerr.V(CaseIDKey, caseID))
	}
	return stored.FindingByID(updated), nil
}

// DeleteFinding removes a finding. Unlike AddFinding this records no
// timeline event.
func (s *CaseStore) DeleteFinding(ctx context.Context, caseID types.CaseID, findingID types.FindingID) error {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	if !c.DeleteFinding(findingID, s.now()) {
		return goerr.Wrap(ErrFindingNotFound, "finding not found",
			goerr.V(CaseIDKey, caseID), goerr.V(FindingIDKey, findingID))
	}

	if _, err := s.repo.Update(ctx, c); err != nil {
		return goerr.Wrap(err, "failed to persist finding deletion", goerr.V(CaseIDKey, caseID))
	}
	return nil
}
