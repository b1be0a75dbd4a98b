package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// SetToolStatus records the review status of one tool for the case. An
// invalid status is rejected with ErrInvalidToolStatus and nothing is
// mutated; callers that only want the original's boolean contract can
// check err == nil.
func (s *CaseStore) SetToolStatus(ctx context.Context, caseID types.CaseID, toolID types.ToolID, status types.ToolStatus) error {
	if !status.IsValid() {
		return goerr.Wrap(ErrInvalidToolStatus, "invalid tool status",
			goerr.V(CaseIDKey, caseID), goerr.V(ToolIDKey, toolID), goerr.V(StatusKey, status))
	}

	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	c.SetToolStatus(toolID, status, s.now())

	if _, err := s.repo.Update(ctx, c); err != nil {
		return goerr.Wrap(err, "failed to persist tool status", goerr.V(CaseIDKey, caseID))
	}
	return nil
}
