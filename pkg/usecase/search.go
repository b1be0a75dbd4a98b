package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/utils/logging"
)

// MaxHistoryEntries bounds the global recent-search list, which lives
// outside any case and is the collection quota remediation halves.
const MaxHistoryEntries = 100

// HistoryEntry is one line of the global recent-search list
type HistoryEntry struct {
	ID        types.SearchID    `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Values    map[string]string `json:"values"`
	ToolCount int               `json:"toolCount"`
}

// SaveSearch captures the in-progress search (identity values plus the
// generated tool links) into the given case and records it in the global
// search history. The snapshot is a frozen copy: later changes to the
// caller's slices never reach the stored case.
func (s *CaseStore) SaveSearch(ctx context.Context, caseID types.CaseID, values map[string]string, links []model.ToolLink) (*model.SearchSnapshot, error) {
	c, err := s.repo.Get(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, caseID))
	}

	now := s.now()
	snap := model.NewSearchSnapshot(types.NewSearchID(), values, links, now)
	c.AppendSearch(snap, now)

	if _, err := s.repo.Update(ctx, c); err != nil {
		return nil, goerr.Wrap(err, "failed to persist search snapshot", goerr.V(CaseIDKey, caseID))
	}

	// History is best-effort: a full quota must not fail the case write
	// that already succeeded.
	if err := s.recordHistory(ctx, snap); err != nil {
		logging.From(ctx).Warn("failed to record search history", "error", err)
	}

	return &snap, nil
}

// History returns the global recent-search list, newest-first
func (s *CaseStore) History(ctx context.Context) []HistoryEntry {
	var entries []HistoryEntry
	s.adapter.Load(ctx, kv.HistoryKey, &entries)
	return entries
}

func (s *CaseStore) recordHistory(ctx context.Context, snap model.SearchSnapshot) error {
	entries := s.History(ctx)
	entries = append([]HistoryEntry{{
		ID:        snap.ID,
		Timestamp: snap.Timestamp,
		Values:    snap.Values,
		ToolCount: snap.ToolCount,
	}}, entries...)
	if len(entries) > MaxHistoryEntries {
		entries = entries[:MaxHistoryEntries]
	}
	return s.adapter.Save(ctx, kv.HistoryKey, entries)
}
