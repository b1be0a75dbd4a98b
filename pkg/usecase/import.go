package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
)

// ImportResult reports the outcome of a restore. Partial success is the
// norm: entries that parse and validate commit even when later entries
// fail.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ImportCases restores cases from a JSON array (the backup format produced
// by the JSON serializer, wrapped in an array). Each entry is validated
// independently; malformed entries are collected into the result's error
// list and the valid ones still commit.
func (s *CaseStore) ImportCases(ctx context.Context, data []byte) (*ImportResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(err, "import data is not a JSON array")
	}

	result := &ImportResult{Errors: []string{}}
	for i, entry := range raw {
		c, err := s.parseImportEntry(entry)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		if _, err := s.repo.Restore(ctx, c); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}

func (s *CaseStore) parseImportEntry(entry json.RawMessage) (*model.Case, error) {
	var c model.Case
	if err := json.Unmarshal(entry, &c); err != nil {
		return nil, fmt.Errorf("malformed case: %w", err)
	}

	if c.ID == "" {
		c.ID = types.NewCaseID()
	}
	if c.Name == "" {
		c.Name = model.DefaultCaseName
	}
	if c.Status != "" && !c.Status.IsValid() {
		return nil, fmt.Errorf("invalid status %q", c.Status)
	}
	c.Status = c.Status.Normalize()
	if c.Priority != "" && !c.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority %q", c.Priority)
	}
	c.Priority = c.Priority.Normalize()
	for toolID, status := range c.ToolStatuses {
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid tool status %q for tool %q", status, toolID)
		}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	return &c, nil
}
