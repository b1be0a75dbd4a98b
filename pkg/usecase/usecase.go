package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
	"github.com/osint-lab/casetrail/pkg/repository"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
)

// CaseStore is the single entry point the presentation layer works
// against: case CRUD, the aggregate mutators, the search-to-case bridge,
// and import/restore. One instance is constructed per process and passed
// by reference; tests build fresh instances over an in-memory store.
type CaseStore struct {
	repo    *repository.Repository
	adapter *kv.Adapter
	now     func() time.Time
}

// Option configures a CaseStore
type Option func(*CaseStore)

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *CaseStore) {
		s.now = now
	}
}

// New creates a CaseStore
func New(repo *repository.Repository, adapter *kv.Adapter, opts ...Option) *CaseStore {
	s := &CaseStore{
		repo:    repo,
		adapter: adapter,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCases returns all cases, newest-first
func (s *CaseStore) ListCases(ctx context.Context) ([]*model.Case, error) {
	return s.repo.ListAll(ctx)
}

// GetCase returns one case by id
func (s *CaseStore) GetCase(ctx context.Context, id types.CaseID) (*model.Case, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, id))
	}
	return c, nil
}

// GetActiveCase returns the active case, or nil when none is set
func (s *CaseStore) GetActiveCase(ctx context.Context) (*model.Case, error) {
	return s.repo.GetActive(ctx)
}

// CreateCase creates a new case
func (s *CaseStore) CreateCase(ctx context.Context, input repository.CreateInput) (*model.Case, error) {
	c, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case")
	}
	return c, nil
}

// CasePatch carries partial updates for the top-level case fields. Nil
// pointers leave the field untouched; a non-nil Subject replaces the
// subject map wholesale.
type CasePatch struct {
	Name        *string
	Description *string
	Tags        []string
	Status      *types.CaseStatus
	Priority    *types.Priority
	Subject     map[string]string
	Assignee    *string
	DueDate     *time.Time
}

// UpdateCase shallow-merges the patch into the stored case and persists
func (s *CaseStore) UpdateCase(ctx context.Context, id types.CaseID, patch CasePatch) (*model.Case, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, id))
	}

	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Tags != nil {
		c.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Status != nil {
		c.Status = patch.Status.Normalize()
	}
	if patch.Priority != nil {
		c.Priority = patch.Priority.Normalize()
	}
	if patch.Subject != nil {
		c.Metadata.Subject = patch.Subject
	}
	if patch.Assignee != nil {
		c.Metadata.Assignee = *patch.Assignee
	}
	if patch.DueDate != nil {
		c.Metadata.DueDate = patch.DueDate
	}

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update case", goerr.V(CaseIDKey, id))
	}
	return updated, nil
}

// DeleteCase removes a case; the active pointer is cleared if it pointed
// at the removed case.
func (s *CaseStore) DeleteCase(ctx context.Context, id types.CaseID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, id))
	}
	return nil
}

// SetActiveCase sets or clears (empty id) the active-case pointer
func (s *CaseStore) SetActiveCase(ctx context.Context, id types.CaseID) error {
	if err := s.repo.SetActive(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to set active case", goerr.V(CaseIDKey, id))
	}
	return nil
}
