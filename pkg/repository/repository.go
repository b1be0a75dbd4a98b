package repository

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/model"
	"github.com/osint-lab/casetrail/pkg/domain/types"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
)

// MaxCases bounds the case collection. Creation past the cap evicts the
// oldest case (the tail of the newest-first list), one at a time.
const MaxCases = 50

// Repository owns the persisted case collection and the active-case
// pointer. Every operation follows the same discipline: load the whole
// collection, mutate in memory, store the whole collection back. The mutex
// serializes that read-modify-write cycle, so concurrent callers (HTTP
// handlers) cannot race a last-writer-wins overwrite.
type Repository struct {
	mu      sync.Mutex
	adapter *kv.Adapter
	now     func() time.Time
}

// Option configures a Repository
type Option func(*Repository)

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// New creates a Repository over the given persistence adapter
func New(adapter *kv.Adapter, opts ...Option) *Repository {
	r := &Repository{
		adapter: adapter,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// loadCases reads the whole collection; absent or corrupt data yields an
// empty collection.
func (r *Repository) loadCases(ctx context.Context) []*model.Case {
	var cases []*model.Case
	r.adapter.Load(ctx, kv.CasesKey, &cases)
	return cases
}

func (r *Repository) saveCases(ctx context.Context, cases []*model.Case) error {
	return r.adapter.Save(ctx, kv.CasesKey, cases)
}

func (r *Repository) loadActiveID(ctx context.Context) types.CaseID {
	var id string
	r.adapter.Load(ctx, kv.ActiveCaseKey, &id)
	return types.CaseID(id)
}

// ListAll returns the full collection, newest-first
func (r *Repository) ListAll(ctx context.Context) ([]*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases := r.loadCases(ctx)
	out := make([]*model.Case, len(cases))
	for i, c := range cases {
		out[i] = c.Clone()
	}
	return out, nil
}

// Get returns the case with the given id, or ErrCaseNotFound
func (r *Repository) Get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.get(ctx, id)
}

func (r *Repository) get(ctx context.Context, id types.CaseID) (*model.Case, error) {
	for _, c := range r.loadCases(ctx) {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, id))
}

// GetActive resolves the persisted active-case pointer. A nil case with nil
// error means no active case: either the pointer is unset or it dangles
// (the referenced case is gone). A dangling pointer is tolerated, not
// auto-cleared; only SetActive("") and Delete clear it.
func (r *Repository) GetActive(ctx context.Context) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.loadActiveID(ctx)
	if id == "" {
		return nil, nil
	}
	c, err := r.get(ctx, id)
	if err != nil {
		return nil, nil
	}
	return c, nil
}

// CreateInput carries caller-supplied fields for a new case
type CreateInput struct {
	Name        string
	Description string
	Tags        []string
	Priority    types.Priority
	Subject     map[string]string
	Assignee    string
	DueDate     *time.Time
}

// Create constructs a case with defaults, prepends it to the collection,
// evicts the oldest case past MaxCases, and persists. The created case is
// returned.
func (r *Repository) Create(ctx context.Context, input CreateInput) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	c := model.New(types.NewCaseID(), input.Name, now)
	c.Description = input.Description
	if input.Tags != nil {
		c.Tags = append([]string(nil), input.Tags...)
	}
	c.Priority = input.Priority.Normalize()
	if input.Subject != nil {
		for k, v := range input.Subject {
			c.Metadata.Subject[k] = v
		}
	}
	c.Metadata.Assignee = input.Assignee
	c.Metadata.DueDate = input.DueDate

	cases := append([]*model.Case{c}, r.loadCases(ctx)...)

	activeCleared := false
	activeID := r.loadActiveID(ctx)
	for len(cases) > MaxCases {
		evicted := cases[len(cases)-1]
		cases = cases[:len(cases)-1]
		if evicted.ID == activeID {
			activeCleared = true
		}
	}

	if err := r.saveCases(ctx, cases); err != nil {
		return nil, err
	}
	if activeCleared {
		if err := r.adapter.Remove(ctx, kv.ActiveCaseKey); err != nil {
			return nil, err
		}
	}

	return c.Clone(), nil
}

// Restore inserts a case as-is, keeping its id and timestamps. An existing
// case with the same id is replaced in place; otherwise the case is
// prepended and the collection cap applies. Used by import/restore.
func (r *Repository) Restore(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := c.Clone()
	cases := r.loadCases(ctx)
	replaced := false
	for i, existing := range cases {
		if existing.ID == stored.ID {
			cases[i] = stored
			replaced = true
			break
		}
	}
	activeCleared := false
	if !replaced {
		activeID := r.loadActiveID(ctx)
		cases = append([]*model.Case{stored}, cases...)
		for len(cases) > MaxCases {
			evicted := cases[len(cases)-1]
			cases = cases[:len(cases)-1]
			if evicted.ID == activeID {
				activeCleared = true
			}
		}
	}

	if err := r.saveCases(ctx, cases); err != nil {
		return nil, err
	}
	if activeCleared {
		if err := r.adapter.Remove(ctx, kv.ActiveCaseKey); err != nil {
			return nil, err
		}
	}
	return stored.Clone(), nil
}

// Update replaces the stored case with the given one, preserving CreatedAt
// and refreshing UpdatedAt. Field contents are not validated.
func (r *Repository) Update(ctx context.Context, updated *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases := r.loadCases(ctx)
	for i, c := range cases {
		if c.ID != updated.ID {
			continue
		}
		stored := updated.Clone()
		stored.CreatedAt = c.CreatedAt
		stored.UpdatedAt = r.now()
		cases[i] = stored
		if err := r.saveCases(ctx, cases); err != nil {
			return nil, err
		}
		return stored.Clone(), nil
	}
	return nil, goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, updated.ID))
}

// Delete removes the case; if it was the active one the pointer is cleared
func (r *Repository) Delete(ctx context.Context, id types.CaseID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases := r.loadCases(ctx)
	for i, c := range cases {
		if c.ID != id {
			continue
		}
		cases = append(cases[:i], cases[i+1:]...)
		if err := r.saveCases(ctx, cases); err != nil {
			return err
		}
		if r.loadActiveID(ctx) == id {
			if err := r.adapter.Remove(ctx, kv.ActiveCaseKey); err != nil {
				return err
			}
		}
		return nil
	}
	return goerr.Wrap(ErrCaseNotFound, "case not found", goerr.V(CaseIDKey, id))
}

// SetActive points the active-case pointer at the given case, verifying it
// exists first. An empty id clears the pointer.
func (r *Repository) SetActive(ctx context.Context, id types.CaseID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		return r.adapter.Remove(ctx, kv.ActiveCaseKey)
	}
	if _, err := r.get(ctx, id); err != nil {
		return err
	}
	return r.adapter.Save(ctx, kv.ActiveCaseKey, id.String())
}
