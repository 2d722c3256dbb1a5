// Package memory keeps projects and bids in process memory. It backs the
// "memory" storage driver and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/google/uuid"
)

type state struct {
	projects map[uuid.UUID]*project.Project
	bids     map[uuid.UUID]*bid.Bid
}

// copy duplicates the maps. Entries are never mutated in place, only
// replaced, so sharing the pointers is safe.
func (s *state) copy() *state {
	c := &state{
		projects: make(map[uuid.UUID]*project.Project, len(s.projects)),
		bids:     make(map[uuid.UUID]*bid.Bid, len(s.bids)),
	}
	for id, p := range s.projects {
		c.projects[id] = p
	}
	for id, b := range s.bids {
		c.bids[id] = b
	}
	return c
}

// Store is a transactional in-memory implementation of the storage ports.
// Transactions run one at a time against a private copy that replaces the
// committed state only when fn succeeds.
type Store struct {
	mu    sync.Mutex
	state *state
}

func NewStore() *Store {
	return &Store{state: &state{
		projects: make(map[uuid.UUID]*project.Project),
		bids:     make(map[uuid.UUID]*bid.Bid),
	}}
}

// Projects returns a repository that reads and writes committed state
func (s *Store) Projects() outbound.ProjectRepository {
	return &projectRepository{store: s}
}

// Bids returns a repository that reads and writes committed state
func (s *Store) Bids() outbound.BidRepository {
	return &bidRepository{store: s}
}

// WithinTransaction implements outbound.Transactor
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos outbound.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.copy()
	repos := outbound.Repositories{
		Projects: &projectRepository{store: s, tx: tx},
		Bids:     &bidRepository{store: s, tx: tx},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// view runs fn against the transaction copy when bound to one, otherwise
// against the committed state under the store lock
func (s *Store) view(ctx context.Context, tx *state, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

type projectRepository struct {
	store *Store
	tx    *state
}

func (r *projectRepository) Create(ctx context.Context, p *project.Project) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if _, exists := st.projects[p.ID]; exists {
			return shared.NewConflictError(shared.EntityProject, p.ID, "project already exists")
		}
		st.projects[p.ID] = p.Clone()
		return nil
	})
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var found *project.Project
	err := r.store.view(ctx, r.tx, func(st *state) error {
		p, ok := st.projects[id]
		if !ok {
			return shared.NewNotFoundError(shared.EntityProject, id)
		}
		found = p.Clone()
		return nil
	})
	return found, err
}

// GetForUpdate needs no row lock here; transactions are already exclusive
func (r *projectRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return r.GetByID(ctx, id)
}

func (r *projectRepository) List(ctx context.Context, filter outbound.ProjectFilter) ([]*project.Project, error) {
	var matched []*project.Project
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, p := range st.projects {
			if filter.OwnerID != nil && p.OwnerID != *filter.OwnerID {
				continue
			}
			if filter.Status != nil && p.Status != *filter.Status {
				continue
			}
			if filter.Category != nil && p.Category != *filter.Category {
				continue
			}
			matched = append(matched, p.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.PageSize <= 0 {
		return matched, nil
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * filter.PageSize
	if start >= len(matched) {
		return []*project.Project{}, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *projectRepository) ListDueForSweep(ctx context.Context, now time.Time, limit int) ([]*project.Project, error) {
	var due []*project.Project
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, p := range st.projects {
			if p.Status != project.StatusActive && p.Status != project.StatusBiddingClosed {
				continue
			}
			if p.BiddingDeadline.After(now) {
				continue
			}
			due = append(due, p.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].BiddingDeadline.Before(due[j].BiddingDeadline)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *projectRepository) UpdateIfStatus(ctx context.Context, p *project.Project, expected project.Status) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		stored, ok := st.projects[p.ID]
		if !ok {
			return shared.NewNotFoundError(shared.EntityProject, p.ID)
		}
		if stored.Status != expected {
			return shared.NewConflictError(shared.EntityProject, p.ID,
				"status changed from "+string(expected)+" to "+string(stored.Status))
		}
		st.projects[p.ID] = p.Clone()
		return nil
	})
}

type bidRepository struct {
	store *Store
	tx    *state
}

func (r *bidRepository) Create(ctx context.Context, b *bid.Bid) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		if _, exists := st.bids[b.ID]; exists {
			return shared.NewConflictError(shared.EntityBid, b.ID, "bid already exists")
		}
		if _, ok := st.projects[b.ProjectID]; !ok {
			return shared.NewNotFoundError(shared.EntityProject, b.ProjectID)
		}
		if b.IsLive() {
			for _, other := range st.bids {
				if other.ProjectID == b.ProjectID && other.ContractorID == b.ContractorID && other.IsLive() {
					return &shared.DuplicateBidError{
						ProjectID:     b.ProjectID,
						ContractorID:  b.ContractorID,
						ExistingBidID: other.ID,
					}
				}
			}
		}
		st.bids[b.ID] = b.Clone()
		return nil
	})
}

func (r *bidRepository) GetByID(ctx context.Context, id uuid.UUID) (*bid.Bid, error) {
	var found *bid.Bid
	err := r.store.view(ctx, r.tx, func(st *state) error {
		b, ok := st.bids[id]
		if !ok {
			return shared.NewNotFoundError(shared.EntityBid, id)
		}
		found = b.Clone()
		return nil
	})
	return found, err
}

func (r *bidRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]*bid.Bid, error) {
	bids, err := r.collect(ctx, func(b *bid.Bid) bool { return b.ProjectID == projectID })
	if err != nil {
		return nil, err
	}
	sort.Slice(bids, func(i, j int) bool { return olderFirst(bids[i], bids[j]) })
	return bids, nil
}

func (r *bidRepository) GetByContractorID(ctx context.Context, contractorID uuid.UUID) ([]*bid.Bid, error) {
	bids, err := r.collect(ctx, func(b *bid.Bid) bool { return b.ContractorID == contractorID })
	if err != nil {
		return nil, err
	}
	sort.Slice(bids, func(i, j int) bool { return olderFirst(bids[j], bids[i]) })
	return bids, nil
}

func (r *bidRepository) UpdateIfStatus(ctx context.Context, b *bid.Bid, expected bid.Status) error {
	return r.store.view(ctx, r.tx, func(st *state) error {
		stored, ok := st.bids[b.ID]
		if !ok {
			return shared.NewNotFoundError(shared.EntityBid, b.ID)
		}
		if stored.Status != expected {
			return shared.NewConflictError(shared.EntityBid, b.ID,
				"status changed from "+string(expected)+" to "+string(stored.Status))
		}
		if b.IsAccepted() {
			for _, other := range st.bids {
				if other.ProjectID == b.ProjectID && other.ID != b.ID && other.IsAccepted() {
					return shared.NewConflictError(shared.EntityProject, b.ProjectID, "another bid is already accepted")
				}
			}
		}
		st.bids[b.ID] = b.Clone()
		return nil
	})
}

func (r *bidRepository) collect(ctx context.Context, keep func(b *bid.Bid) bool) ([]*bid.Bid, error) {
	bids := []*bid.Bid{}
	err := r.store.view(ctx, r.tx, func(st *state) error {
		for _, b := range st.bids {
			if keep(b) {
				bids = append(bids, b.Clone())
			}
		}
		return nil
	})
	return bids, err
}

func olderFirst(a, b *bid.Bid) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID.String() < b.ID.String()
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
