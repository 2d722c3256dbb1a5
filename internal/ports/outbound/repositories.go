package outbound

import (
	"context"
	"time"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"

	"github.com/google/uuid"
)

// ProjectFilter narrows a project listing
type ProjectFilter struct {
	OwnerID  *uuid.UUID
	Status   *project.Status
	Category *project.Category
	Page     int
	PageSize int
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	// Create inserts a new project
	Create(ctx context.Context, p *project.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)

	// GetForUpdate retrieves a project and, inside a transaction, locks its
	// row until commit
	GetForUpdate(ctx context.Context, id uuid.UUID) (*project.Project, error)

	// List retrieves projects matching the filter, newest first
	List(ctx context.Context, filter ProjectFilter) ([]*project.Project, error)

	// ListDueForSweep returns active and bidding_closed projects whose
	// deadline is at or before now
	ListDueForSweep(ctx context.Context, now time.Time, limit int) ([]*project.Project, error)

	// UpdateIfStatus writes p only if the stored status still equals
	// expected. A lost compare-and-swap returns a shared.ConflictError.
	UpdateIfStatus(ctx context.Context, p *project.Project, expected project.Status) error
}

// BidRepository defines the interface for bid data operations
type BidRepository interface {
	// Create inserts a new bid
	Create(ctx context.Context, b *bid.Bid) error

	// GetByID retrieves a bid by ID
	GetByID(ctx context.Context, id uuid.UUID) (*bid.Bid, error)

	// GetByProjectID retrieves all bids for a project, oldest first
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]*bid.Bid, error)

	// GetByContractorID retrieves all bids placed by a contractor, newest first
	GetByContractorID(ctx context.Context, contractorID uuid.UUID) ([]*bid.Bid, error)

	// UpdateIfStatus writes b only if the stored status still equals expected
	UpdateIfStatus(ctx context.Context, b *bid.Bid, expected bid.Status) error
}

// Repositories groups the repositories bound to one unit of work
type Repositories struct {
	Projects ProjectRepository
	Bids     BidRepository
}

// Transactor runs fn in a single transaction. Every write made through the
// repositories handed to fn commits together or not at all.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
