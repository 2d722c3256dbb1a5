package inbound

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks . ProjectService,BidService

import (
	"context"
	"time"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/domain/shared"

	"github.com/google/uuid"
)

// ProjectService defines the project lifecycle operations
type ProjectService interface {
	CreateProject(ctx context.Context, actor shared.Actor, req CreateProjectRequest) (*project.Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID) (*project.Project, error)
	ListProjects(ctx context.Context, req ListProjectsRequest) ([]*project.Project, error)

	Activate(ctx context.Context, actor shared.Actor, projectID uuid.UUID) (*project.Project, error)
	ExtendDeadline(ctx context.Context, actor shared.Actor, projectID uuid.UUID, newDeadline time.Time) (*project.Project, error)
	Close(ctx context.Context, actor shared.Actor, projectID uuid.UUID) (*project.Project, error)
	Cancel(ctx context.Context, actor shared.Actor, projectID uuid.UUID, reason string) (*project.Project, error)
	Complete(ctx context.Context, actor shared.Actor, projectID uuid.UUID) (*project.Project, error)
	Award(ctx context.Context, actor shared.Actor, projectID, bidID uuid.UUID) (*project.Project, *bid.Bid, error)
	UpdateStatus(ctx context.Context, actor shared.Actor, projectID uuid.UUID, req UpdateStatusRequest) (*project.Project, error)
}

// BidService defines the bid ledger operations
type BidService interface {
	Submit(ctx context.Context, actor shared.Actor, req SubmitBidRequest) (*bid.Bid, error)
	Withdraw(ctx context.Context, actor shared.Actor, bidID uuid.UUID) (*bid.Bid, error)
	Accept(ctx context.Context, actor shared.Actor, bidID uuid.UUID) (*project.Project, *bid.Bid, error)
	Reject(ctx context.Context, actor shared.Actor, bidID uuid.UUID, reason string) (*bid.Bid, error)
	GetBid(ctx context.Context, actor shared.Actor, bidID uuid.UUID) (*bid.Bid, error)
	ListForProject(ctx context.Context, actor shared.Actor, projectID uuid.UUID) ([]*bid.Bid, error)
	ListForContractor(ctx context.Context, actor shared.Actor) ([]*bid.Bid, error)
}

// request to create a project
type CreateProjectRequest struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Category        project.Category `json:"category"`
	BudgetMin       *float64         `json:"budget_min,omitempty"`
	BudgetMax       *float64         `json:"budget_max,omitempty"`
	Location        string           `json:"location"`
	BiddingDeadline time.Time        `json:"bidding_deadline"`
}

// request to list projects
type ListProjectsRequest struct {
	OwnerID  *uuid.UUID        `json:"owner_id,omitempty"`
	Status   *project.Status   `json:"status,omitempty"`
	Category *project.Category `json:"category,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// request to move a project to a target status
type UpdateStatusRequest struct {
	Status project.Status `json:"status"`
	Reason string         `json:"reason,omitempty"`
}

// request to submit a bid
type SubmitBidRequest struct {
	ProjectID    uuid.UUID `json:"project_id"`
	Amount       float64   `json:"amount"`
	TimelineDays int       `json:"timeline_days"`
	Proposal     string    `json:"proposal,omitempty"`
}
