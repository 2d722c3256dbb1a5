package httpapi

import (
	"time"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/project"
)

// Request/Response DTOs
type CreateProjectRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	BudgetMin       *float64  `json:"budget_min"`
	BudgetMax       *float64  `json:"budget_max"`
	Location        string    `json:"location"`
	BiddingDeadline time.Time `json:"bidding_deadline" binding:"required"`
}

type ListProjectsQuery struct {
	OwnerID  string `form:"owner_id" binding:"omitempty,uuid"`
	Status   string `form:"status"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1"`
}

type ExtendDeadlineRequest struct {
	BiddingDeadline time.Time `json:"bidding_deadline" binding:"required"`
}

type CancelProjectRequest struct {
	Reason string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type AwardRequest struct {
	BidID string `json:"bid_id" binding:"required,uuid"`
}

type SubmitBidRequest struct {
	Amount       float64 `json:"amount"`
	TimelineDays int     `json:"timeline_days"`
	Proposal     string  `json:"proposal"`
}

type RejectBidRequest struct {
	Reason string `json:"reason"`
}

// AwardResponse is returned by accept and award
type AwardResponse struct {
	Project *project.Project `json:"project"`
	Bid     *bid.Bid         `json:"bid"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}
