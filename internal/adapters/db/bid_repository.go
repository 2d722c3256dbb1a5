package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const bidColumns = `id, project_id, contractor_id, amount, timeline_days, proposal, status,
		rejection_reason, compensated, created_at, updated_at`

// BidRepository implements outbound.BidRepository on PostgreSQL
type BidRepository struct {
	q sqlx.ExtContext
}

// NewBidRepository creates a bid repository outside any transaction
func NewBidRepository(conn *Connection) *BidRepository {
	return &BidRepository{q: conn.GetDB()}
}

func (r *BidRepository) Create(ctx context.Context, b *bid.Bid) error {
	query := `
		INSERT INTO bids (id, project_id, contractor_id, amount, timeline_days, proposal, status,
			rejection_reason, compensated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		b.ID,
		b.ProjectID,
		b.ContractorID,
		b.Amount,
		b.TimelineDays,
		b.Proposal,
		b.Status,
		b.RejectionReason,
		b.Compensated,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		if mapped := mapBidWriteError(err, b); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create bid: %w", err)
	}

	return nil
}

func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*bid.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`

	var b bid.Bid
	if err := sqlx.GetContext(ctx, r.q, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.NewNotFoundError(shared.EntityBid, id)
		}
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}

	return &b, nil
}

// GetByProjectID retrieves all bids for a project, oldest first
func (r *BidRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]*bid.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE project_id = $1 ORDER BY created_at ASC, id`

	bids := []*bid.Bid{}
	if err := sqlx.SelectContext(ctx, r.q, &bids, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to get bids by project: %w", err)
	}

	return bids, nil
}

// GetByContractorID retrieves all bids placed by a contractor, newest first
func (r *BidRepository) GetByContractorID(ctx context.Context, contractorID uuid.UUID) ([]*bid.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE contractor_id = $1 ORDER BY created_at DESC, id`

	bids := []*bid.Bid{}
	if err := sqlx.SelectContext(ctx, r.q, &bids, query, contractorID); err != nil {
		return nil, fmt.Errorf("failed to get bids by contractor: %w", err)
	}

	return bids, nil
}

// UpdateIfStatus writes the mutable bid fields only while the stored status
// equals expected
func (r *BidRepository) UpdateIfStatus(ctx context.Context, b *bid.Bid, expected bid.Status) error {
	query := `
		UPDATE bids
		SET status = $3, rejection_reason = $4, compensated = $5, updated_at = $6
		WHERE id = $1 AND status = $2
	`

	result, err := r.q.ExecContext(ctx, query,
		b.ID,
		expected,
		b.Status,
		b.RejectionReason,
		b.Compensated,
		b.UpdatedAt,
	)
	if err != nil {
		if mapped := mapBidWriteError(err, b); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update bid: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var current bid.Status
	err = sqlx.GetContext(ctx, r.q, &current, `SELECT status FROM bids WHERE id = $1`, b.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return shared.NewNotFoundError(shared.EntityBid, b.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to read bid status: %w", err)
	}
	return shared.NewConflictError(shared.EntityBid, b.ID,
		fmt.Sprintf("status changed from %s to %s", expected, current))
}
