package db

import (
	"errors"

	"marketplace-bidding-service/internal/domain/bid"
	"marketplace-bidding-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"

	constraintOneAccepted = "bids_one_accepted_per_project"
	constraintOneLive     = "bids_one_live_per_contractor"
	constraintBidProject  = "bids_project_id_fkey"
)

// mapBidWriteError turns the constraint violations guarding the bid
// invariants into domain errors. Anything else is returned as is.
func mapBidWriteError(err error, b *bid.Bid) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch {
	case pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraintOneAccepted:
		return shared.NewConflictError(shared.EntityProject, b.ProjectID, "another bid is already accepted")
	case pqErr.Code == pqUniqueViolation && pqErr.Constraint == constraintOneLive:
		return &shared.DuplicateBidError{
			ProjectID:    b.ProjectID,
			ContractorID: b.ContractorID,
			// the index does not tell which row it collided with
			ExistingBidID: uuid.Nil,
		}
	case pqErr.Code == pqUniqueViolation:
		return shared.NewConflictError(shared.EntityBid, b.ID, "bid already exists")
	case pqErr.Code == pqForeignKeyViolation && pqErr.Constraint == constraintBidProject:
		return shared.NewNotFoundError(shared.EntityProject, b.ProjectID)
	}
	return err
}

// mapProjectWriteError reports a primary key collision as a conflict
func mapProjectWriteError(err error, id uuid.UUID) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return shared.NewConflictError(shared.EntityProject, id, "project already exists")
	}
	return err
}
