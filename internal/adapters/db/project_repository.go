package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const projectColumns = `id, owner_id, title, description, category, budget_min, budget_max, location,
		bidding_deadline, status, cancellation_reason, awarded_bid_id, created_at, updated_at`

// ProjectRepository implements outbound.ProjectRepository on PostgreSQL
type ProjectRepository struct {
	q sqlx.ExtContext
}

// NewProjectRepository creates a project repository outside any transaction
func NewProjectRepository(conn *Connection) *ProjectRepository {
	return &ProjectRepository{q: conn.GetDB()}
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (id, owner_id, title, description, category, budget_min, budget_max, location,
			bidding_deadline, status, cancellation_reason, awarded_bid_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.q.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Title,
		p.Description,
		p.Category,
		p.BudgetMin,
		p.BudgetMax,
		p.Location,
		p.BiddingDeadline,
		p.Status,
		p.CancellationReason,
		p.AwardedBidID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapProjectWriteError(err, p.ID); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return r.get(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

// GetForUpdate locks the project row until the surrounding transaction ends
func (r *ProjectRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	return r.get(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProjectRepository) get(ctx context.Context, query string, id uuid.UUID) (*project.Project, error) {
	var p project.Project
	if err := sqlx.GetContext(ctx, r.q, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.NewNotFoundError(shared.EntityProject, id)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// List retrieves projects matching the filter, newest first
func (r *ProjectRepository) List(ctx context.Context, filter outbound.ProjectFilter) ([]*project.Project, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		args = append(args, filter.PageSize, (page-1)*filter.PageSize)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	projects := []*project.Project{}
	if err := sqlx.SelectContext(ctx, r.q, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListDueForSweep returns open projects whose deadline is at or before now,
// earliest deadline first
func (r *ProjectRepository) ListDueForSweep(ctx context.Context, now time.Time, limit int) ([]*project.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE status IN ('active', 'bidding_closed') AND bidding_deadline <= $1
		ORDER BY bidding_deadline ASC
		LIMIT $2
	`

	projects := []*project.Project{}
	if err := sqlx.SelectContext(ctx, r.q, &projects, query, now, limit); err != nil {
		return nil, fmt.Errorf("failed to list projects due for sweep: %w", err)
	}
	return projects, nil
}

// UpdateIfStatus writes p only while the stored status equals expected
func (r *ProjectRepository) UpdateIfStatus(ctx context.Context, p *project.Project, expected project.Status) error {
	query := `
		UPDATE projects
		SET title = $3, description = $4, category = $5, budget_min = $6, budget_max = $7, location = $8,
			bidding_deadline = $9, status = $10, cancellation_reason = $11, awarded_bid_id = $12, updated_at = $13
		WHERE id = $1 AND status = $2
	`

	result, err := r.q.ExecContext(ctx, query,
		p.ID,
		expected,
		p.Title,
		p.Description,
		p.Category,
		p.BudgetMin,
		p.BudgetMax,
		p.Location,
		p.BiddingDeadline,
		p.Status,
		p.CancellationReason,
		p.AwardedBidID,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return r.casFailure(ctx, p.ID, expected)
	}

	return nil
}

// casFailure tells a missing row apart from a lost compare-and-swap
func (r *ProjectRepository) casFailure(ctx context.Context, id uuid.UUID, expected project.Status) error {
	var current project.Status
	err := sqlx.GetContext(ctx, r.q, &current, `SELECT status FROM projects WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return shared.NewNotFoundError(shared.EntityProject, id)
	}
	if err != nil {
		return fmt.Errorf("failed to read project status: %w", err)
	}
	return shared.NewConflictError(shared.EntityProject, id,
		fmt.Sprintf("status changed from %s to %s", expected, current))
}
