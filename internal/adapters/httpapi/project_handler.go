package httpapi

import (
	"fmt"
	"net/http"

	"marketplace-bidding-service/internal/domain/project"
	"marketplace-bidding-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProjectHandler serves the /projects routes
type ProjectHandler struct {
	projects inbound.ProjectService
	bids     inbound.BidService
	logger   zerolog.Logger
}

func NewProjectHandler(projects inbound.ProjectService, bids inbound.BidService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		bids:     bids,
		logger:   logger.With().Str("component", "project_handler").Logger(),
	}
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, h.logger, "Create", err)
		return
	}
	actor, _ := actorFrom(c)

	p, err := h.projects.CreateProject(c.Request.Context(), actor, inbound.CreateProjectRequest{
		Title:           req.Title,
		Description:     req.Description,
		Category:        project.Category(req.Category),
		BudgetMin:       req.BudgetMin,
		BudgetMax:       req.BudgetMax,
		Location:        req.Location,
		BiddingDeadline: req.BiddingDeadline,
	})
	if err != nil {
		respondError(c, h.logger, "Create", err)
		return
	}
	JSONResponse(c, http.StatusCreated, p, "project created")
}

// List handles GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	var query ListProjectsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		HandleBindError(c, h.logger, "List", err)
		return
	}

	req := inbound.ListProjectsRequest{Page: query.Page, PageSize: query.PageSize}
	if query.OwnerID != "" {
		ownerID := uuid.MustParse(query.OwnerID)
		req.OwnerID = &ownerID
	}
	if query.Status != "" {
		status := project.Status(query.Status)
		req.Status = &status
	}
	if query.Category != "" {
		category := project.Category(query.Category)
		req.Category = &category
	}

	projects, err := h.projects.ListProjects(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, "List", err)
		return
	}
	JSONResponse(c, http.StatusOK, newListResponse(projects), "projects retrieved")
}

// Get handles GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	p, err := h.projects.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, h.logger, "Get", err)
		return
	}
	JSONResponse(c, http.StatusOK, p, "project retrieved")
}

// Activate handles POST /projects/:id/activate
func (h *ProjectHandler) Activate(c *gin.Context) {
	h.transition(c, "Activate", "project activated", func(c *gin.Context, projectID uuid.UUID) (*project.Project, error) {
		actor, _ := actorFrom(c)
		return h.projects.Activate(c.Request.Context(), actor, projectID)
	})
}

// ExtendDeadline handles PATCH /projects/:id/extend-deadline
func (h *ProjectHandler) ExtendDeadline(c *gin.Context) {
	var req ExtendDeadlineRequest
	h.transitionWithBody(c, "ExtendDeadline", "bidding deadline extended", &req, func(c *gin.Context, projectID uuid.UUID) (*project.Project, error) {
		actor, _ := actorFrom(c)
		return h.projects.ExtendDeadline(c.Request.Context(), actor, projectID, req.BiddingDeadline)
	})
}

// Close handles PATCH /projects/:id/close
func (h *ProjectHandler) Close(c *gin.Context) {
	h.transition(c, "Close", "bidding closed", func(c *gin.Context, projectID uuid.UUID) (*project.Project, error) {
		actor, _ := actorFrom(c)
		return h.projects.Close(c.Request.Context(), actor, projectID)
	})
}

// Cancel handles PATCH /projects/:id/cancel
func (h *ProjectHandler) Cancel(c *gin.Context) {
	var req CancelProjectRequest
	h.transitionWithBody(c, "Cancel", "project cancelled", &req, func(c *gin.Context, projectID uuid.UUID) (*project.Project, error) {
		actor, _ := actorFrom(c)
		return h.projects.Cancel(c.Request.Context(), actor, projectID, req.Reason)
	})
}

// UpdateStatus handles PATCH /projects/:id/status
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	h.transitionWithBody(c, "UpdateStatus", "project status updated", &req, func(c *gin.Context, projectID uuid.UUID) (*project.Project, error) {
		actor, _ := actorFrom(c)
		return h.projects.UpdateStatus(c.Request.Context(), actor, projectID, inbound.UpdateStatusRequest{
			Status: project.Status(req.Status),
			Reason: req.Reason,
		})
	})
}

// Award handles POST /projects/:id/award
func (h *ProjectHandler) Award(c *gin.Context) {
	projectID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	var req AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, h.logger, "Award", err)
		return
	}
	actor, _ := actorFrom(c)

	p, b, err := h.projects.Award(c.Request.Context(), actor, projectID, uuid.MustParse(req.BidID))
	if err != nil {
		respondError(c, h.logger, "Award", err)
		return
	}
	JSONResponse(c, http.StatusOK, AwardResponse{Project: p, Bid: b}, "project awarded")
}

// ListBids handles GET /projects/:id/bids
func (h *ProjectHandler) ListBids(c *gin.Context) {
	projectID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	actor, _ := actorFrom(c)

	bids, err := h.bids.ListForProject(c.Request.Context(), actor, projectID)
	if err != nil {
		respondError(c, h.logger, "ListBids", err)
		return
	}
	JSONResponse(c, http.StatusOK, newListResponse(bids), "bids retrieved")
}

// SubmitBid handles POST /projects/:id/bids
func (h *ProjectHandler) SubmitBid(c *gin.Context) {
	projectID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	var req SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, h.logger, "SubmitBid", err)
		return
	}
	actor, _ := actorFrom(c)

	b, err := h.bids.Submit(c.Request.Context(), actor, inbound.SubmitBidRequest{
		ProjectID:    projectID,
		Amount:       req.Amount,
		TimelineDays: req.TimelineDays,
		Proposal:     req.Proposal,
	})
	if err != nil {
		respondError(c, h.logger, "SubmitBid", err)
		return
	}
	JSONResponse(c, http.StatusCreated, b, "bid submitted")
}

type projectOp func(c *gin.Context, projectID uuid.UUID) (*project.Project, error)

func (h *ProjectHandler) transition(c *gin.Context, handlerName, message string, op projectOp) {
	projectID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	p, err := op(c, projectID)
	if err != nil {
		respondError(c, h.logger, handlerName, err)
		return
	}
	JSONResponse(c, http.StatusOK, p, message)
}

func (h *ProjectHandler) transitionWithBody(c *gin.Context, handlerName, message string, body any, op projectOp) {
	projectID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	if err := c.ShouldBindJSON(body); err != nil {
		HandleBindError(c, h.logger, handlerName, err)
		return
	}
	p, err := op(c, projectID)
	if err != nil {
		respondError(c, h.logger, handlerName, err)
		return
	}
	JSONResponse(c, http.StatusOK, p, message)
}

// pathID parses a uuid path parameter, answering 400 when it is malformed
func pathID(c *gin.Context, logger zerolog.Logger, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		JSONError(c, http.StatusBadRequest, fmt.Errorf("invalid %s %q: %w", name, raw, err), "invalid id")
		logger.Warn().Str("param", name).Str("value", raw).Msg("Invalid path id")
		return uuid.Nil, false
	}
	return id, true
}
