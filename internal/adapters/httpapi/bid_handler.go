package httpapi

import (
	"net/http"

	"marketplace-bidding-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BidHandler serves the /bids routes
type BidHandler struct {
	bids   inbound.BidService
	logger zerolog.Logger
}

func NewBidHandler(bids inbound.BidService, logger zerolog.Logger) *BidHandler {
	return &BidHandler{
		bids:   bids,
		logger: logger.With().Str("component", "bid_handler").Logger(),
	}
}

// Mine handles GET /bids/mine
func (h *BidHandler) Mine(c *gin.Context) {
	actor, _ := actorFrom(c)
	bids, err := h.bids.ListForContractor(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.logger, "Mine", err)
		return
	}
	JSONResponse(c, http.StatusOK, newListResponse(bids), "bids retrieved")
}

// Get handles GET /bids/:id
func (h *BidHandler) Get(c *gin.Context) {
	bidID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	actor, _ := actorFrom(c)

	b, err := h.bids.GetBid(c.Request.Context(), actor, bidID)
	if err != nil {
		respondError(c, h.logger, "Get", err)
		return
	}
	JSONResponse(c, http.StatusOK, b, "bid retrieved")
}

// Accept handles POST /bids/:id/accept
func (h *BidHandler) Accept(c *gin.Context) {
	bidID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	actor, _ := actorFrom(c)

	p, b, err := h.bids.Accept(c.Request.Context(), actor, bidID)
	if err != nil {
		respondError(c, h.logger, "Accept", err)
		return
	}
	JSONResponse(c, http.StatusOK, AwardResponse{Project: p, Bid: b}, "bid accepted")
}

// Reject handles POST /bids/:id/reject. The body is optional.
func (h *BidHandler) Reject(c *gin.Context) {
	bidID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	var req RejectBidRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBindError(c, h.logger, "Reject", err)
			return
		}
	}
	actor, _ := actorFrom(c)

	b, err := h.bids.Reject(c.Request.Context(), actor, bidID, req.Reason)
	if err != nil {
		respondError(c, h.logger, "Reject", err)
		return
	}
	JSONResponse(c, http.StatusOK, b, "bid rejected")
}

// Withdraw handles DELETE /bids/:id
func (h *BidHandler) Withdraw(c *gin.Context) {
	bidID, ok := pathID(c, h.logger, "id")
	if !ok {
		return
	}
	actor, _ := actorFrom(c)

	b, err := h.bids.Withdraw(c.Request.Context(), actor, bidID)
	if err != nil {
		respondError(c, h.logger, "Withdraw", err)
		return
	}
	JSONResponse(c, http.StatusOK, b, "bid withdrawn")
}
