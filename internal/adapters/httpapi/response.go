package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"marketplace-bidding-service/internal/domain/shared"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	body := gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	}
	if details := errorDetails(err); details != nil {
		body["details"] = details
	}
	c.JSON(status, body)
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden, "operation not permitted"
	case errors.Is(err, shared.ErrInvalidStateTransition):
		return http.StatusConflict, "operation not allowed in current state"
	case errors.Is(err, shared.ErrDuplicateBid):
		return http.StatusConflict, "contractor already has a live bid on this project"
	case errors.Is(err, shared.ErrConflict):
		return http.StatusConflict, "concurrent update conflict, refetch and retry"
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// errorDetails exposes the structured parts of typed domain errors
func errorDetails(err error) gin.H {
	var (
		validation *shared.ValidationError
		transition *shared.InvalidStateTransitionError
		duplicate  *shared.DuplicateBidError
		conflict   *shared.ConflictError
		notFound   *shared.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		return gin.H{"field": validation.Field, "reason": validation.Reason}
	case errors.As(err, &transition):
		details := gin.H{
			"entity":         transition.Entity,
			"id":             transition.ID.String(),
			"operation":      transition.Operation,
			"current_status": transition.Current,
		}
		if transition.Target != "" {
			details["target_status"] = transition.Target
		}
		return details
	case errors.As(err, &duplicate):
		return gin.H{"project_id": duplicate.ProjectID.String(), "existing_bid_id": duplicate.ExistingBidID.String()}
	case errors.As(err, &conflict):
		return gin.H{"entity": conflict.Entity, "id": conflict.ID.String()}
	case errors.As(err, &notFound):
		return gin.H{"entity": notFound.Entity, "id": notFound.ID.String()}
	}
	return nil
}

// respondError writes the mapped error and logs it at a level matching the status
func respondError(c *gin.Context, logger zerolog.Logger, handlerName string, err error) {
	status, message := MapErrorToHTTP(err)
	JSONError(c, status, err, message)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("handler", handlerName).Int("status", status).Msg("Request failed")
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, logger zerolog.Logger, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	logger.Warn().Err(err).Str("handler", handlerName).Msg("Binding error")
}
