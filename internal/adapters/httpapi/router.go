package httpapi

import (
	"context"
	"net/http"

	"marketplace-bidding-service/internal/domain/shared"
	"marketplace-bidding-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HealthCheck reports whether a dependency is usable
type HealthCheck func(ctx context.Context) error

type RouterParams struct {
	Projects inbound.ProjectService
	Bids     inbound.BidService
	Auth     *Authenticator
	Health   HealthCheck
	Logger   zerolog.Logger
}

// NewRouter configures all Gin routes for the application
func NewRouter(params RouterParams) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestLogger(params.Logger.With().Str("component", "http").Logger()))

	router.GET("/health", healthHandler(params.Health))

	projectHandler := NewProjectHandler(params.Projects, params.Bids, params.Logger)
	bidHandler := NewBidHandler(params.Bids, params.Logger)

	owners := RequireRole(shared.RoleProjectPoster, shared.RoleAdmin)
	contractors := RequireRole(shared.RoleContractor)

	api := router.Group("", Authenticate(params.Auth))

	projects := api.Group("/projects")
	{
		projects.POST("", owners, projectHandler.Create)
		projects.GET("", projectHandler.List)
		projects.GET("/:id", projectHandler.Get)
		projects.POST("/:id/activate", owners, projectHandler.Activate)
		projects.PATCH("/:id/extend-deadline", owners, projectHandler.ExtendDeadline)
		projects.PATCH("/:id/close", owners, projectHandler.Close)
		projects.PATCH("/:id/cancel", owners, projectHandler.Cancel)
		projects.PATCH("/:id/status", owners, projectHandler.UpdateStatus)
		projects.POST("/:id/award", owners, projectHandler.Award)
		projects.GET("/:id/bids", projectHandler.ListBids)
		projects.POST("/:id/bids", contractors, projectHandler.SubmitBid)
	}

	bids := api.Group("/bids")
	{
		bids.GET("/mine", contractors, bidHandler.Mine)
		bids.GET("/:id", bidHandler.Get)
		bids.POST("/:id/accept", owners, bidHandler.Accept)
		bids.POST("/:id/reject", owners, bidHandler.Reject)
		bids.DELETE("/:id", contractors, bidHandler.Withdraw)
	}

	return router
}

func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				JSONError(c, http.StatusServiceUnavailable, err, "unhealthy")
				return
			}
		}
		JSONResponse(c, http.StatusOK, gin.H{"healthy": true}, "ok")
	}
}
