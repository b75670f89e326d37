package matches

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvbf/league-manager/pkg/auth"
	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/respond"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PATCH(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Matches is the service the HTTP handler exposes.
type Matches interface {
	ListMatches(ctx context.Context, status league.MatchStatus) ([]league.Match, error)
	GetMatch(ctx context.Context, id string) (league.Match, error)
	CreateMatch(ctx context.Context, request CreateMatchRequest) (league.Match, error)
	UpdateMatch(ctx context.Context, id string, request UpdateMatchRequest) (league.Match, error)
	DeleteMatch(ctx context.Context, id string) error
	GenerateFixtures(ctx context.Context) ([]league.Match, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Matches

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler registers the match and fixture routes.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	admin := auth.RequireRole(league.RoleAdmin)

	r.GET("/matches", h.listHandler)
	r.GET("/matches/:id", h.getHandler)
	r.POST("/matches", admin, h.createHandler)
	r.PATCH("/matches/:id", admin, h.updateHandler)
	r.DELETE("/matches/:id", admin, h.deleteHandler)
	r.POST("/fixtures/generate", admin, h.generateHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) listHandler(c *gin.Context) {
	matches, err := h.Service.ListMatches(c, league.MatchStatus(c.Query("status")))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (h *httpHandler) getHandler(c *gin.Context) {
	match, err := h.Service.GetMatch(c, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *httpHandler) createHandler(c *gin.Context) {
	var request CreateMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	match, err := h.Service.CreateMatch(c, request)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

func (h *httpHandler) updateHandler(c *gin.Context) {
	var request UpdateMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	match, err := h.Service.UpdateMatch(c, c.Param("id"), request)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

func (h *httpHandler) deleteHandler(c *gin.Context) {
	if err := h.Service.DeleteMatch(c, c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *httpHandler) generateHandler(c *gin.Context) {
	fixtures, err := h.Service.GenerateFixtures(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Fixtures generated",
		"count":    len(fixtures),
		"fixtures": fixtures,
	})
}
