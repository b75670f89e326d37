package stats

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nvbf/league-manager/pkg/aggregate"
	"github.com/nvbf/league-manager/pkg/respond"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Stats is the service the HTTP handler exposes.
type Stats interface {
	Standings(ctx context.Context) ([]aggregate.StandingsRow, error)
	TopScorers(ctx context.Context, limit int) ([]aggregate.LeaderboardEntry, error)
	Leaderboard(ctx context.Context, category aggregate.Category, query string) ([]aggregate.LeaderboardEntry, error)
	PlayerProfile(ctx context.Context, playerID string) (*PlayerProfile, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Stats

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler registers the read-only statistics routes.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/standings", h.standingsHandler)
	r.GET("/top-scorers", h.topScorersHandler)
	r.GET("/leaderboard", h.leaderboardHandler)
	r.GET("/players/:id", h.playerHandler)
	r.GET("/dashboard", h.dashboardHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) standingsHandler(c *gin.Context) {
	rows, err := s.Service.Standings(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"standings": rows})
}

func (s *httpHandler) topScorersHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.BadRequest(c, "limit must be a positive number")
			return
		}
		limit = n
	}

	scorers, err := s.Service.TopScorers(c, limit)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topScorers": scorers})
}

func (s *httpHandler) leaderboardHandler(c *gin.Context) {
	category := aggregate.Category(c.Query("category"))
	entries, err := s.Service.Leaderboard(c, category, c.Query("q"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

func (s *httpHandler) playerHandler(c *gin.Context) {
	profile, err := s.Service.PlayerProfile(c, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *httpHandler) dashboardHandler(c *gin.Context) {
	dashboard, err := s.Service.Dashboard(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
