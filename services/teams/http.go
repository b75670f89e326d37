package teams

import (
	"context"
	"errors"
	"io"
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

// Teams is the service the HTTP handler exposes.
type Teams interface {
	ListTeams(ctx context.Context) ([]league.Team, error)
	GetTeam(ctx context.Context, id string) (*TeamDetail, error)
	CreateTeam(ctx context.Context, team league.Team) (league.Team, error)
	UpdateTeam(ctx context.Context, id string, update league.TeamUpdate) error
	DeleteTeam(ctx context.Context, id string) error
	ListPlayers(ctx context.Context, teamID string) ([]league.Player, error)
	GetPlayer(ctx context.Context, id string) (league.Player, error)
	CreatePlayer(ctx context.Context, player league.Player) (league.Player, error)
	UpdatePlayer(ctx context.Context, id string, update league.PlayerUpdate) error
	DeletePlayer(ctx context.Context, id string) error
	SetManager(ctx context.Context, teamID, playerID string) error
	UploadTeamLogo(ctx context.Context, teamID, contentType string, r io.Reader) (string, error)
	UploadPlayerPhoto(ctx context.Context, playerID, contentType string, r io.Reader) (string, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Teams

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler registers the team and player routes.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	admin := auth.RequireRole(league.RoleAdmin)

	r.GET("/teams", h.listTeamsHandler)
	r.GET("/teams/:id", h.getTeamHandler)
	r.POST("/teams", admin, h.createTeamHandler)
	r.PATCH("/teams/:id", admin, h.updateTeamHandler)
	r.DELETE("/teams/:id", admin, h.deleteTeamHandler)
	r.POST("/teams/:id/manager", admin, h.setManagerHandler)
	r.POST("/teams/:id/logo", admin, h.uploadLogoHandler)

	r.GET("/players", h.listPlayersHandler)
	r.GET("/players/:id", h.getPlayerHandler)
	r.POST("/players", admin, h.createPlayerHandler)
	r.PATCH("/players/:id", admin, h.updatePlayerHandler)
	r.DELETE("/players/:id", admin, h.deletePlayerHandler)
	r.POST("/players/:id/photo", admin, h.uploadPhotoHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) listTeamsHandler(c *gin.Context) {
	teams, err := s.Service.ListTeams(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (s *httpHandler) getTeamHandler(c *gin.Context) {
	team, err := s.Service.GetTeam(c, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, team)
}

func (s *httpHandler) createTeamHandler(c *gin.Context) {
	var team league.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	created, err := s.Service.CreateTeam(c, team)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *httpHandler) updateTeamHandler(c *gin.Context) {
	var update league.TeamUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	if err := s.Service.UpdateTeam(c, c.Param("id"), update); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "team updated"})
}

func (s *httpHandler) deleteTeamHandler(c *gin.Context) {
	if err := s.Service.DeleteTeam(c, c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *httpHandler) setManagerHandler(c *gin.Context) {
	var request setManagerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}
	if err := league.Validate(c, request); err != nil {
		respond.Error(c, err)
		return
	}

	if err := s.Service.SetManager(c, c.Param("id"), request.PlayerID); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teamId": c.Param("id"), "managerId": request.PlayerID})
}

func (s *httpHandler) uploadLogoHandler(c *gin.Context) {
	s.handleUpload(c, s.Service.UploadTeamLogo, "logo")
}

func (s *httpHandler) listPlayersHandler(c *gin.Context) {
	players, err := s.Service.ListPlayers(c, c.Query("teamId"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (s *httpHandler) getPlayerHandler(c *gin.Context) {
	player, err := s.Service.GetPlayer(c, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (s *httpHandler) createPlayerHandler(c *gin.Context) {
	var player league.Player
	if err := c.ShouldBindJSON(&player); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	created, err := s.Service.CreatePlayer(c, player)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *httpHandler) updatePlayerHandler(c *gin.Context) {
	var update league.PlayerUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	if err := s.Service.UpdatePlayer(c, c.Param("id"), update); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "player updated"})
}

func (s *httpHandler) deletePlayerHandler(c *gin.Context) {
	if err := s.Service.DeletePlayer(c, c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *httpHandler) uploadPhotoHandler(c *gin.Context) {
	s.handleUpload(c, s.Service.UploadPlayerPhoto, "photo")
}

type uploadFunc func(ctx context.Context, id, contentType string, r io.Reader) (string, error)

func (s *httpHandler) handleUpload(c *gin.Context, upload uploadFunc, field string) {
	header, err := c.FormFile("file")
	if err != nil {
		respond.BadRequest(c, "multipart field 'file' is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		respond.BadRequest(c, "could not read uploaded file")
		return
	}
	defer file.Close()

	url, err := upload(c, c.Param("id"), header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, ErrUploadsDisabled) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{field: url})
}
