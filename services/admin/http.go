package admin

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
	PUT(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Admin is the service the HTTP handler exposes.
type Admin interface {
	CreateInvite(ctx context.Context, adminID string, request CreateInviteRequest) (*InviteResult, error)
	ResendInvite(ctx context.Context, code string) (*InviteResult, error)
	PendingInvites(ctx context.Context) ([]league.Invite, error)
	DeleteInvite(ctx context.Context, code string) error
	ListUsers(ctx context.Context) ([]league.UserWithRole, error)
	SetUserRole(ctx context.Context, actor auth.Session, userID string, request SetRoleRequest) error
	Activate(ctx context.Context, session auth.Session, request ActivateRequest) (*Profile, error)
	Me(ctx context.Context, session auth.Session) (*Profile, error)
	UploadPhoto(ctx context.Context, userID, contentType string, r io.Reader) (string, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Admin

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler registers invite, user and account routes.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	admin := auth.RequireRole(league.RoleAdmin)

	r.POST("/invites", admin, h.createInviteHandler)
	r.GET("/invites", admin, h.listInvitesHandler)
	r.POST("/invites/:code/resend", admin, h.resendInviteHandler)
	r.DELETE("/invites/:code", admin, h.deleteInviteHandler)
	r.GET("/users", admin, h.listUsersHandler)
	r.PUT("/users/:uid/role", admin, h.setRoleHandler)

	r.POST("/activate", h.activateHandler)
	r.GET("/me", h.meHandler)
	r.POST("/me/photo", h.uploadPhotoHandler)
}

type httpHandler struct {
	HTTPOptions
}

func session(c *gin.Context) (auth.Session, bool) {
	s, ok := auth.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		c.Abort()
	}
	return s, ok
}

func (s *httpHandler) createInviteHandler(c *gin.Context) {
	caller, ok := session(c)
	if !ok {
		return
	}
	var request CreateInviteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	result, err := s.Service.CreateInvite(c, caller.UID, request)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *httpHandler) listInvitesHandler(c *gin.Context) {
	invites, err := s.Service.PendingInvites(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invites": invites})
}

func (s *httpHandler) resendInviteHandler(c *gin.Context) {
	result, err := s.Service.ResendInvite(c, c.Param("code"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *httpHandler) deleteInviteHandler(c *gin.Context) {
	if err := s.Service.DeleteInvite(c, c.Param("code")); err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *httpHandler) listUsersHandler(c *gin.Context) {
	users, err := s.Service.ListUsers(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *httpHandler) setRoleHandler(c *gin.Context) {
	caller, ok := session(c)
	if !ok {
		return
	}
	var request SetRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	if err := s.Service.SetUserRole(c, caller, c.Param("uid"), request); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": c.Param("uid"), "role": request.Role})
}

func (s *httpHandler) activateHandler(c *gin.Context) {
	caller, ok := session(c)
	if !ok {
		return
	}
	var request ActivateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respond.BadRequest(c, err.Error())
		return
	}

	profile, err := s.Service.Activate(c, caller, request)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *httpHandler) meHandler(c *gin.Context) {
	caller, ok := session(c)
	if !ok {
		return
	}

	profile, err := s.Service.Me(c, caller)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *httpHandler) uploadPhotoHandler(c *gin.Context) {
	caller, ok := session(c)
	if !ok {
		return
	}
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

	url, err := s.Service.UploadPhoto(c, caller.UID, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, ErrUploadsDisabled) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photoUrl": url})
}
