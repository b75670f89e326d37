// Package respond writes gin error responses for league errors.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/logging"
)

// Status maps a service error to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, league.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, league.ErrInvalidInput),
		errors.Is(err, league.ErrSameTeam),
		errors.Is(err, league.ErrNotEnoughTeams),
		errors.Is(err, league.ErrPlayerNotInTeam):
		return http.StatusBadRequest
	case errors.Is(err, league.ErrTeamHasPlayers),
		errors.Is(err, league.ErrAlreadyInvited),
		errors.Is(err, league.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, league.ErrInvalidInvite):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error aborts the request with the status for err. Internal errors are
// logged and hidden from the caller.
func Error(c *gin.Context, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		logging.Default().Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(code, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
	c.Abort()
}

// BadRequest aborts with 400 and message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
	c.Abort()
}
