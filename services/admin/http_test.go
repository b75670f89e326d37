package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbf/league-manager/pkg/auth"
	"github.com/nvbf/league-manager/pkg/league"
)

func newRouter(s Admin, caller *auth.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/admin/v1", func(c *gin.Context) {
		if caller != nil {
			auth.SetSession(c, *caller)
		}
	})
	NewHTTPHandler(HTTPOptions{Service: s, Router: g})
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHTTP_InviteAndActivate(t *testing.T) {
	s, _, _ := newService()
	admin := newRouter(s, &adminSession)

	w := send(admin, http.MethodPost, "/admin/v1/invites", `{"email":"new@example.com","role":"user"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var result InviteResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.EmailSent)

	w = send(admin, http.MethodPost, "/admin/v1/invites", `{"email":"new@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = send(admin, http.MethodGet, "/admin/v1/invites", "")
	assert.Equal(t, http.StatusOK, w.Code)

	user := newRouter(s, &auth.Session{UID: "new-uid", Email: "new@example.com", Role: league.RoleUser})
	w = send(user, http.MethodGet, "/admin/v1/invites", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(user, http.MethodPost, "/admin/v1/activate", `{"inviteCode":"`+result.Invite.Code+`","displayName":"New"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(user, http.MethodPost, "/admin/v1/activate", `{"inviteCode":"`+result.Invite.Code+`"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(user, http.MethodGet, "/admin/v1/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	var me Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "New", me.DisplayName)
	assert.True(t, me.Activated)
}

func TestHTTP_SetRole(t *testing.T) {
	s, store, _ := newService()
	require.NoError(t, store.CreateUser(context.Background(), league.User{ID: "u1", Email: "u1@example.com"}))
	admin := newRouter(s, &adminSession)

	w := send(admin, http.MethodPut, "/admin/v1/users/u1/role", `{"role":"admin"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(admin, http.MethodPut, "/admin/v1/users/u1/role", `{"role":"superuser"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(admin, http.MethodGet, "/admin/v1/users", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestHTTP_NoSession(t *testing.T) {
	s, _, _ := newService()
	r := newRouter(s, nil)

	w := send(r, http.MethodGet, "/admin/v1/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
