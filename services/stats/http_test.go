package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTP_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := seed(t)

	r := gin.New()
	NewHTTPHandler(HTTPOptions{Service: NewStatsService(f.store), Router: r.Group("/stats/v1")})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/stats/v1/standings")
	require.Equal(t, http.StatusOK, w.Code)
	var standings struct {
		Standings []struct {
			Name   string `json:"name"`
			Points int    `json:"points"`
		} `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &standings))
	require.Len(t, standings.Standings, 2)
	assert.Equal(t, 4, standings.Standings[0].Points)

	assert.Equal(t, http.StatusOK, get("/stats/v1/top-scorers?limit=2").Code)
	assert.Equal(t, http.StatusBadRequest, get("/stats/v1/top-scorers?limit=abc").Code)
	assert.Equal(t, http.StatusOK, get("/stats/v1/leaderboard?category=assists").Code)
	assert.Equal(t, http.StatusBadRequest, get("/stats/v1/leaderboard?category=saves").Code)
	assert.Equal(t, http.StatusOK, get("/stats/v1/players/"+f.ana).Code)
	assert.Equal(t, http.StatusNotFound, get("/stats/v1/players/missing").Code)
	assert.Equal(t, http.StatusOK, get("/stats/v1/dashboard").Code)
}
