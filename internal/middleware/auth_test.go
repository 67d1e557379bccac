package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	"github.com/yukikurage/anonymous-thread-api/internal/logging"
)

func TestRequireAuth(t *testing.T) {
	router := newSessionRouter()
	router.GET("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, uint64(7))
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})
	router.GET("/me", RequireAuth(logging.Nop()), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	w := perform(router, http.MethodGet, "/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")

	login := perform(router, http.MethodGet, "/login")
	require.Equal(t, http.StatusNoContent, login.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, cookie := range login.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7}`, w.Body.String())
}

func TestRequireAuth_MalformedSessionIsCleared(t *testing.T) {
	var buf bytes.Buffer
	router := newSessionRouter()
	router.Use(RequestLogger(logging.New(&buf, false)))
	router.GET("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, "7")
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})
	router.GET("/me", RequireAuth(logging.New(&buf, false)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	login := perform(router, http.MethodGet, "/login")
	require.Equal(t, http.StatusNoContent, login.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(constants.HeaderRequestID, "req-auth-1")
	for _, cookie := range login.Result().Cookies() {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	assert.Contains(t, buf.String(), "discarding session with malformed user id")
	assert.Contains(t, buf.String(), "request_id=req-auth-1")
	assert.NotEmpty(t, w.Result().Cookies(), "cleared session should be written back")
}

func TestGetUserID(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  uint64
		ok    bool
	}{
		{"uint64", uint64(3), 3, true},
		{"uint", uint(4), 4, true},
		{"int", 5, 5, true},
		{"int64", int64(6), 6, true},
		{"zero", uint64(0), 0, false},
		{"negative", -1, 0, false},
		{"string", "7", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Set(constants.ContextKeyUserID, tt.value)

			got, ok := GetUserID(c)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetUserID(c)
	assert.False(t, ok)
}
