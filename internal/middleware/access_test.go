package middleware

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireGroupMember(t *testing.T) {
	db := setupMiddlewareDB(t)
	groups, _ := newServices(db)
	member, outsider, group, _ := seedMembership(t, db)

	handler := func(c *gin.Context) {
		g, ok := GetGroup(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": g.ID})
	}

	tests := []struct {
		name   string
		userID uint64
		path   string
		status int
	}{
		{"member", member.ID, fmt.Sprintf("/groups/%d", group.ID), http.StatusOK},
		{"outsider", outsider.ID, fmt.Sprintf("/groups/%d", group.ID), http.StatusNotFound},
		{"missing group", member.ID, "/groups/999", http.StatusNotFound},
		{"bad id", member.ID, "/groups/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/groups/:id", withUser(tt.userID), RequireGroupMember(groups), handler)

			w := perform(router, http.MethodGet, tt.path)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, fmt.Sprintf(`{"id":%d}`, group.ID), w.Body.String())
			}
		})
	}

	t.Run("unauthenticated", func(t *testing.T) {
		router := gin.New()
		router.GET("/groups/:id", RequireGroupMember(groups), handler)
		w := perform(router, http.MethodGet, fmt.Sprintf("/groups/%d", group.ID))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireThreadMember(t *testing.T) {
	db := setupMiddlewareDB(t)
	_, threads := newServices(db)
	member, outsider, _, thread := seedMembership(t, db)

	handler := func(c *gin.Context) {
		th, ok := GetThread(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": th.ID})
	}

	tests := []struct {
		name   string
		userID uint64
		path   string
		status int
	}{
		{"member", member.ID, fmt.Sprintf("/threads/%d", thread.ID), http.StatusOK},
		{"outsider", outsider.ID, fmt.Sprintf("/threads/%d", thread.ID), http.StatusNotFound},
		{"missing thread", member.ID, "/threads/999", http.StatusNotFound},
		{"bad id", member.ID, "/threads/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/threads/:id", withUser(tt.userID), RequireThreadMember(threads), handler)

			w := perform(router, http.MethodGet, tt.path)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
