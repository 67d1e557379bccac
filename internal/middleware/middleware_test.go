package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	"github.com/yukikurage/anonymous-thread-api/internal/events"
	"github.com/yukikurage/anonymous-thread-api/internal/logging"
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"github.com/yukikurage/anonymous-thread-api/internal/repository"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"github.com/yukikurage/anonymous-thread-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupMiddlewareDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Thread{},
		&models.Comment{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func newServices(db *gorm.DB) (*services.GroupService, *services.ThreadService) {
	groups := services.NewGroupService(repository.NewGroupRepository(db), reveal.FixedClock(testNow), logging.Nop())
	threads := services.NewThreadService(
		repository.NewThreadRepository(db),
		repository.NewCommentRepository(db),
		groups,
		events.NopPublisher{},
		logging.Nop(),
	)
	return groups, threads
}

// seedMembership creates a group owned by a member plus an outsider and an
// active thread in the group.
func seedMembership(t *testing.T, db *gorm.DB) (member, outsider models.User, group models.Group, thread models.Thread) {
	t.Helper()

	member = models.User{Email: "member@example.com", Username: "member", PasswordHash: "x"}
	outsider = models.User{Email: "outsider@example.com", Username: "outsider", PasswordHash: "x"}
	require.NoError(t, db.Create(&member).Error)
	require.NoError(t, db.Create(&outsider).Error)

	group = models.Group{Name: "Team", GroupKey: "aaaaaa-bbbbbb-cccccc", PasswordHash: "x", CreatedByID: member.ID}
	require.NoError(t, db.Create(&group).Error)
	require.NoError(t, db.Create(&models.GroupMember{GroupID: group.ID, UserID: member.ID, JoinedAt: testNow}).Error)

	thread = models.Thread{
		GroupID:     group.ID,
		Title:       "Retro",
		Content:     "content",
		StartTime:   testNow.Add(-time.Hour),
		EndTime:     testNow.Add(time.Hour),
		CreatedByID: member.ID,
	}
	require.NoError(t, db.Create(&thread).Error)
	return member, outsider, group, thread
}

// withUser stands in for RequireAuth by placing a user id in the context.
func withUser(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func newSessionRouter() *gin.Engine {
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions(constants.SessionCookieName, store))
	return router
}

func perform(router http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}
