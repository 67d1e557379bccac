package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/anonymous-thread-api/internal/logging"
	"github.com/yukikurage/anonymous-thread-api/internal/models"
	"github.com/yukikurage/anonymous-thread-api/internal/repository"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type publishedEvent struct {
	routingKey string
	payload    any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{routingKey: routingKey, payload: payload})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type serviceTestEnv struct {
	db        *gorm.DB
	auth      *AuthService
	groups    *GroupService
	threads   *ThreadService
	comments  *CommentService
	publisher *recordingPublisher
}

func setupServiceTestEnv(t *testing.T, policy reveal.ContentPolicy) serviceTestEnv {
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

	log := logging.Nop()
	publisher := &recordingPublisher{}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	groups := NewGroupService(groupRepo, reveal.FixedClock(testNow), log)

	return serviceTestEnv{
		db:        db,
		auth:      NewAuthService(userRepo),
		groups:    groups,
		threads:   NewThreadService(threadRepo, commentRepo, groups, publisher, log),
		comments:  NewCommentService(threadRepo, commentRepo, userRepo, publisher, policy, log),
		publisher: publisher,
	}
}

func createServiceUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createServiceGroup(t *testing.T, env serviceTestEnv, owner *models.User) *models.Group {
	t.Helper()
	group, err := env.groups.CreateGroup(context.Background(), CreateGroupInput{
		Name:      "Team",
		Password:  "team2024",
		CreatorID: owner.ID,
	})
	require.NoError(t, err)
	return group
}

func addServiceMember(t *testing.T, db *gorm.DB, groupID, userID uint64) {
	t.Helper()
	require.NoError(t, db.Create(&models.GroupMember{GroupID: groupID, UserID: userID, JoinedAt: testNow}).Error)
}

// createServiceThread inserts a thread directly so windows in the past can be
// set up.
func createServiceThread(t *testing.T, db *gorm.DB, groupID, creatorID uint64, start, end time.Time) *models.Thread {
	t.Helper()
	thread := &models.Thread{
		GroupID:     groupID,
		Title:       "Retro",
		Content:     "How did the sprint go?",
		StartTime:   start,
		EndTime:     end,
		CreatedByID: creatorID,
		CreatedAt:   start,
	}
	require.NoError(t, db.Create(thread).Error)
	return thread
}
