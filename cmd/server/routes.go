package main

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/anonymous-thread-api/internal/config"
	"github.com/yukikurage/anonymous-thread-api/internal/constants"
	"github.com/yukikurage/anonymous-thread-api/internal/events"
	"github.com/yukikurage/anonymous-thread-api/internal/handlers"
	"github.com/yukikurage/anonymous-thread-api/internal/logging"
	"github.com/yukikurage/anonymous-thread-api/internal/middleware"
	"github.com/yukikurage/anonymous-thread-api/internal/repository"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
	"github.com/yukikurage/anonymous-thread-api/internal/services"
	"gorm.io/gorm"
)

type routerDeps struct {
	db        *gorm.DB
	store     sessions.Store
	limiter   redis.Scripter
	publisher events.Publisher
	clock     reveal.Clock
	policy    reveal.ContentPolicy
	rateLimit config.RateLimitConfig
	logger    logging.Logger
}

func newRouter(deps routerDeps) *gin.Engine {
	// Initialize repositories
	userRepo := repository.NewUserRepository(deps.db)
	groupRepo := repository.NewGroupRepository(deps.db)
	threadRepo := repository.NewThreadRepository(deps.db)
	commentRepo := repository.NewCommentRepository(deps.db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	groupService := services.NewGroupService(groupRepo, deps.clock, deps.logger)
	threadService := services.NewThreadService(threadRepo, commentRepo, groupService, deps.publisher, deps.logger)
	commentService := services.NewCommentService(threadRepo, commentRepo, userRepo, deps.publisher, deps.policy, deps.logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	threadHandler := handlers.NewThreadHandler(threadService, deps.clock)
	commentHandler := handlers.NewCommentHandler(commentService, deps.clock)
	healthHandler := handlers.NewHealthHandler(deps.db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.logger))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.store))

	// Health check endpoint
	r.GET("/health", healthHandler.Health)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(deps.logger), authHandler.GetCurrentUser)
		}

		// Group routes (protected)
		groups := api.Group("/groups")
		groups.Use(middleware.RequireAuth(deps.logger))
		{
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("", groupHandler.ListGroups)
			groups.POST("/join", groupHandler.JoinGroup)
			groups.GET("/:id", middleware.RequireGroupMember(groupService), groupHandler.GetGroup)
			groups.POST("/:id/regenerate-key", middleware.RequireGroupMember(groupService), groupHandler.RegenerateGroupKey)
			groups.GET("/:id/threads", middleware.RequireGroupMember(groupService), threadHandler.ListThreads)
			groups.POST("/:id/threads", middleware.RequireGroupMember(groupService), threadHandler.CreateThread)
		}

		// Thread routes (protected)
		threads := api.Group("/threads")
		threads.Use(middleware.RequireAuth(deps.logger))
		{
			threads.GET("/:id", middleware.RequireThreadMember(threadService), threadHandler.GetThread)
			threads.GET("/:id/comments", middleware.RequireThreadMember(threadService), commentHandler.ListComments)
			threads.POST("/:id/comments",
				middleware.RequireThreadMember(threadService),
				middleware.RateLimit(deps.rateLimit, deps.limiter, deps.logger),
				commentHandler.CreateComment,
			)
		}
	}

	return r
}
