package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/anonymous-thread-api/internal/config"
	"github.com/yukikurage/anonymous-thread-api/internal/database"
	"github.com/yukikurage/anonymous-thread-api/internal/events"
	"github.com/yukikurage/anonymous-thread-api/internal/logging"
	"github.com/yukikurage/anonymous-thread-api/internal/reveal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger := logging.New(os.Stdout, cfg.IsProduction())

	policy, err := reveal.ParseContentPolicy(cfg.CommentContentPolicy)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		cfg.RedisAddr(),           // Redis address from config
		"",                        // username (empty for default user)
		cfg.RedisPassword,         // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})

	// Redis client for comment rate limiting
	var limiter redis.Scripter
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unreachable, comment rate limiting disabled: %v", err)
		} else {
			limiter = rdb
		}
		cancel()
	}

	// Event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("Failed to connect to message broker: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
	}

	r := newRouter(routerDeps{
		db:        database.GetDB(),
		store:     store,
		limiter:   limiter,
		publisher: publisher,
		clock:     reveal.SystemClock{},
		policy:    policy,
		rateLimit: cfg.RateLimit,
		logger:    logger,
	})

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
