package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lms-api/internal/config"
	aiinfra "github.com/lms-api/internal/infrastructure/ai"
	"github.com/lms-api/internal/infrastructure/dynamo"
	redisinfra "github.com/lms-api/internal/infrastructure/redis"
	s3infra "github.com/lms-api/internal/infrastructure/s3"
	"github.com/lms-api/internal/infrastructure/smtp"
	"github.com/lms-api/internal/infrastructure/sns"
	transporthttp "github.com/lms-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// S3 store for synthesized audio.
	s3Client := s3infra.NewClient(cfg)
	audioStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	// Redis leaderboard cache (optional — disabled when REDIS_ADDR is empty).
	var leaderboardCache *redisinfra.LeaderboardCache
	if redisClient := redisinfra.NewClient(cfg); redisClient != nil {
		leaderboardCache = redisinfra.NewLeaderboardCache(redisClient, cfg.LeaderboardCacheTTL)
	} else {
		log.Println("WARN: Redis not configured, leaderboard cache disabled")
	}

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		OTPRepo:          dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTables.OTPs),
		SessionRepo:      dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		ProgressRepo:     dynamo.NewProgressRepo(dynamoClient, cfg.DynamoTables.Progress),
		CourseRepo:       dynamo.NewCourseRepo(dynamoClient, cfg.DynamoTables.Courses),
		LessonRepo:       dynamo.NewLessonRepo(dynamoClient, cfg.DynamoTables.Lessons),
		QuizRepo:         dynamo.NewQuizRepo(dynamoClient, cfg.DynamoTables.Quizzes),
		DiscussionRepo:   dynamo.NewDiscussionRepo(dynamoClient, cfg.DynamoTables.Discussions),
		SubmissionRepo:   dynamo.NewSubmissionRepo(dynamoClient, cfg.DynamoTables.Submissions),
		AudioStore:       audioStore,
		AIClient:         aiinfra.NewClient(cfg),
		LeaderboardCache: leaderboardCache,
		Mailer:           mailer,
		SMSSender:        smsSender,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
