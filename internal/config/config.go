package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
// It is constructed once at process start and passed by reference into each
// component's constructor — nothing reads ambient process state at call time.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	OTPValidity time.Duration // one-time code validity window
	SessionTTL  time.Duration // session lifetime

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	SNSRegion    string

	RedisAddr           string // empty disables the leaderboard cache
	RedisPassword       string
	RedisDB             int
	LeaderboardCacheTTL time.Duration

	LessonGeneratorURL string
	QuizGeneratorURL   string
	AITutorURL         string
	TTSServiceURL      string
	AITimeout          time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each collection.
type DynamoTables struct {
	Users       string
	OTPs        string
	Sessions    string
	Progress    string
	Courses     string
	Lessons     string
	Quizzes     string
	Discussions string
	Submissions string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Users:       getEnv("DYNAMO_TABLE_USERS", "users"),
			OTPs:        getEnv("DYNAMO_TABLE_OTPS", "otps"),
			Sessions:    getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Progress:    getEnv("DYNAMO_TABLE_PROGRESS", "progress"),
			Courses:     getEnv("DYNAMO_TABLE_COURSES", "courses"),
			Lessons:     getEnv("DYNAMO_TABLE_LESSONS", "lessons"),
			Quizzes:     getEnv("DYNAMO_TABLE_QUIZZES", "quizzes"),
			Discussions: getEnv("DYNAMO_TABLE_DISCUSSIONS", "discussions"),
			Submissions: getEnv("DYNAMO_TABLE_SUBMISSIONS", "submissions"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "lms-media"),

		OTPValidity: getEnvDuration("OTP_VALIDITY", 10*time.Minute),
		SessionTTL:  getEnvDuration("SESSION_TTL", 30*24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "us-east-1"),

		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		LeaderboardCacheTTL: getEnvDuration("LEADERBOARD_CACHE_TTL", 30*time.Second),

		LessonGeneratorURL: getEnv("LESSON_GENERATOR_URL", ""),
		QuizGeneratorURL:   getEnv("QUIZ_GENERATOR_URL", ""),
		AITutorURL:         getEnv("AI_TUTOR_URL", ""),
		TTSServiceURL:      getEnv("TTS_SERVICE_URL", ""),
		AITimeout:          getEnvDuration("AI_TIMEOUT", 60*time.Second),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
