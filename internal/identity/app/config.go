package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string        // JWT iss claim (default: identity)
	TokenTTL       time.Duration // Session token lifetime (default: 15m)
	SigningKeyFile string        // Optional: Ed25519 PEM; generated if missing, ephemeral key when empty
	BootstrapToken string        // Optional: token required to perform bootstrap
	PublicBaseURL  string        // Prefix for links in notifications (default: http://localhost:8080)

	DatabaseFile string // Path to SQLite database file (default: ./identity.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	CacheBackend  string // memory or redis (default: memory)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MailMode      string // log or smtp (default: log)
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
	MailRate      float64 // Outbound messages per second (default: 5)
	MailBurst     int     // (default: 5)
	MailQueueSize int     // (default: 256)

	S3Endpoint  string // Optional: S3 compatible endpoint, empty for AWS
	S3Region    string
	S3Bucket    string // Photos are disabled when empty
	S3AccessKey string
	S3SecretKey string
	PhotoURLTTL time.Duration // Presigned URL lifetime (default: 15m)

	InvitationPageSize int // (default: 50)
	ExportPageSize     int // (default: 100)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:         getEnvOrDefault("IDENTITY_ISSUER", "identity"),
		TokenTTL:       getEnvDurationOrDefault("TOKEN_TTL", 15*time.Minute),
		SigningKeyFile: os.Getenv("SIGNING_KEY_FILE"),
		BootstrapToken: os.Getenv("BOOTSTRAP_TOKEN"), // Optional: if set, required to perform bootstrap
		PublicBaseURL:  getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "identity.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		CacheBackend:  getEnvOrDefault("CACHE_BACKEND", "memory"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),

		MailMode:      getEnvOrDefault("MAIL_MODE", "log"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailRate:      getEnvFloatOrDefault("MAIL_RATE", 5),
		MailBurst:     getEnvIntOrDefault("MAIL_BURST", 5),
		MailQueueSize: getEnvIntOrDefault("MAIL_QUEUE_SIZE", 256),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		PhotoURLTTL: getEnvDurationOrDefault("PHOTO_URL_TTL", 15*time.Minute),

		InvitationPageSize: getEnvIntOrDefault("INVITATION_PAGE_SIZE", 50),
		ExportPageSize:     getEnvIntOrDefault("EXPORT_PAGE_SIZE", 100),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
