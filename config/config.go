package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port        string
	AppEnv      string
	CorsOrigins string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTKey              string
	JWTIssuer           string
	JWTAudience         string
	JWTExpiresInMinutes int
	SaltRound           int
	TaxPercent          float64

	EmailProvider    string // sendgrid | smtp | webhook | log
	SendGridAPIKey   string
	EmailSender      string
	EmailSenderName  string
	SMTPHost         string
	SMTPPort         string
	Password         string // SMTP Password
	NotifyWebhookURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	DefaultAdminName     string
	DefaultAdminUsername string
	DefaultAdminEmail    string
	DefaultAdminPassword string

	SeedFakeData    bool
	SeedUsers       int
	SeedInstructors int
	SeedCourses     int

	DigestCron string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:        getEnv("PORT", "3000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		CorsOrigins: getEnv("CORS_ORIGINS", "*"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "byway"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTKey:              getEnv("JWT_SECRET_KEY", "defaultSecret"),
		JWTIssuer:           getEnv("JWT_ISSUER", "byway"),
		JWTAudience:         getEnv("JWT_AUDIENCE", "byway-clients"),
		JWTExpiresInMinutes: getEnvInt("JWT_EXPIRES_IN_MINUTES", 60),
		SaltRound:           getEnvInt("SALT_ROUND", 10),
		TaxPercent:          getEnvFloat("TAX_PERCENT", 15),

		EmailProvider:    strings.ToLower(getEnv("EMAIL_PROVIDER", "log")),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailSender:      getEnv("EMAIL_SENDER", "no-reply@byway.local"),
		EmailSenderName:  getEnv("EMAIL_SENDER_NAME", "Byway Learning"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		Password:         getEnv("SMTP_PASSWORD", ""),
		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 600)) * time.Second,

		DefaultAdminName:     getEnv("DEFAULT_ADMIN_NAME", "Byway Admin"),
		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@byway.local"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),

		SeedFakeData:    getEnvBool("SEED_FAKE_DATA", false),
		SeedUsers:       getEnvInt("SEED_USERS", 20),
		SeedInstructors: getEnvInt("SEED_INSTRUCTORS", 10),
		SeedCourses:     getEnvInt("SEED_COURSES", 30),

		DigestCron: getEnv("DIGEST_CRON", "0 7 * * *"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DefaultAdminPassword == "admin123" {
		log.Println("Warning: Using default DEFAULT_ADMIN_PASSWORD. Update it in your environment.")
	}

	return AppConfig
}

// IsProduction reports whether APP_ENV selects production behaviour
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to float: %v", key, err)
		return defaultValue
	}
	return f
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}
