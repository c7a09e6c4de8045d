package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// Redis (verification code store)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Kafka (alert event stream); empty brokers disable publishing
	KafkaBrokers []string
	KafkaTopic   string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "2525"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	var brokers []string
	if raw := getEnv("KAFKA_BROKERS", ""); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/preparedhub?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		KafkaBrokers: brokers,
		KafkaTopic:   getEnv("KAFKA_TOPIC", "preparedhub.alerts"),

		// Email settings
		SMTPHost:     getEnv("SMTP_HOST", "sandbox.smtp.mailtrap.io"),
		SMTPPort:     smtpPort,
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@preparedhub.in"),
		FromName:     getEnv("FROM_NAME", "PreparedHub"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
