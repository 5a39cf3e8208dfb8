package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from the environment.
// This is a simple way to make config accessible globally.
type Config struct {
	Port        string
	MongoURI    string
	MongoDBName string

	JWTSecret string
	JWTExpire time.Duration

	GeminiAPIKey string

	ResendAPIKey string
	EmailFrom    string

	// ChromeNoSandbox is required when the headless browser runs as root
	// (typical in containers).
	ChromeNoSandbox bool
}

// AppConfig holds the application-wide configuration.
var AppConfig Config

// Load populates AppConfig from environment variables. Fatal on the values
// the server cannot run without; everything else has a default or degrades
// to a disabled feature.
func Load() {
	AppConfig = Config{
		Port:            getEnv("PORT", "5000"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDBName:     getEnv("MONGODB_DB", "inventory"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpire:       parseDuration(getEnv("JWT_EXPIRES_IN", "720h")),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		EmailFrom:       getEnv("EMAIL_FROM", "inventory@localhost"),
		ChromeNoSandbox: parseBool(getEnv("CHROME_NO_SANDBOX", "true")),
	}

	if AppConfig.MongoURI == "" {
		log.Fatal("MONGODB_URI is not set")
	}
	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration %q, using 720h", value)
		return 720 * time.Hour
	}
	return d
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return b
}
