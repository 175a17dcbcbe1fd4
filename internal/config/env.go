package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	CORSAllowedOrigins []string

	// JWTSecret empty disables admin auth (admin routes become public).
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	SeedEnabled bool
	AutoMigrate bool
}

// LoadEnv reads configuration from the process environment. A .env file in the
// working directory is loaded first when present.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DBHost:     getEnv("DB_HOST", "127.0.0.1:3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBName:     getEnv("DB_NAME", "transport_app"),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		JWTSecret:         strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),

		SeedEnabled: getBool("SEED_ENABLED", false),
		AutoMigrate: getBool("AUTO_MIGRATE", true),
	}
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
