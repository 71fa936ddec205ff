package config

import (
	"os"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	// Storage configuration
	StorageBackend string // "local" or "s3"
	ShareDir       string
	S3Bucket       string
	S3Region       string
	S3AccessKeyID  string
	S3SecretKey    string
	// Access control
	AllowedGroups []string
	// When true, a non-operational task error terminates the process after
	// the failed task is recorded
	ExitOnUnknownError bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		ShareDir:       getEnv("SHARE_DIR", "/share"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "eu-west-1"),
		S3AccessKeyID:  getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("S3_SECRET_ACCESS_KEY", ""),
		AllowedGroups:  splitList(getEnv("ALLOWED_USER_GROUPS", "org-wf")),
		// Default to a logged warning; critical deployments opt in to a
		// hard exit
		ExitOnUnknownError: getEnv("EXIT_ON_UNKNOWN_ERROR", "false") == "true",
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
