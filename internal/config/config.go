package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr string

	JobsAPIBaseURL string
	JobsAPITimeout time.Duration

	ToolsAPIBaseURL string
	ToolsAPITimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	NATSURL         string
	NATSConnTimeout time.Duration

	// Cron expression for background listing refresh; empty disables it
	// (the default: the UI fetches per interaction).
	RefreshSchedule string

	PageSize int

	OTLPEndpoint string
	ServiceName  string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		ListenAddr: getEnvString("LISTEN_ADDR", ":3000"),

		JobsAPIBaseURL: getEnvString("JOBS_API_BASE_URL", "http://localhost:8000/api"),
		JobsAPITimeout: getEnvDuration("JOBS_API_TIMEOUT", 10*time.Second),

		ToolsAPIBaseURL: getEnvString("TOOLS_API_BASE_URL", "http://localhost:8000/api/tools"),
		ToolsAPITimeout: getEnvDuration("TOOLS_API_TIMEOUT", 60*time.Second),

		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		NATSURL:         getEnvString("NATS_URL", ""),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		RefreshSchedule: getEnvString("REFRESH_SCHEDULE", ""),

		PageSize: getEnvInt("PAGE_SIZE", 24),

		OTLPEndpoint: getEnvString("OTLP_ENDPOINT", ""),
		ServiceName:  getEnvString("SERVICE_NAME", "easyapply-listing"),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
