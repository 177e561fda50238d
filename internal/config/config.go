package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	PortalBaseURL string
	CodeBaseURL   string
	HTTPTimeout   time.Duration
	LogLevel      string
	LogFormat     string

	// Exam durations, in seconds. The portal fixes these per exam type;
	// they are configurable here only for staging backends.
	MCQDurationSeconds    int
	CodingDurationSeconds int

	// Submission window: finalization is accepted only when the local
	// wall-clock hour h satisfies WindowStartHour <= h < WindowEndHour.
	WindowStartHour int
	WindowEndHour   int

	// LockWhenWindowClosed controls what happens when a submission is
	// rejected by the window policy: false keeps the session open so the
	// student can retry later (portal behavior), true freezes answers.
	LockWhenWindowClosed bool
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		PortalBaseURL:         getEnv("PORTAL_BASE_URL", "https://backend-production-6281.up.railway.app"),
		CodeBaseURL:           getEnv("CODE_BASE_URL", "http://localhost:5000"),
		HTTPTimeout:           time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "pretty"),
		MCQDurationSeconds:    getEnvInt("MCQ_DURATION_SECONDS", 3600),
		CodingDurationSeconds: getEnvInt("CODING_DURATION_SECONDS", 900),
		WindowStartHour:       getEnvInt("SUBMIT_WINDOW_START_HOUR", 10),
		WindowEndHour:         getEnvInt("SUBMIT_WINDOW_END_HOUR", 18),
		LockWhenWindowClosed:  getEnvBool("LOCK_WHEN_WINDOW_CLOSED", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
