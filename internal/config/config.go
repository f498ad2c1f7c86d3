package config

import "os"

type Config struct {
	Port        string
	DatabaseDSN string
	DataDir     string
	Env         string
	LogLevel    string
}

// Load reads configuration from environment with defaults. An empty
// DatabaseDSN selects the embedded sqlite database under DataDir.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		DataDir:     getEnv("DATA_DIR", "."),
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
