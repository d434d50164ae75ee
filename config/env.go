package config

import "os"

// GetEnv returns the value of an environment variable, empty when unset.
// godotenv is loaded once in main before anything calls this.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvDefault returns the value of an environment variable or a fallback.
func GetEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
