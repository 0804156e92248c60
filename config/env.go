package config

import "os"

// GetEnvOrDefault returns the environment value for key, or def when unset
func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
