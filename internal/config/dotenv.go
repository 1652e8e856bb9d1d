package config

import (
	"os"

	"github.com/joho/godotenv"
)

// dotenvFiles are loaded before the YAML config is read, in priority order.
// .env.local carries per-developer overrides and is gitignored.
var dotenvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads the env files that exist. godotenv never overwrites
// variables that are already set, so the effective precedence is:
// OS environment > .env.local > .env. Returns the files actually loaded.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	return loaded
}
