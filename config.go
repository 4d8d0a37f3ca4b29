package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultOpenAIBaseURL = "https://api.openai.com"

// config is the server configuration, read from the environment after an
// optional .env file.
type config struct {
	DBURL         string
	Port          string
	OpenAIBaseURL string
	CORSOrigins   []string
}

// loadConfig loads .env if present (real environment variables win) and
// validates required settings.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := config{
		DBURL:         os.Getenv("DB_URL"),
		Port:          envOr("PORT", "3000"),
		OpenAIBaseURL: strings.TrimRight(envOr("OPENAI_BASE_URL", defaultOpenAIBaseURL), "/"),
		CORSOrigins:   splitList(envOr("CORS_ORIGINS", "*")),
	}
	if cfg.DBURL == "" {
		return config{}, errors.New("DB_URL is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated setting, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
