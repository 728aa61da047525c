package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application-level configuration.
type Config struct {
	APIBaseURL  string // e.g. "http://localhost:5000"
	Language    string // accept-language value for localized content
	SessionPath string // where the login session is persisted
}

// Load reads configuration from environment variables, after merging a .env
// file from the working directory when one exists.
//
//	FOSSILDECK_API      — museum backend base URL (default: http://localhost:5000)
//	FOSSILDECK_LANG     — content language tag (default: "en")
//	FOSSILDECK_SESSION  — session file path (default: ~/.config/fossildeck/session.json)
func Load() (Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	base := os.Getenv("FOSSILDECK_API")
	if base == "" {
		base = "http://localhost:5000"
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid FOSSILDECK_API: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return Config{}, fmt.Errorf("invalid FOSSILDECK_API: only http and https are supported")
	}
	base = strings.TrimRight(parsed.String(), "/")

	lang := strings.TrimSpace(os.Getenv("FOSSILDECK_LANG"))
	if lang == "" {
		lang = "en"
	}

	sessionPath := os.Getenv("FOSSILDECK_SESSION")
	if sessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		sessionPath = filepath.Join(home, ".config", "fossildeck", "session.json")
	}

	return Config{
		APIBaseURL:  base,
		Language:    lang,
		SessionPath: sessionPath,
	}, nil
}
