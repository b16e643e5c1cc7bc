package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cesargomez89/icho/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port            string
	DBPath          string
	LibraryDir      string
	PlaylistsDir    string
	MusicBrainzURL  string
	CoverArtURL     string
	ScrapingEnabled bool
	TagWorkers      int
	LogLevel        string
	LogFormat       string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	home, _ := os.UserHomeDir()
	defaultLibrary := filepath.Join(home, "Music")
	defaultPlaylists := filepath.Join(home, ".config", "icho", "playlists")

	return &Config{
		Port:            getEnv("PORT", constants.DefaultPort),
		DBPath:          getEnv("DB_PATH", constants.DefaultDBPath),
		LibraryDir:      getEnv("LIBRARY_DIR", defaultLibrary),
		PlaylistsDir:    getEnv("PLAYLISTS_DIR", defaultPlaylists),
		MusicBrainzURL:  getEnv("MUSICBRAINZ_URL", constants.DefaultMusicBrainzURL),
		CoverArtURL:     getEnv("COVERART_URL", constants.DefaultCoverArtURL),
		ScrapingEnabled: getEnvBool("SCRAPING_ENABLED", true),
		TagWorkers:      getEnvInt("TAG_WORKERS", constants.DefaultTagWorkers),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.LibraryDir == "" {
		errors = append(errors, "LIBRARY_DIR cannot be empty")
	}

	if c.PlaylistsDir == "" {
		errors = append(errors, "PLAYLISTS_DIR cannot be empty")
	}

	if c.MusicBrainzURL == "" {
		errors = append(errors, "MUSICBRAINZ_URL cannot be empty")
	} else if _, err := url.Parse(c.MusicBrainzURL); err != nil {
		errors = append(errors, fmt.Sprintf("MUSICBRAINZ_URL is not a valid URL: %s", c.MusicBrainzURL))
	}

	if c.CoverArtURL == "" {
		errors = append(errors, "COVERART_URL cannot be empty")
	} else if _, err := url.Parse(c.CoverArtURL); err != nil {
		errors = append(errors, fmt.Sprintf("COVERART_URL is not a valid URL: %s", c.CoverArtURL))
	}

	if c.TagWorkers < 1 {
		errors = append(errors, fmt.Sprintf("TAG_WORKERS must be at least 1, got: %d", c.TagWorkers))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fallback
		}
		return parsed
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fallback
		}
		return parsed
	}
	return fallback
}
