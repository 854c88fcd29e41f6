// Package config loads scribe settings from the environment, optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Setting names. The environment variable of the same name feeds each one.
const (
	SettingServerURL  = "SCRIBE_SERVER_URL"
	SettingToken      = "SCRIBE_TOKEN"
	SettingProject    = "SCRIBE_PROJECT"
	SettingBranch     = "SCRIBE_BRANCH"
	SettingMaxPerPage = "SCRIBE_MAX_PER_PAGE"
	SettingWorkers    = "SCRIBE_WORKERS"
)

const (
	defaultServerURL = "http://localhost:9000"
	// Largest page size the hotspot search endpoint accepts.
	defaultMaxPerPage = "500"
	defaultWorkers    = 1
)

// Settings is a string-keyed configuration source.
// A key mapped to the empty string is reported as absent.
type Settings map[string]string

// Lookup returns the value of key and whether it is set.
func (s Settings) Lookup(key string) (string, bool) {
	value, ok := s[key]
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

// Config is the resolved connection configuration plus the raw settings it came from.
type Config struct {
	ServerURL string
	Token     string
	Project   string
	Branch    string
	Workers   int
	Settings  Settings
}

// Load reads configuration from environment variables.
// Values from envFile (default .env) are applied first without overriding variables already set;
// a missing file is not an error.
func Load(envFile string) Config {
	if envFile == "" {
		envFile = ".env"
	}

	_ = godotenv.Load(envFile)

	settings := Settings{
		SettingServerURL:  getEnv(SettingServerURL, defaultServerURL),
		SettingToken:      getEnv(SettingToken, ""),
		SettingProject:    getEnv(SettingProject, ""),
		SettingBranch:     getEnv(SettingBranch, ""),
		SettingMaxPerPage: getEnv(SettingMaxPerPage, defaultMaxPerPage),
	}

	return Config{
		ServerURL: settings[SettingServerURL],
		Token:     settings[SettingToken],
		Project:   settings[SettingProject],
		Branch:    settings[SettingBranch],
		Workers:   getEnvInt(SettingWorkers, defaultWorkers),
		Settings:  settings,
	}
}

// Override sets key to value in the settings unless value is empty.
func (c *Config) Override(key, value string) {
	if value == "" {
		return
	}

	c.Settings[key] = value

	switch key {
	case SettingServerURL:
		c.ServerURL = value
	case SettingToken:
		c.Token = value
	case SettingProject:
		c.Project = value
	case SettingBranch:
		c.Branch = value
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}

	return fallback
}
