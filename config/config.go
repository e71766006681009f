package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything pocket-lite reads from the environment.
type Config struct {
	Port           int
	ConsumerKey    string
	AccessKey      string
	DBURL          string
	DBName         string
	SendgridAPIKey string
	SecurityKey    string
	AlertTo        string
	AlertFrom      string
}

// Load reads the configuration from environment variables, applying
// defaults where the variable is unset and failing on missing required
// keys.
func Load() (Config, error) {
	cfg := Config{
		Port:   3000, // default port
		DBName: "pocket",
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DBName = name
	}

	required := []struct {
		name  string
		value *string
	}{
		{"CONSUMER_KEY", &cfg.ConsumerKey},
		{"ACCESS_KEY", &cfg.AccessKey},
		{"DB_URL", &cfg.DBURL},
		{"SENDGRID_API_KEY", &cfg.SendgridAPIKey},
		{"SECURITY_KEY", &cfg.SecurityKey},
		{"ALERT_TO", &cfg.AlertTo},
		{"ALERT_FROM", &cfg.AlertFrom},
	}
	for _, r := range required {
		*r.value = os.Getenv(r.name)
		if *r.value == "" {
			return Config{}, fmt.Errorf("missing required environment variable %s", r.name)
		}
	}

	return cfg, nil
}

// Address is the listen address for the HTTP server.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}
