package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string
	DatabaseURL      string
	JWTSecret        string
	SessionTTL       time.Duration
	TibiaDataBaseURL string
	SyncGuildDelay   time.Duration
	BcryptCost       int
	DiscordToken     string
	DiscordGuildID   string
	DiscordChannel   string
	Environment      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := readSecret("database_url")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set (via secret or env var)")
	}

	jwtSecret := readSecret("jwt_secret")
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set (via secret or env var)")
	}

	discordToken := readSecret("discord_token")
	if discordToken == "" {
		discordToken = os.Getenv("DISCORD_TOKEN")
	}

	cfg := &Config{
		HTTPAddr:         envString("HTTP_ADDR", ":8080"),
		DatabaseURL:      dbURL,
		JWTSecret:        jwtSecret,
		SessionTTL:       envDuration("SESSION_TTL", 24*time.Hour),
		TibiaDataBaseURL: envString("TIBIADATA_BASE_URL", ""),
		SyncGuildDelay:   envDuration("SYNC_GUILD_DELAY", time.Second),
		BcryptCost:       envInt("BCRYPT_COST", 10),
		DiscordToken:     discordToken,
		DiscordGuildID:   envString("DISCORD_GUILD_ID", ""),
		DiscordChannel:   envString("DISCORD_CHANNEL_DEATH", "enemy-deaths"),
		Environment:      envString("ENVIRONMENT", "production"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DiscordEnabled reports whether the optional death-alert notifier should run.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
