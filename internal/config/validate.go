package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	minJWTSecretLength = 32

	minSyncGuildDelay = 100 * time.Millisecond
	maxSyncGuildDelay = time.Minute

	minSessionTTL = time.Minute
	maxSessionTTL = 30 * 24 * time.Hour
)

// Validate checks configuration values against acceptable bounds. All
// failures are reported at once via errors.Join.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateJWTSecret(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateSyncGuildDelay(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateSessionTTL(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateBcryptCost(); err != nil {
		errs = append(errs, err)
	}

	if c.HTTPAddr == "" {
		errs = append(errs, fmt.Errorf("HTTP_ADDR must not be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateJWTSecret() error {
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf(
			"JWT_SECRET too short: %d chars, expected %d+",
			len(c.JWTSecret), minJWTSecretLength,
		)
	}
	return nil
}

func (c *Config) validateSyncGuildDelay() error {
	if c.SyncGuildDelay < minSyncGuildDelay || c.SyncGuildDelay > maxSyncGuildDelay {
		return fmt.Errorf(
			"SYNC_GUILD_DELAY must be between %v and %v, got %v",
			minSyncGuildDelay, maxSyncGuildDelay, c.SyncGuildDelay,
		)
	}
	return nil
}

func (c *Config) validateSessionTTL() error {
	if c.SessionTTL < minSessionTTL || c.SessionTTL > maxSessionTTL {
		return fmt.Errorf(
			"SESSION_TTL must be between %v and %v, got %v",
			minSessionTTL, maxSessionTTL, c.SessionTTL,
		)
	}
	return nil
}

func (c *Config) validateBcryptCost() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf(
			"BCRYPT_COST must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost,
		)
	}
	return nil
}
