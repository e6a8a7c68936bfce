// Package config handles configuration for the API server, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default token policy mirrors the public API contract: short-lived access
// tokens, week-long refresh tokens, 60 seconds of allowed clock skew.
const (
	DefaultAccessTokenValidity  = 20 * time.Minute
	DefaultRefreshTokenValidity = 7 * 24 * time.Hour
	DefaultClockTolerance       = 60 * time.Second
	DefaultBcryptCost           = 12
)

// Config holds runtime settings for the Proyection API server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - MongoURI / MongoDatabase: document store connection settings.
//   - JWTSecret: HMAC secret for signing JWTs (HS256). Must be at least 32
//     characters and never a known placeholder.
//   - JWTIssuer / JWTAudience: claim values enforced on issue and verify.
//   - AccessTokenValidity / RefreshTokenValidity: token lifetimes.
//   - ClockTolerance: allowed timestamp skew when validating exp/nbf.
//   - BcryptCost: password hashing cost factor.
//   - Production: suppresses error detail in responses when true.
type Config struct {
	EndpointAddr         string
	MongoURI             string
	MongoDatabase        string
	JWTSecret            string
	JWTIssuer            string
	JWTAudience          string
	AccessTokenValidity  time.Duration
	RefreshTokenValidity time.Duration
	ClockTolerance       time.Duration
	BcryptCost           int
	Production           bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: JWTSecret has no default; it must come from a config file, flag, or env.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.MongoURI = "mongodb://localhost:27017"
	c.MongoDatabase = "proyection"
	c.JWTIssuer = "proyection-api"
	c.JWTAudience = "proyection-client"
	c.AccessTokenValidity = DefaultAccessTokenValidity
	c.RefreshTokenValidity = DefaultRefreshTokenValidity
	c.ClockTolerance = DefaultClockTolerance
	c.BcryptCost = DefaultBcryptCost
	c.Production = false
}

// Validate checks settings the server cannot safely run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT secret is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT secret too short: %d chars, need at least 32", len(c.JWTSecret))
	}
	if c.JWTSecret == "your-secret-key" || strings.Contains(c.JWTSecret, "changeme") {
		return errors.New("JWT secret is a known placeholder, set a real one")
	}
	if c.AccessTokenValidity <= 0 || c.RefreshTokenValidity <= 0 {
		return errors.New("token validity durations must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
