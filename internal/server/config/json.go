package config

import (
	"encoding/json"
	"os"

	"github.com/proyection/proyection-api/internal/flagx"
	"github.com/proyection/proyection-api/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "20m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files; its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr         string         `json:"endpoint_addr"`
	MongoURI             string         `json:"mongodb_uri"`
	MongoDatabase        string         `json:"mongodb_database"`
	JWTSecret            string         `json:"jwt_secret"`
	JWTIssuer            string         `json:"jwt_issuer"`
	JWTAudience          string         `json:"jwt_audience"`
	AccessTokenValidity  timex.Duration `json:"access_token_validity"`
	RefreshTokenValidity timex.Duration `json:"refresh_token_validity"`
	ClockTolerance       timex.Duration `json:"clock_tolerance"`
	BcryptCost           int            `json:"bcrypt_cost"`
	Production           bool           `json:"production"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. A missing or malformed
// file panics, the same way a malformed flag would.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.MongoURI != "" {
		config.MongoURI = c.MongoURI
	}
	if c.MongoDatabase != "" {
		config.MongoDatabase = c.MongoDatabase
	}
	if c.JWTSecret != "" {
		config.JWTSecret = c.JWTSecret
	}
	if c.JWTIssuer != "" {
		config.JWTIssuer = c.JWTIssuer
	}
	if c.JWTAudience != "" {
		config.JWTAudience = c.JWTAudience
	}
	if c.AccessTokenValidity.Duration != 0 {
		config.AccessTokenValidity = c.AccessTokenValidity.Duration
	}
	if c.RefreshTokenValidity.Duration != 0 {
		config.RefreshTokenValidity = c.RefreshTokenValidity.Duration
	}
	if c.ClockTolerance.Duration != 0 {
		config.ClockTolerance = c.ClockTolerance.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.Production {
		config.Production = true
	}
}
