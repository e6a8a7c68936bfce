package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset variables
// leave the current value untouched.
//
// Recognized variables: ADDRESS, MONGODB_URI, MONGODB_DATABASE, JWT_SECRET,
// JWT_ISSUER, JWT_AUDIENCE, JWT_ACCESS_VALIDITY, JWT_REFRESH_VALIDITY,
// JWT_CLOCK_TOLERANCE (Go duration strings), BCRYPT_COST, APP_ENV
// ("production" enables production mode).
func parseEnv(config *Config) {
	setString := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}
	setDuration := func(key string, target *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				*target = d
			}
		}
	}

	setString("ADDRESS", &config.EndpointAddr)
	setString("MONGODB_URI", &config.MongoURI)
	setString("MONGODB_DATABASE", &config.MongoDatabase)
	setString("JWT_SECRET", &config.JWTSecret)
	setString("JWT_ISSUER", &config.JWTIssuer)
	setString("JWT_AUDIENCE", &config.JWTAudience)

	setDuration("JWT_ACCESS_VALIDITY", &config.AccessTokenValidity)
	setDuration("JWT_REFRESH_VALIDITY", &config.RefreshTokenValidity)
	setDuration("JWT_CLOCK_TOLERANCE", &config.ClockTolerance)

	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if cost, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = cost
		}
	}

	if v, ok := os.LookupEnv("APP_ENV"); ok {
		config.Production = v == "production"
	}
}
