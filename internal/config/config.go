// Package config handles configuration loading for the auth service.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// MinSecretLength is the shortest accepted JWT signing secret, in bytes.
const MinSecretLength = 32

// DataKeyLength is the required size of the decoded data-encryption key.
const DataKeyLength = 32

// Config holds all configuration for the auth service.
type Config struct {
	Port        string `env:"PORT" envDefault:"8084"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DBHost     string `env:"DB_HOST,required"`
	DBPort     string `env:"DB_PORT,required"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret       string        `env:"JWT_SECRET,required"`
	JWTAlgorithm    string        `env:"JWT_ALGORITHM" envDefault:"HS256"`
	JWTAccessExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"30m"`

	// AdminEmail marks the single administrator account until roles exist.
	AdminEmail string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`

	// DataEncryptionKey is the base64 encoded key handed to collaborators
	// that keep secrets at rest.
	DataEncryptionKey string `env:"DATA_ENCRYPTION_KEY,required"`

	BcryptCost             int  `env:"BCRYPT_COST" envDefault:"10"`
	TokenRevocationEnabled bool `env:"TOKEN_REVOCATION_ENABLED" envDefault:"false"`
	RunMigrations          bool `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretLength)
	}
	if _, ok := jwt.GetSigningMethod(c.JWTAlgorithm).(*jwt.SigningMethodHMAC); !ok {
		return fmt.Errorf("JWT_ALGORITHM %q is not an HMAC signing method", c.JWTAlgorithm)
	}
	if c.JWTAccessExpiry <= 0 {
		return errors.New("JWT_ACCESS_EXPIRY must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if _, err := c.DataKey(); err != nil {
		return err
	}
	return nil
}

// DataKey decodes DataEncryptionKey.
func (c *Config) DataKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.DataEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY is not valid base64: %w", err)
	}
	if len(key) != DataKeyLength {
		return nil, fmt.Errorf("DATA_ENCRYPTION_KEY must decode to %d bytes, got %d", DataKeyLength, len(key))
	}
	return key, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
