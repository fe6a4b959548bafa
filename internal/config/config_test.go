package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func testDataKey() string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", DataKeyLength)))
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "roleta")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "roleta")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATA_ENCRYPTION_KEY", testDataKey())
}

func validConfig() *Config {
	return &Config{
		JWTSecret:         testSecret,
		JWTAlgorithm:      "HS256",
		JWTAccessExpiry:   30 * time.Minute,
		BcryptCost:        10,
		DataEncryptionKey: testDataKey(),
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8084", cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.TokenRevocationEnabled)
	assert.True(t, cfg.RunMigrations)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("ADMIN_EMAIL", "root@roleta.pro")
	t.Setenv("TOKEN_REVOCATION_ENABLED", "true")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 5*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, "root@roleta.pro", cfg.AdminEmail)
	assert.True(t, cfg.TokenRevocationEnabled)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "short secret", mutate: func(c *Config) { c.JWTSecret = "short" }, wantErr: "JWT_SECRET"},
		{name: "asymmetric algorithm", mutate: func(c *Config) { c.JWTAlgorithm = "RS256" }, wantErr: "JWT_ALGORITHM"},
		{name: "none algorithm", mutate: func(c *Config) { c.JWTAlgorithm = "none" }, wantErr: "JWT_ALGORITHM"},
		{name: "zero expiry", mutate: func(c *Config) { c.JWTAccessExpiry = 0 }, wantErr: "JWT_ACCESS_EXPIRY"},
		{name: "cost too low", mutate: func(c *Config) { c.BcryptCost = 1 }, wantErr: "BCRYPT_COST"},
		{name: "cost too high", mutate: func(c *Config) { c.BcryptCost = 40 }, wantErr: "BCRYPT_COST"},
		{name: "key not base64", mutate: func(c *Config) { c.DataEncryptionKey = "%%%" }, wantErr: "DATA_ENCRYPTION_KEY"},
		{
			name:    "key wrong size",
			mutate:  func(c *Config) { c.DataEncryptionKey = base64.StdEncoding.EncodeToString([]byte("short")) },
			wantErr: "DATA_ENCRYPTION_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=require TimeZone=UTC", cfg.DSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "cache", RedisPort: "6380"}
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
