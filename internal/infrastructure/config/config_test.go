package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"BOOKS_APP_NAME":          os.Getenv("BOOKS_APP_NAME"),
		"BOOKS_APP_ENV":           os.Getenv("BOOKS_APP_ENV"),
		"BOOKS_APP_PORT":          os.Getenv("BOOKS_APP_PORT"),
		"BOOKS_DATABASE_HOST":     os.Getenv("BOOKS_DATABASE_HOST"),
		"BOOKS_DATABASE_PORT":     os.Getenv("BOOKS_DATABASE_PORT"),
		"BOOKS_DATABASE_USER":     os.Getenv("BOOKS_DATABASE_USER"),
		"BOOKS_DATABASE_PASSWORD": os.Getenv("BOOKS_DATABASE_PASSWORD"),
		"BOOKS_DATABASE_DBNAME":   os.Getenv("BOOKS_DATABASE_DBNAME"),
		"BOOKS_DATABASE_SSLMODE":  os.Getenv("BOOKS_DATABASE_SSLMODE"),
		"BOOKS_CACHE_BACKEND":     os.Getenv("BOOKS_CACHE_BACKEND"),
		"BOOKS_JWT_SECRET":        os.Getenv("BOOKS_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "openbooks-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "openbooks", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "redis", cfg.Cache.Backend)
		assert.Equal(t, 24*time.Hour, cfg.JWT.TokenExpiration)
		assert.Equal(t, "0 2 * * *", cfg.Scheduler.DailyCronSchedule)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("BOOKS_APP_PORT", "9090")
		os.Setenv("BOOKS_DATABASE_HOST", "db.internal")
		os.Setenv("BOOKS_CACHE_BACKEND", "memory")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "memory", cfg.Cache.Backend)
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("BOOKS_CACHE_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.backend")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("BOOKS_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "books",
		Password: "p@ss/word",
		DBName:   "openbooks",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestRedisConfigAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
