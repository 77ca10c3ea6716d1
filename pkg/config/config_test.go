package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, config.StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Error(t, cfg.Validate(), "empty secret must be rejected")
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "abc")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.StoreDriverMemory, cfg.App.StoreDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 5, cfg.Login.MaxAttempts)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{StoreDriver: "sqlite"},
		JWT: config.JWTConfig{Secret: "x", Expiration: 10},
	}
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/stock?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
