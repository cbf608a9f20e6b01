package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv deja vacías las variables que lee Load; viper trata el valor vacío como no definido.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_NAME", "LOG_LEVEL", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_AUTO_MIGRATE",
		"HTTP_HOST", "HTTP_PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT", "DOCS_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "categories-api", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "categories-api", cfg.DB.ApplicationName)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "./docs/swagger.json", cfg.HTTP.DocsPath)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "5")
	t.Setenv("HTTP_WRITE_TIMEOUT", "1m")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, time.Minute, cfg.HTTP.WriteTimeout)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_PoolInvalido(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_MAX_CONNS", "5")
	t.Setenv("DB_MIN_CONNS", "30")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_PuertoInvalido(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()

	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "categories", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/categories?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://otro@host/db"
	assert.Equal(t, "postgresql://otro@host/db", c.ConnectionString())
}
