package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_SESSION_SECRET", "")
	t.Setenv("ACCESS_PATIENT_SCOPE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PatientScopeAssigned, cfg.Access.PatientScope)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL())
	assert.NotEmpty(t, cfg.Auth.SessionSecret)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
}

func TestLoadRejectsUnknownScope(t *testing.T) {
	t.Setenv("ACCESS_PATIENT_SCOPE", "everyone")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvAsList("CORS_ORIGINS", nil))
}
