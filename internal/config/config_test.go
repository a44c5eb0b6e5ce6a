package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRejectsWeakSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "short")

	_, err := Load()
	require.ErrorIs(t, err, ErrWeakSecret)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrWeakSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_BOOTSTRAP_ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pharmacy-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, "pharmacy-service", cfg.Auth.Issuer)
	assert.Equal(t, "pharmacy-api", cfg.Auth.Audience)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.True(t, cfg.Postgres.RunMigrations)
	assert.Equal(t, time.Minute, cfg.Cache.DrugTTL())
	assert.Equal(t, "admin", cfg.Auth.BootstrapAdminUsername)
	assert.Equal(t, "admin@pharmacy.local", cfg.Auth.BootstrapAdminEmail)
	assert.Empty(t, cfg.Auth.BootstrapAdminPassword)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("CACHE_DRUG_TTL_SECONDS", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.App.Addr())
	assert.Equal(t, 5, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 2*time.Minute, cfg.Cache.DrugTTL())
}
