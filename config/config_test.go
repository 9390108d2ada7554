package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1, cfg.JWT.ExpireHours)
	assert.Equal(t, 100, cfg.AWS.MaxVideoSizeMB)
	assert.Equal(t, "convertapi", cfg.Certificate.Backend)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_VIDEO_SIZE_MB", "250")
	t.Setenv("CERT_RENDERER", "chromedp")
	t.Setenv("BASE_URL", "https://wpd.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 250, cfg.AWS.MaxVideoSizeMB)
	assert.Equal(t, "chromedp", cfg.Certificate.Backend)
	assert.Equal(t, "https://wpd.example.com", cfg.Server.BaseURL, "trailing slash trimmed")
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.internal", Port: "5433", User: "wpd", Password: "pw",
		DBName: "worldpestday", SSLMode: "require",
	}
	assert.Equal(t, "postgres://wpd:pw@db.internal:5433/worldpestday?sslmode=require", db.DSN())

	db.URL = "postgres://full/url"
	assert.Equal(t, "postgres://full/url", db.DSN(), "explicit URL wins")
}
