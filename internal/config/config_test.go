package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://postgres.ref:pw@aws-0.pooler.supabase.com:6543/postgres")
	t.Setenv("DB_TRANSACTION_POOLER", "true")
	t.Setenv("DB_HOST", "db.example.supabase.co")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("ARCHIVE_ENDPOINT", "")
	t.Setenv("ARCHIVE_USE_SSL", "false")
	t.Setenv("ARCHIVE_PATH_STYLE", "true")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("EXTENSION_ID", "")

	cfg := Load()

	assert.Equal(t, "db.example.supabase.co", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "postgresql://postgres.ref:pw@aws-0.pooler.supabase.com:6543/postgres", cfg.Database.URL)
	assert.True(t, cfg.Database.TransactionPooler)
	assert.Equal(t, "postgres", cfg.Database.Name)
	assert.False(t, cfg.Archive.UseSSL)
	assert.True(t, cfg.Archive.PathStyle)
	assert.False(t, cfg.Archive.Enabled())
	assert.Equal(t, "https://example.supabase.co", cfg.Supabase.URL)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, 6, cfg.OCR.PSM)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, DefaultExtensionID, cfg.CORS.ExtensionID)
	assert.Equal(t, "8000", cfg.Port)
}

func TestAllowedOrigins(t *testing.T) {
	c := CORSConfig{ExtensionID: "abc", ExtraOrigins: []string{"https://notepilot.app"}}

	assert.Equal(t, []string{
		"http://localhost:8000",
		"http://127.0.0.1:8000",
		"http://localhost:3000",
		"chrome-extension://abc",
		"https://notepilot.app",
	}, c.AllowedOrigins())
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "UTC"}
	assert.Equal(t, "UTC", cfg.Location().String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestEnvParsers(t *testing.T) {
	t.Setenv("NP_STRING", "value")
	t.Setenv("NP_BOOL_TRUE", "true")
	t.Setenv("NP_BOOL_FALSE", "0")
	t.Setenv("NP_BOOL_JUNK", "maybe")
	t.Setenv("NP_INT", "123")
	t.Setenv("NP_INT_JUNK", "12mb")

	assert.Equal(t, "value", getEnv("NP_STRING", "default"))
	assert.Equal(t, "default", getEnv("NP_UNSET", "default"))

	assert.True(t, getEnvBool("NP_BOOL_TRUE", false))
	assert.False(t, getEnvBool("NP_BOOL_FALSE", true))
	assert.True(t, getEnvBool("NP_BOOL_JUNK", true))
	assert.True(t, getEnvBool("NP_UNSET", true))

	assert.Equal(t, 123, getEnvInt("NP_INT", 0))
	assert.Equal(t, 25, getEnvInt("NP_INT_JUNK", 25))
	assert.Equal(t, 25, getEnvInt("NP_UNSET", 25))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST_VAR", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvList("TEST_LIST_VAR"))

	t.Setenv("TEST_LIST_VAR", "")
	assert.Nil(t, getEnvList("TEST_LIST_VAR"))
}
