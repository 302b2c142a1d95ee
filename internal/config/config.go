package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultExtensionID is the browser extension allowed to call the API when EXTENSION_ID is unset.
const DefaultExtensionID = "fgppkhbbafbfdcdfandjhfaicifnjckb"

// DatabaseConfig holds connection settings for the Supabase PostgreSQL database.
// URL, when set, is the connection string copied from the Supabase dashboard and
// takes precedence over the individual fields. TransactionPooler must be set when
// connecting through Supavisor in transaction mode (port 6543), which cannot keep
// prepared statements across transactions.
type DatabaseConfig struct {
	URL                string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	TransactionPooler  bool
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// GeminiConfig holds settings for the generative provider.
// An empty APIKey is allowed; generation then fails at call time.
type GeminiConfig struct {
	APIKey      string
	Model       string
	SourceLabel string
}

// SupabaseConfig holds the auth provider endpoint and its anon/service key.
type SupabaseConfig struct {
	URL string
	Key string
}

// OCRConfig holds the fixed recognition settings.
type OCRConfig struct {
	Language string
	PSM      int
	DPI      int
}

// CORSConfig holds the origin allow-list inputs.
type CORSConfig struct {
	ExtensionID  string
	ExtraOrigins []string
}

// ArchiveConfig holds object storage settings for archiving uploaded source files.
// Archiving is disabled when Endpoint is empty. The Supabase Storage S3 endpoint
// needs Region set and PathStyle enabled.
type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PathStyle bool
}

// Enabled reports whether upload archiving is configured.
func (a ArchiveConfig) Enabled() bool { return a.Endpoint != "" }

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port          string
	Timezone      string
	UploadLimitMB int
	Database      DatabaseConfig
	Gemini        GeminiConfig
	Supabase      SupabaseConfig
	OCR           OCRConfig
	CORS          CORSConfig
	Archive       ArchiveConfig
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowedOrigins returns the CORS allow-list: local dev servers, the web app and the extension.
func (c CORSConfig) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:8000",
		"http://127.0.0.1:8000",
		"http://localhost:3000",
		"chrome-extension://" + c.ExtensionID,
	}
	return append(origins, c.ExtraOrigins...)
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		Port:          getEnv("PORT", "8000"),
		Timezone:      getEnv("APP_TIMEZONE", "UTC"),
		UploadLimitMB: getEnvInt("UPLOAD_LIMIT_MB", 25),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", "postgres"),
			SSLMode:            getEnv("DB_SSLMODE", "require"),
			TransactionPooler:  getEnvBool("DB_TRANSACTION_POOLER", false),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Gemini: GeminiConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			SourceLabel: getEnv("GEMINI_SOURCE_LABEL", "NotePilot AI Engine (Gemini 1.5 Flash)"),
		},
		Supabase: SupabaseConfig{
			URL: strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			Key: getEnv("SUPABASE_KEY", ""),
		},
		OCR: OCRConfig{
			Language: getEnv("OCR_LANG", "eng"),
			PSM:      getEnvInt("OCR_PSM", 6),
			DPI:      getEnvInt("OCR_DPI", 300),
		},
		CORS: CORSConfig{
			ExtensionID:  getEnv("EXTENSION_ID", DefaultExtensionID),
			ExtraOrigins: getEnvList("CORS_EXTRA_ORIGINS"),
		},
		Archive: ArchiveConfig{
			Endpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
			AccessKey: getEnv("ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getEnv("ARCHIVE_SECRET_KEY", ""),
			Bucket:    getEnv("ARCHIVE_BUCKET", ""),
			Region:    getEnv("ARCHIVE_REGION", ""),
			UseSSL:    getEnvBool("ARCHIVE_USE_SSL", true),
			PathStyle: getEnvBool("ARCHIVE_PATH_STYLE", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
