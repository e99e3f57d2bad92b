package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	BlobBasePath string

	// optional overrides for the bundled reference data
	ScalesPath    string
	ReferencePath string

	// scoring/classification policy
	MinCompletion float64 // fraction of items required for a numeric score
	BandWidth     float64 // tier band half-width in SDs

	AuthSecret      string
	TeacherUser     string
	TeacherPassHash string // bcrypt
	AdminUser       string
	AdminPassHash   string // bcrypt

	// ShareToken lets students submit form responses without an account.
	ShareToken string

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		PublicURL:     strings.TrimSuffix(os.Getenv("PUBLIC_URL"), "/"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		BlobBasePath:  envOr("BLOB_BASE_PATH", "./data"),
		ScalesPath:    os.Getenv("SCALES_PATH"),
		ReferencePath: os.Getenv("REFERENCE_PATH"),
		MinCompletion: envFloat("MIN_COMPLETION", 0.5),
		BandWidth:     envFloat("TIER_BAND_WIDTH", 0.5),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		TeacherUser:   envOr("TEACHER_USER", "teacher"),
		// bcrypt("teacher"), dev only
		TeacherPassHash: envOr("TEACHER_PASS_HASH", "$2a$10$CwTycUXWue0Thq9StjUM0uJ8i8VQLW1l0ap6c7Fvd8oQCOqY0P8G6"),
		AdminUser:       envOr("ADMIN_USER", "admin"),
		// bcrypt("admin"), dev only
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2a$10$GdH6ZjTmCy4XINoX0zLcWOFZXmoOQgxROBDX.ZV9ZS8mKVKVOYQlq"),
		ShareToken:    os.Getenv("SHARE_TOKEN"),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
