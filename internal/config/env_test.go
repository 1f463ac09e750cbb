package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/bookshelf_test")
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")
	t.Setenv("SESSION_SECRET", "test-session-secret")
	t.Setenv("GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("BASE_URL", "https://api.example.com")
	t.Setenv("FRONTEND_URL", "https://app.example.com")
	t.Setenv("ENVIRONMENT", "")
}

func TestLoadEnvironmentVariables_Success(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/bookshelf_test", cfg.DatabaseURL)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, "https://app.example.com", cfg.FrontendURL)
	assert.Equal(t, "development", cfg.Environment, "environment defaults to development")
}

func TestLoadEnvironmentVariables_MissingRequired(t *testing.T) {
	// every one of these is fatal at startup; none may silently default
	required := []string{
		"DATABASE_URL",
		"JWT_SECRET",
		"SESSION_SECRET",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"BASE_URL",
		"FRONTEND_URL",
	}

	for _, name := range required {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(name, "")

			_, err := LoadEnvironmentVariables()

			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}
