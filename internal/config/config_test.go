package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"job_url": "https://example.com/jobs/123",
		"style": "Storytelling",
		"verbose": true,
		"port": 9090
	}`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/123", cfg.JobURL)
	assert.Equal(t, "Storytelling", cfg.Style)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("Empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		path := writeTempConfig(t, "{not json")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Job and JobURL mutually exclusive", func(t *testing.T) {
		cfg := &Config{Job: "job.txt", JobURL: "https://example.com"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Port out of range", func(t *testing.T) {
		cfg := &Config{Port: 70000}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Missing resume file", func(t *testing.T) {
		cfg := &Config{Resume: filepath.Join(t.TempDir(), "missing.txt")}
		assert.Error(t, cfg.Validate())
	})

	t.Run("Empty config valid", func(t *testing.T) {
		cfg := &Config{}
		assert.NoError(t, cfg.Validate())
	})
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Style: "Official", Port: 8081}
	defaults := Config{Style: "Exciting", Topic: "default topic", Port: 8080, Verbose: true}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "Official", merged.Style, "explicit value wins")
	assert.Equal(t, "default topic", merged.Topic, "empty value filled from defaults")
	assert.Equal(t, 8081, merged.Port)
	assert.True(t, merged.Verbose)
}

func TestNewPasswordConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestNewPasswordConfig_InvalidCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")
	_, err := NewPasswordConfig()
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}

	hash, err := cfg.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, cfg.VerifyPassword("s3cret", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))

	// Pepper participates in the hash
	other := &PasswordConfig{BcryptCost: 10, Pepper: "different"}
	assert.False(t, other.VerifyPassword("s3cret", hash))
}

func TestNewJWTConfig(t *testing.T) {
	t.Run("Missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := NewJWTConfig()
		assert.Error(t, err)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "")

		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, "test-secret", cfg.Secret)
		assert.Equal(t, 24, cfg.ExpirationHours)
	})

	t.Run("Invalid expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "0")
		_, err := NewJWTConfig()
		assert.Error(t, err)
	})
}
