package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_URL", "https://reliableteam.ai/")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example/ ,,https://b.example")
	t.Setenv("RATE_LIMIT_INQUIRY_THRESHOLD", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://reliableteam.ai", cfg.FrontendURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.RateLimitInquiryThreshold, "invalid ints fall back to the default")
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.local:8080/")
	t.Setenv("ADMIN_TOKEN", "tok")
	t.Setenv("INQUIRE_LIST_TIMEOUT_SECONDS", "3")

	cfg := LoadClientConfig()

	assert.Equal(t, "http://api.local:8080", cfg.APIBaseURL)
	assert.Equal(t, "tok", cfg.AdminToken)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}
