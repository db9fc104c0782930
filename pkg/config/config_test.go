package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:5000/api/v1", cfg.Upstream.BaseAPIURL())
	assert.Equal(t, "http://localhost:5000", cfg.Upstream.AssetBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "phlebo_session", cfg.Session.CookieName)
	assert.Equal(t, 1024, cfg.ViewState.Size)
	assert.Equal(t, int64(5*1024*1024), cfg.Uploads.MaxFileSizeBytes)
	assert.Equal(t, []string{"image/png", "image/jpeg", "image/webp"}, cfg.Uploads.ImageMIMEs)
	assert.Equal(t, []string{"application/pdf", "image/png", "image/jpeg"}, cfg.Uploads.DocumentMIMEs)
	assert.False(t, cfg.Redis.Enabled)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("UPSTREAM_BASE_URL", "https://api.example.com/")
	v.Set("UPSTREAM_API_PREFIX", "api/v2/")
	v.Set("UPSTREAM_TIMEOUT", "bogus")
	v.Set("VIEW_STATE_SIZE", -4)

	cfg := fromViper(v)

	assert.Equal(t, "https://api.example.com/api/v2", cfg.Upstream.BaseAPIURL())
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 1024, cfg.ViewState.Size)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a, ,b "))
}
