package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MASOMO_CONFIG_DIR", dir)
	t.Setenv("ENV", "test")
	t.Setenv("TEST_API_BASEURL", "https://api.masomo.test/")
	t.Setenv("TEST_API_TIMEOUT", "5s")
	t.Setenv("TEST_DEBUG", "false")

	dotEnv := "TEST_STORAGE_BACKEND=redis\nTEST_STORAGE_REDISADDR=cache:6379\nTEST_API_TIMEOUT=9s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte(dotEnv), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("TEST_STORAGE_BACKEND")
		_ = os.Unsetenv("TEST_STORAGE_REDISADDR")
	})

	conf, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.False(t, conf.Debug)
	assert.Equal(t, "https://api.masomo.test", conf.API.BaseURL)
	assert.Equal(t, 5*time.Second, conf.API.Timeout, "env vars win over the .env file")
	assert.Equal(t, StorageRedis, conf.Storage.Backend)
	assert.Equal(t, "cache:6379", conf.Storage.RedisAddr)
	assert.Equal(t, "/v1/quizzes", conf.Endpoints.Quiz)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown storage", key: "QA_STORAGE_BACKEND", val: "mongo"},
		{name: "bad base url", key: "QA_API_BASEURL", val: "not a url"},
		{name: "no timeout", key: "QA_API_TIMEOUT", val: "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MASOMO_CONFIG_DIR", t.TempDir())
			t.Setenv("ENV", "qa")
			t.Setenv(tt.key, tt.val)

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfig_URL(t *testing.T) {
	conf := &Config{API: APIConfig{BaseURL: "https://api.masomo.test"}}

	tests := []struct {
		name     string
		path     string
		segments []string
		want     string
	}{
		{name: "path", path: "/v1/classes", want: "https://api.masomo.test/v1/classes"},
		{name: "relative path", path: "v1/classes", want: "https://api.masomo.test/v1/classes"},
		{name: "segments", path: "/v1/results", segments: []string{"c1", "q1"}, want: "https://api.masomo.test/v1/results/c1/q1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conf.URL(tt.path, tt.segments...))
		})
	}
}
