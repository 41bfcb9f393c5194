package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, pattern string, content []byte) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", pattern)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write(content); err != nil {
		tmpfile.Close()
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Provide a path that definitely doesn't exist
	config, err := LoadConfig("non_existent_config.yml")
	require.NoError(t, err)

	assert.Equal(t, "--", config.Bot.DefaultPrefix)
	assert.Equal(t, 30*time.Second, config.DialogueTimeout())
	assert.Equal(t, "heart.png", config.Assets.Heart)
	assert.Equal(t, "broken_heart.png", config.Assets.BrokenHeart)
	assert.Equal(t, 256, config.Render.AvatarSize)
	assert.Equal(t, 128, config.Render.AvatarCacheSize)
	assert.Equal(t, 10*time.Second, config.FetchTimeout())
	assert.Equal(t, "file", config.Storage.Backend)
	assert.Equal(t, "prefixes.json", config.Storage.PrefixFile)
	assert.Equal(t, "error_logs.txt", config.Logging.ErrorFile)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeTemp(t, "config_test_*.yml", []byte(`
bot:
  default_prefix: "!"
dialogue:
  timeout_seconds: 1.5
assets:
  heart: assets/heart.png
render:
  avatar_cache_size: 16
storage:
  backend: redis
  redis_key: guild_prefixes
`))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "!", config.Bot.DefaultPrefix)
	assert.Equal(t, 1500*time.Millisecond, config.DialogueTimeout())
	assert.Equal(t, "assets/heart.png", config.Assets.Heart)
	// untouched keys keep their defaults
	assert.Equal(t, "broken_heart.png", config.Assets.BrokenHeart)
	assert.Equal(t, 16, config.Render.AvatarCacheSize)
	assert.Equal(t, 256, config.Render.AvatarSize)
	assert.Equal(t, "redis", config.Storage.Backend)
	assert.Equal(t, "guild_prefixes", config.Storage.RedisKey)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "config_invalid_*.yml", []byte(`
dialogue:
  timeout_seconds: "not a number"
  broken_yaml: [ unclosed bracket
`))

	config, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	path := writeTemp(t, "config_backend_*.yml", []byte("storage:\n  backend: sqlite\n"))

	config, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, config)
}
