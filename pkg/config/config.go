package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bot struct {
		DefaultPrefix string `yaml:"default_prefix"`
		Status        string `yaml:"status"`
	} `yaml:"bot"`
	Dialogue struct {
		TimeoutSeconds float64 `yaml:"timeout_seconds"`
	} `yaml:"dialogue"`
	Assets struct {
		Heart       string `yaml:"heart"`
		BrokenHeart string `yaml:"broken_heart"`
	} `yaml:"assets"`
	Render struct {
		AvatarSize          int     `yaml:"avatar_size"`
		AvatarCacheSize     int     `yaml:"avatar_cache_size"`
		FetchTimeoutSeconds float64 `yaml:"fetch_timeout_seconds"`
	} `yaml:"render"`
	Storage struct {
		Backend    string `yaml:"backend"`
		PrefixFile string `yaml:"prefix_file"`
		RedisKey   string `yaml:"redis_key"`
	} `yaml:"storage"`
	Logging struct {
		ErrorFile string `yaml:"error_file"`
	} `yaml:"logging"`
}

func defaults() *Config {
	config := &Config{}
	config.Bot.DefaultPrefix = "--"
	config.Bot.Status = "shipping people 💘"
	config.Dialogue.TimeoutSeconds = 30
	config.Assets.Heart = "heart.png"
	config.Assets.BrokenHeart = "broken_heart.png"
	config.Render.AvatarSize = 256
	config.Render.AvatarCacheSize = 128
	config.Render.FetchTimeoutSeconds = 10
	config.Storage.Backend = "file"
	config.Storage.PrefixFile = "prefixes.json"
	config.Storage.RedisKey = "prefixes"
	config.Logging.ErrorFile = "error_logs.txt"
	return config
}

// LoadConfig reads path over the defaults. A missing file means defaults.
func LoadConfig(path string) (*Config, error) {
	config := defaults()

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	switch config.Storage.Backend {
	case "file", "redis":
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}

	return config, nil
}

func (c *Config) DialogueTimeout() time.Duration {
	return time.Duration(c.Dialogue.TimeoutSeconds * float64(time.Second))
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Render.FetchTimeoutSeconds * float64(time.Second))
}
