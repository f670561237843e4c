package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultEndpoint is the GraphQL endpoint used when nothing is configured.
const DefaultEndpoint = "http://localhost:4000/"

// Config holds application configuration.
type Config struct {
	Client ClientConfig `mapstructure:"client"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// ClientConfig holds GraphQL client settings. A zero Timeout means none.
type ClientConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LogConfig holds diagnostics settings. File "-" logs to stderr.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ServerConfig holds dev server settings. An empty DB keeps pets in memory.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	DB   string `mapstructure:"db"`
}

// Load reads configuration from file and env. Env var overrides use prefix PETLIST_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("client.endpoint", DefaultEndpoint)
	v.SetDefault("client.timeout", "0s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(homeDir(), ".local", "state", "petlist", "petlist.log"))
	v.SetDefault("server.addr", ":4000")
	v.SetDefault("server.db", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PETLIST_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "petlist"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PETLIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Client.Endpoint = strings.TrimSpace(c.Client.Endpoint)
	if c.Client.Endpoint == "" {
		c.Client.Endpoint = DefaultEndpoint
	}
	if c.Client.Timeout < 0 {
		return Config{}, fmt.Errorf("client.timeout must not be negative, got %s", c.Client.Timeout)
	}
	return c, nil
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
