package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration tree.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Security SecurityConfig `mapstructure:"security"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MonitorConfig struct {
	WindowLen    int           `mapstructure:"window_len"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
	ScoreEvery   time.Duration `mapstructure:"score_every"`
}

type SecurityConfig struct {
	Refresh time.Duration `mapstructure:"refresh"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Load reads configuration from an optional config.yaml and HOSTFORGE_*
// environment variables; env wins.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "hostforge-api")
	v.SetDefault("app.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("monitor.window_len", 20)
	v.SetDefault("monitor.tick_interval", 2*time.Second)
	v.SetDefault("monitor.score_every", 3*time.Second)
	v.SetDefault("security.refresh", 30*time.Second)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("HOSTFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// the config file is optional; env + defaults are enough
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
