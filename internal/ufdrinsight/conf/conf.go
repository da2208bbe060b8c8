package conf

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the service settings. Values come from defaults, an optional
// config file, and UFDRINSIGHT_* environment variables, in that order.
type Config struct {
	HTTPAddr string `mapstructure:"http_addr" json:"http_addr"`
	DataDir  string `mapstructure:"data_dir" json:"data_dir"`
	Debug    bool   `mapstructure:"debug" json:"debug"`
}

// DBPath is the sqlite database location under the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "ufdrinsight.db")
}

// IndexDir is the root directory for per-analysis search indexes.
func (c *Config) IndexDir() string {
	return filepath.Join(c.DataDir, "index")
}

// Load reads configuration. configFile may be empty, in which case only
// defaults and environment apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("http_addr", "127.0.0.1:5030")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("UFDRINSIGHT")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
