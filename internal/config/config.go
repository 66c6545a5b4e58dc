package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App            AppConfig           `mapstructure:"app"`
	CommandTimeout time.Duration       `mapstructure:"command_timeout"`
	Environments   []EnvironmentConfig `mapstructure:"environments"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// EnvironmentConfig describes one backup target: a named postgres container,
// the databases to dump from it, and where on the host the dumps live.
type EnvironmentConfig struct {
	Name          string   `mapstructure:"name"`
	Container     string   `mapstructure:"container"`
	User          string   `mapstructure:"user"`
	BackupDir     string   `mapstructure:"backup_dir"`
	Databases     []string `mapstructure:"databases"`
	RetentionDays int      `mapstructure:"retention_days"`
	Schedule      string   `mapstructure:"schedule"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app.name", "custodia")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("command_timeout", "10m")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Environments) == 0 {
		return fmt.Errorf("at least one environment configuration is required")
	}

	for i, env := range c.Environments {
		if env.Name == "" {
			return fmt.Errorf("environment[%d]: name is required", i)
		}
		if env.Container == "" {
			return fmt.Errorf("environment[%d]: container is required", i)
		}
		if env.User == "" {
			return fmt.Errorf("environment[%d]: user is required", i)
		}
		if env.BackupDir == "" {
			return fmt.Errorf("environment[%d]: backup_dir is required", i)
		}
		if len(env.Databases) == 0 {
			return fmt.Errorf("environment[%d]: at least one database is required", i)
		}
		seen := make(map[string]bool, len(env.Databases))
		for _, db := range env.Databases {
			if db == "" {
				return fmt.Errorf("environment[%d]: database names must not be empty", i)
			}
			if seen[db] {
				return fmt.Errorf("environment[%d]: duplicate database %q", i, db)
			}
			seen[db] = true
		}
		if env.RetentionDays < 1 {
			return fmt.Errorf("environment[%d]: retention_days must be positive", i)
		}
	}

	return nil
}

// HasSchedules reports whether any environment carries a cron schedule. With
// no schedules configured the process runs every environment once and exits.
func (c *Config) HasSchedules() bool {
	for _, env := range c.Environments {
		if env.Schedule != "" {
			return true
		}
	}
	return false
}
