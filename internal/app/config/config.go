package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Build   BuildConfig   `mapstructure:"build"`
	I18n    I18nConfig    `mapstructure:"i18n"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Headers HeadersConfig `mapstructure:"headers"`
	Dev     DevConfig     `mapstructure:"dev"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AppConfig.Address overrides Host and Port when set, e.g. ":8080".
type AppConfig struct {
	Port    int    `mapstructure:"port"`
	Host    string `mapstructure:"host"`
	Address string `mapstructure:"address"`
	Env     string `mapstructure:"env"`
}

type ServerConfig struct {
	ReadTimeoutS     int `mapstructure:"readTimeoutSec"`
	WriteTimeoutS    int `mapstructure:"writeTimeoutSec"`
	IdleTimeoutS     int `mapstructure:"idleTimeoutSec"`
	RequestTimeoutS  int `mapstructure:"requestTimeoutSec"`
	ShutdownTimeoutS int `mapstructure:"shutdownTimeoutSec"`
}

type BuildConfig struct {
	OutDir string `mapstructure:"outDir"`
}

// I18nConfig.Dir loads catalogs from disk instead of the embedded ones.
type I18nConfig struct {
	Dir string `mapstructure:"dir"`
}

// AuthConfig.Users holds "name:password" pairs. Basic auth is off when empty.
type AuthConfig struct {
	Users []string `mapstructure:"users"`
	Paths []string `mapstructure:"paths"`
	Realm string   `mapstructure:"realm"`
}

type HeadersConfig struct {
	Add    map[string]string `mapstructure:"add"`
	Remove []string          `mapstructure:"remove"`
}

type DevConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	DebounceMS int  `mapstructure:"debounceMs"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("xpanel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/xpanel")
	}

	v.SetEnvPrefix("XPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("app.address", "XPANEL_APP_ADDRESS", "SERVER_ADDRESS"); err != nil {
		return nil, fmt.Errorf("error binding env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if envPath := os.Getenv("XPANEL_CONFIG"); envPath != "" {
		v.SetConfigFile(envPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading env config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.address", "")
	v.SetDefault("app.env", "production")

	v.SetDefault("server.readTimeoutSec", 15)
	v.SetDefault("server.writeTimeoutSec", 15)
	v.SetDefault("server.idleTimeoutSec", 60)
	v.SetDefault("server.requestTimeoutSec", 60)
	v.SetDefault("server.shutdownTimeoutSec", 10)

	v.SetDefault("build.outDir", "./dist")

	v.SetDefault("i18n.dir", "")

	v.SetDefault("auth.users", []string{})
	v.SetDefault("auth.paths", []string{})
	v.SetDefault("auth.realm", "Xferant Panel")

	v.SetDefault("headers.add", map[string]string{})
	v.SetDefault("headers.remove", []string{})

	v.SetDefault("dev.enabled", false)
	v.SetDefault("dev.debounceMs", 500)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func (c *Config) Validate() error {
	if c.App.Address == "" && (c.App.Port <= 0 || c.App.Port > 65535) {
		return fmt.Errorf("invalid app.port %d", c.App.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}
	if c.Dev.DebounceMS < 0 {
		return fmt.Errorf("invalid dev.debounceMs %d", c.Dev.DebounceMS)
	}
	for _, user := range c.Auth.Users {
		if name, _, ok := strings.Cut(user, ":"); !ok || name == "" {
			return fmt.Errorf("invalid auth.users entry %q: want name:password", user)
		}
	}
	return nil
}

func (c *Config) Addr() string {
	if c.App.Address != "" {
		return c.App.Address
	}
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// AuthUsers returns the configured basic auth credentials keyed by user name.
func (c *Config) AuthUsers() map[string]string {
	users := make(map[string]string, len(c.Auth.Users))
	for _, entry := range c.Auth.Users {
		if name, pass, ok := strings.Cut(entry, ":"); ok && name != "" {
			users[name] = pass
		}
	}
	return users
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Dev.DebounceMS) * time.Millisecond
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutS) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutS) * time.Second
}

func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutS) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutS) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutS) * time.Second
}
