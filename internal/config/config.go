// Package config provides configuration types and defaults for the mockup
// server and CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	imagepkg "github.com/youruser/mockupkit/internal/image"
	"github.com/youruser/mockupkit/internal/upload"
)

// EnvPrefix prefixes environment overrides, e.g. MOCKUP_SERVER_ADDR.
const EnvPrefix = "MOCKUP"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Compose   ComposeConfig   `mapstructure:"compose"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Catalogue CatalogueConfig `mapstructure:"catalogue"`
	Export    ExportConfig    `mapstructure:"export"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ComposeTimeout time.Duration `mapstructure:"compose_timeout"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type ComposeConfig struct {
	Fit string `mapstructure:"fit"` // "cover" (default) or "contain"
}

// FetchConfig bounds remote image locators.
type FetchConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxBytes int64         `mapstructure:"max_bytes"`
}

type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CatalogueConfig points at a YAML template catalogue. Empty uses the
// bundled one.
type CatalogueConfig struct {
	Path string `mapstructure:"path"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ComposeTimeout: 30 * time.Second,
		},
		Upload:  UploadConfig{MaxBytes: upload.DefaultMaxBytes},
		Compose: ComposeConfig{Fit: string(imagepkg.FitCover)},
		Fetch: FetchConfig{
			Timeout:  10 * time.Second,
			MaxBytes: upload.DefaultMaxBytes,
		},
		Cache: CacheConfig{
			TTL:             imagepkg.DefaultArtworkTTL,
			CleanupInterval: imagepkg.DefaultCleanupInterval,
		},
		Export: ExportConfig{Dir: "."},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// SetDefaults registers Defaults on v so that unset keys and environment
// lookups resolve.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.compose_timeout", d.Server.ComposeTimeout)
	v.SetDefault("upload.max_bytes", d.Upload.MaxBytes)
	v.SetDefault("compose.fit", d.Compose.Fit)
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.max_bytes", d.Fetch.MaxBytes)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)
	v.SetDefault("catalogue.path", d.Catalogue.Path)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads configuration from cfgFile (optional), MOCKUP_* environment
// variables and defaults, in decreasing priority after explicit flags bound
// on v.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("mockup")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mockup")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := imagepkg.ParseFitMode(c.Compose.Fit); err != nil {
		return fmt.Errorf("compose.fit: %w", err)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// FitMode returns the configured default fit mode.
func (c Config) FitMode() imagepkg.FitMode {
	m, err := imagepkg.ParseFitMode(c.Compose.Fit)
	if err != nil {
		return imagepkg.FitCover
	}
	return m
}

// ConfigureLogger applies the log settings to l.
func (c Config) ConfigureLogger(l *logrus.Logger) error {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
