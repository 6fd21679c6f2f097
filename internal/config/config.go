// Package config provides configuration types and defaults for the countryflags CLI.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/esimov/countryflags"
	"github.com/esimov/countryflags/utils"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "COUNTRYFLAGS"

// Config holds all configuration options of the CLI.
type Config struct {
	// Source is a directory of <code>.svg files or a base URL.
	// Empty means the bundled flags.
	Source   string        `mapstructure:"source"`
	Names    string        `mapstructure:"names"`     // optional "code,name" table replacing the bundled one
	Lazy     bool          `mapstructure:"lazy"`      // fetch flags on first use; always on for URL sources
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // lifetime of lazily fetched flags
	Workers  int           `mapstructure:"workers"`
	Timeout  time.Duration `mapstructure:"timeout"` // HTTP timeout of a single download
	Server   ServerConfig  `mapstructure:"server"`
}

// ServerConfig holds the demo server options.
type ServerConfig struct {
	Addr          string   `mapstructure:"addr"`
	Showcase      []string `mapstructure:"showcase"`
	ShowcaseWidth float64  `mapstructure:"showcase_width"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		CacheTTL: countryflags.DefaultCacheTTL,
		Workers:  runtime.NumCPU(),
		Timeout:  countryflags.DefaultHTTPTimeout,
		Server: ServerConfig{
			Addr:          ":8080",
			Showcase:      []string{"us", "ca", "gb", "fr", "de", "jp", "br", "in", "au", "za", "mx", "ru"},
			ShowcaseWidth: 150,
		},
	}
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("source", d.Source)
	v.SetDefault("names", d.Names)
	v.SetDefault("lazy", d.Lazy)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.showcase", d.Server.Showcase)
	v.SetDefault("server.showcase_width", d.Server.ShowcaseWidth)
}

// Load reads the optional config file and the environment into a Config.
// A missing config file is not an error when path is empty.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("countryflags")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/countryflags")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
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

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL)
	}
	if c.Server.ShowcaseWidth < 0 {
		return fmt.Errorf("server.showcase_width must not be negative, got %v", c.Server.ShowcaseWidth)
	}
	for _, code := range c.Server.Showcase {
		if !countryflags.ValidCode(code) && !strings.Contains(code, "-") {
			return fmt.Errorf("invalid showcase country code %q", code)
		}
	}
	return nil
}

// IsRemote reports whether the flags are fetched over HTTP.
func (c Config) IsRemote() bool {
	return utils.IsValidUrl(c.Source)
}

// Open builds the flag set described by the configuration.
func (c Config) Open(ctx context.Context) (*countryflags.Flags, error) {
	names := countryflags.DefaultNames()
	if c.Names != "" {
		f, err := os.Open(c.Names)
		if err != nil {
			return nil, fmt.Errorf("unable to open the name table: %w", err)
		}
		defer f.Close()

		if names, err = countryflags.LoadNames(f); err != nil {
			return nil, err
		}
	}

	opts := []countryflags.Option{
		countryflags.WithNames(names),
		countryflags.WithConcurrency(c.Workers),
		countryflags.WithCacheTTL(c.CacheTTL),
	}

	switch {
	case c.Source == "":
		return countryflags.New(ctx, countryflags.Embedded(), opts...)
	case c.IsRemote():
		codes := make([]string, 0, len(names))
		for code := range names {
			codes = append(codes, code)
		}
		var client *http.Client
		if c.Timeout > 0 {
			client = &http.Client{Timeout: c.Timeout}
		}
		return countryflags.NewLazy(ctx, countryflags.NewHTTPSource(c.Source, codes, client), opts...)
	default:
		fi, err := os.Stat(c.Source)
		if err != nil {
			return nil, fmt.Errorf("unable to open the flag directory: %w", err)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("flag source %s is not a directory", c.Source)
		}
		src := countryflags.NewDirSource(os.DirFS(c.Source), ".")
		if c.Lazy {
			return countryflags.NewLazy(ctx, src, opts...)
		}
		return countryflags.New(ctx, src, opts...)
	}
}
