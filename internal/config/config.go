package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Veraticus/scenic/internal/common"
	"github.com/Veraticus/scenic/internal/intake"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyServerURL     = "server.url"
	KeyServerTimeout = "server.timeout"
	KeyMaxSize       = "upload.max_size"
	KeyAnimations    = "ui.animations"
	KeyShowHelp      = "ui.show_help"
	KeyTheme         = "ui.theme"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyLogFile       = "logging.file"
)

// DefaultServerURL is where the classification server listens by default.
const DefaultServerURL = "http://localhost:5000"

// Config is the resolved application configuration.
type Config struct {
	ServerURL  string
	LogLevel   string
	LogFormat  string
	LogFile    string
	Theme      string
	Timeout    time.Duration
	MaxSize    int64
	Animations bool
	ShowHelp   bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerURL, DefaultServerURL)
	v.SetDefault(KeyServerTimeout, time.Duration(0))
	v.SetDefault(KeyMaxSize, intake.DefaultMaxSize)
	v.SetDefault(KeyAnimations, true)
	v.SetDefault(KeyShowHelp, true)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ServerURL:  v.GetString(KeyServerURL),
		Timeout:    v.GetDuration(KeyServerTimeout),
		MaxSize:    v.GetInt64(KeyMaxSize),
		Animations: v.GetBool(KeyAnimations),
		ShowHelp:   v.GetBool(KeyShowHelp),
		Theme:      v.GetString(KeyTheme),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
		LogFile:    ExpandPath(v.GetString(KeyLogFile)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("%w: %s is required", common.ErrMissingConfig, KeyServerURL)
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyServerURL, c.ServerURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyServerTimeout)
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyMaxSize)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
