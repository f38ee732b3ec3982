package tui

import (
	"github.com/Veraticus/scenic/internal/intake"
	"github.com/Veraticus/scenic/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme themes.Theme
	// Endpoint is shown in the header.
	Endpoint string
	// StartDir is where the file browser opens.
	StartDir string
	// InitialPath is selected as soon as the program starts.
	InitialPath      string
	MaxSize          int64
	Width            int
	Height           int
	EnableAnimations bool
	ShowHelp         bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		StartDir:         ".",
		MaxSize:          intake.DefaultMaxSize,
		Width:            80,
		Height:           24,
		EnableAnimations: true,
		ShowHelp:         true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAnimations toggles the confidence bar animation.
func WithAnimations(enabled bool) Option {
	return func(c *Config) {
		c.EnableAnimations = enabled
	}
}

// WithHelp toggles the key binding footer.
func WithHelp(enabled bool) Option {
	return func(c *Config) {
		c.ShowHelp = enabled
	}
}

// WithEndpoint sets the endpoint shown in the header.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithStartDir sets the directory the file browser opens in.
func WithStartDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.StartDir = dir
		}
	}
}

// WithInitialPath selects path on startup.
func WithInitialPath(path string) Option {
	return func(c *Config) {
		c.InitialPath = path
	}
}

// WithMaxSize sets the upload size limit.
func WithMaxSize(maxSize int64) Option {
	return func(c *Config) {
		if maxSize > 0 {
			c.MaxSize = maxSize
		}
	}
}
