package tui

import (
	"time"

	"github.com/Veraticus/grievance-intel/internal/service"
	"github.com/Veraticus/grievance-intel/internal/store"
	"github.com/Veraticus/grievance-intel/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme           themes.Theme
	Backend         service.GrievanceBackend
	Cache           service.SnapshotCache
	Locale          string
	Width           int
	Height          int
	SuccessDuration time.Duration
	SequenceGuard   bool
	MouseSupport    bool
	AltScreen       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:           themes.Default,
		Locale:          "en-US",
		Width:           80,
		Height:          24,
		SuccessDuration: store.SuccessDuration,
		SequenceGuard:   true,
		MouseSupport:    true,
		AltScreen:       true,
	}
}

// WithBackend sets the grievance backend.
func WithBackend(backend service.GrievanceBackend) Option {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithCache sets the local snapshot cache.
func WithCache(cache service.SnapshotCache) Option {
	return func(c *Config) {
		c.Cache = cache
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithLocale sets the BCP 47 locale used for dates.
func WithLocale(locale string) Option {
	return func(c *Config) {
		if locale != "" {
			c.Locale = locale
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithSequenceGuard toggles dropping stale list responses.
func WithSequenceGuard(enabled bool) Option {
	return func(c *Config) {
		c.SequenceGuard = enabled
	}
}

// WithSuccessDuration sets how long the success banner stays up.
func WithSuccessDuration(d time.Duration) Option {
	return func(c *Config) {
		c.SuccessDuration = d
	}
}

// WithFeatures configures terminal features.
func WithFeatures(altScreen, mouse bool) Option {
	return func(c *Config) {
		c.AltScreen = altScreen
		c.MouseSupport = mouse
	}
}

func (c Config) storeOptions() []store.Option {
	opts := []store.Option{
		store.WithSequenceGuard(c.SequenceGuard),
		store.WithSuccessDuration(c.SuccessDuration),
	}
	if c.Cache != nil {
		opts = append(opts, store.WithSnapshotCache(c.Cache))
	}
	return opts
}
