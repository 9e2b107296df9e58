package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/grievance-intel/internal/common"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultTheme     = "default"
	DefaultLocale    = "en-US"
	DefaultCachePath = "~/.local/share/grievance/cache.db"
	DefaultLogFile   = "~/.local/state/grievance/grievance.log"
)

// Settings is the resolved client configuration.
type Settings struct {
	Logging LoggingSettings
	API     APISettings
	Cache   CacheSettings
	UI      UISettings
}

// APISettings configures the backend client.
type APISettings struct {
	BaseURL string
	Timeout time.Duration
}

// UISettings configures the terminal view.
type UISettings struct {
	Theme         string
	Locale        string
	SequenceGuard bool
}

// CacheSettings configures the local snapshot cache.
type CacheSettings struct {
	Path    string
	Enabled bool
}

// LoggingSettings configures slog output.
type LoggingSettings struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("ui.theme", DefaultTheme)
	v.SetDefault("ui.locale", DefaultLocale)
	v.SetDefault("ui.sequence_guard", true)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", DefaultCachePath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", DefaultLogFile)
}

// Load resolves settings from v. Precedence:
// 1. Viper (config file, flags, GRIEVANCE_ env vars)
// 2. API_BASE_URL for the backend address
// 3. Defaults
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		API: APISettings{
			BaseURL: strings.TrimSpace(v.GetString("api.base_url")),
			Timeout: v.GetDuration("api.timeout"),
		},
		UI: UISettings{
			Theme:         v.GetString("ui.theme"),
			Locale:        v.GetString("ui.locale"),
			SequenceGuard: v.GetBool("ui.sequence_guard"),
		},
		Cache: CacheSettings{
			Enabled: v.GetBool("cache.enabled"),
			Path:    ExpandPath(v.GetString("cache.path")),
		},
		Logging: LoggingSettings{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	// Fall back to the plain env var only when nothing overrode the default
	if s.API.BaseURL == "" || s.API.BaseURL == DefaultBaseURL {
		if env := os.Getenv("API_BASE_URL"); env != "" {
			s.API.BaseURL = strings.TrimSpace(env)
		}
	}
	if s.API.BaseURL == "" {
		s.API.BaseURL = DefaultBaseURL
	}
	if s.API.Timeout == 0 {
		s.API.Timeout = DefaultTimeout
	}
	if s.UI.Locale == "" {
		s.UI.Locale = DefaultLocale
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate checks the settings for values the client cannot run with.
func (s Settings) Validate() error {
	u, err := url.Parse(s.API.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: api.base_url: %v", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api.base_url must be http or https, got %q", common.ErrInvalidConfig, s.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: api.base_url has no host", common.ErrInvalidConfig)
	}
	if s.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if s.Cache.Enabled && s.Cache.Path == "" {
		return fmt.Errorf("%w: cache.path", common.ErrMissingConfig)
	}
	return nil
}
