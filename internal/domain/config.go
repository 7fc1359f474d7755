package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	API      APIConfig    `toml:"api"`
	Client   ClientConfig `toml:"client"`
	UI       UIConfig     `toml:"ui"`
	Log      LogConfig    `toml:"log"`
}

// APIConfig holds settings for the task store from [api] section.
type APIConfig struct {
	BaseURL    string   `toml:"base_url,omitempty"`     // Base URL of the store, may be relative to Origin
	DevBaseURL string   `toml:"dev_base_url,omitempty"` // Base URL used when running on a development host
	Origin     string   `toml:"origin,omitempty"`       // Scheme and host a relative base URL is resolved against
	Token      string   `toml:"token,omitempty"`        // Bearer token (optional)
	DevHosts   []string `toml:"dev_hosts,omitempty"`    // Host names treated as development hosts
	Timeout    Duration `toml:"timeout,omitempty"`      // HTTP timeout, 0 = none
}

// ClientConfig holds settings for the task list client from [client] section.
type ClientConfig struct {
	// LatestListWins drops a list response when a newer list call was issued after it.
	LatestListWins bool `toml:"latest_list_wins"`
}

// UIConfig holds settings for rendering from [ui] section.
type UIConfig struct {
	Locale string `toml:"locale,omitempty"` // Message and date locale: "fr" or "en"
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Duration is a time.Duration that reads and writes TOML strings like "30s".
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Configuration file and directory names.
const (
	AppName         = "taskpro"
	ConfigFileName  = "config.toml"
	LogFileName     = "taskpro.log"
	DefaultLogLevel = "info"
	DefaultLocale   = "fr"
	DefaultBaseURL  = "/api"
	DefaultOrigin   = "http://localhost"
	DefaultTimeout  = Duration(30 * time.Second)
)

// DefaultDevHosts are the hosts on which DevBaseURL applies.
var DefaultDevHosts = []string{"localhost"}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// GlobalConfigPath returns the global config file path under configHome.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// StateDir returns the directory for logs under stateHome.
func StateDir(stateHome string) string {
	return filepath.Join(stateHome, AppName)
}

// LogPath returns the log file path inside stateDir.
func LogPath(stateDir string) string {
	return filepath.Join(stateDir, LogFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  DefaultBaseURL,
			Origin:   DefaultOrigin,
			DevHosts: slices.Clone(DefaultDevHosts),
			Timeout:  DefaultTimeout,
		},
		Client: ClientConfig{
			LatestListWins: true,
		},
		UI: UIConfig{
			Locale: DefaultLocale,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// IsDevHost reports whether host is one of the configured development hosts.
func (c APIConfig) IsDevHost(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	for _, h := range c.DevHosts {
		if strings.EqualFold(strings.TrimSpace(h), host) {
			return true
		}
	}
	return false
}

// ResolveBaseURL returns the absolute base URL for the given host.
// DevBaseURL wins on a development host; otherwise BaseURL is used.
// A relative result is resolved against Origin.
func (c APIConfig) ResolveBaseURL(host string) (*url.URL, error) {
	raw := c.BaseURL
	if c.DevBaseURL != "" && c.IsDevHost(host) {
		raw = c.DevBaseURL
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoBaseURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidBaseURL, raw, err)
	}
	if !u.IsAbs() {
		if c.Origin == "" {
			return nil, fmt.Errorf("%w: %q is relative and no origin is set", ErrInvalidBaseURL, raw)
		}
		origin, err := url.Parse(c.Origin)
		if err != nil || !origin.IsAbs() {
			return nil, fmt.Errorf("%w: origin %q", ErrInvalidBaseURL, c.Origin)
		}
		if !strings.HasPrefix(u.Path, "/") {
			u.Path = "/" + u.Path
		}
		u = origin.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// templateData holds all data for rendering the config template.
type templateData struct {
	BaseURL        string
	Origin         string
	DevHosts       string
	Timeout        string
	Locale         string
	LogLevel       string
	LatestListWins bool
}

// RenderConfigTemplate renders the commented config template from cfg.
func RenderConfigTemplate(cfg *Config) string {
	hosts := make([]string, 0, len(cfg.API.DevHosts))
	for _, h := range cfg.API.DevHosts {
		hosts = append(hosts, fmt.Sprintf("%q", h))
	}

	data := templateData{
		BaseURL:        cfg.API.BaseURL,
		Origin:         cfg.API.Origin,
		DevHosts:       "[" + strings.Join(hosts, ", ") + "]",
		Timeout:        time.Duration(cfg.API.Timeout).String(),
		Locale:         cfg.UI.Locale,
		LogLevel:       cfg.Log.Level,
		LatestListWins: cfg.Client.LatestListWins,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
