// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/taskpro/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Environment variables read by the loader.
const (
	EnvBaseURL    = "TASKPRO_BASE_URL"
	EnvDevBaseURL = "TASKPRO_DEV_BASE_URL"
	EnvOrigin     = "TASKPRO_ORIGIN"
	EnvToken      = "TASKPRO_TOKEN"
	EnvLocale     = "TASKPRO_LOCALE"
	EnvLogLevel   = "TASKPRO_LOG_LEVEL"
	EnvHost       = "TASKPRO_HOST"
)

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	getenv        func(string) string
	dotenv        map[string]string // Values read from envFile, loaded lazily
	globalConfDir string            // Path to global config directory (e.g., ~/.config/taskpro)
	filePath      string            // Explicit config file (--config), optional
	envFile       string            // Path to .env file, optional
}

// NewLoader creates a new Loader.
// filePath is an explicit config file layered over the global one; empty skips it.
func NewLoader(filePath string) *Loader {
	return &Loader{
		getenv:        os.Getenv,
		globalConfDir: defaultGlobalConfigDir(),
		filePath:      filePath,
		envFile:       DefaultEnvFile,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(filePath, globalConfDir string) *Loader {
	return &Loader{
		getenv:        os.Getenv,
		globalConfDir: globalConfDir,
		filePath:      filePath,
		envFile:       DefaultEnvFile,
	}
}

// WithEnv replaces the environment lookup and the dotenv file path.
// An empty envFile disables dotenv loading.
func (l *Loader) WithEnv(envFile string, getenv func(string) string) *Loader {
	l.envFile = envFile
	l.dotenv = nil
	if getenv != nil {
		l.getenv = getenv
	}
	return l
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// GlobalConfigDir returns the directory the global config file lives in.
func (l *Loader) GlobalConfigDir() string {
	return l.globalConfDir
}

// Load returns the merged configuration.
// Later sources take precedence: default <- global <- file <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	global, err := l.loadGlobalOverlay()
	if err != nil {
		return nil, err
	}
	if global != nil {
		global.apply(cfg)
	}

	if l.filePath != "" {
		file, err := l.loadFile(l.filePath)
		if err != nil {
			// An explicitly named file must exist.
			return nil, err
		}
		file.apply(cfg)
	}

	env, err := l.envOverlay()
	if err != nil {
		return nil, err
	}
	env.apply(cfg)

	return cfg, nil
}

// LoadGlobal returns the defaults merged with the global configuration only.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	ov, err := l.loadGlobalOverlay()
	if err != nil {
		return nil, err
	}
	cfg := domain.NewDefaultConfig()
	if ov != nil {
		ov.apply(cfg)
	}
	return cfg, nil
}

// Getenv looks key up in the process environment, then in the dotenv file.
func (l *Loader) Getenv(key string) string {
	if v := l.getenv(key); v != "" {
		return v
	}
	vals, err := l.readDotenv()
	if err != nil {
		return ""
	}
	return vals[key]
}

func (l *Loader) loadGlobalOverlay() (*overlay, error) {
	if l.globalConfDir == "" {
		return nil, nil
	}
	ov, err := l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return ov, err
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToOverlay(raw), nil
}

func (l *Loader) readDotenv() (map[string]string, error) {
	if l.dotenv != nil || l.envFile == "" {
		return l.dotenv, nil
	}
	vals, err := godotenv.Read(l.envFile)
	if errors.Is(err, os.ErrNotExist) {
		l.dotenv = map[string]string{}
		return l.dotenv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.envFile, err)
	}
	l.dotenv = vals
	return vals, nil
}

// envOverlay builds an overlay from TASKPRO_* variables.
func (l *Loader) envOverlay() (*overlay, error) {
	if _, err := l.readDotenv(); err != nil {
		return nil, err
	}
	ov := &overlay{}
	for env, dst := range map[string]**string{
		EnvBaseURL:    &ov.baseURL,
		EnvDevBaseURL: &ov.devBaseURL,
		EnvOrigin:     &ov.origin,
		EnvToken:      &ov.token,
		EnvLocale:     &ov.locale,
		EnvLogLevel:   &ov.logLevel,
	} {
		if v := l.Getenv(env); v != "" {
			*dst = &v
		}
	}
	return ov, nil
}

// overlay holds the values one source sets. Nil means "not set".
type overlay struct {
	baseURL        *string
	devBaseURL     *string
	origin         *string
	token          *string
	timeout        *domain.Duration
	latestListWins *bool
	locale         *string
	logLevel       *string
	devHosts       []string
	warnings       []string
	devHostsSet    bool
}

// apply writes the set values of o over cfg.
func (o *overlay) apply(cfg *domain.Config) {
	setString(&cfg.API.BaseURL, o.baseURL)
	setString(&cfg.API.DevBaseURL, o.devBaseURL)
	setString(&cfg.API.Origin, o.origin)
	setString(&cfg.API.Token, o.token)
	setString(&cfg.UI.Locale, o.locale)
	setString(&cfg.Log.Level, o.logLevel)
	if o.devHostsSet {
		cfg.API.DevHosts = append([]string(nil), o.devHosts...)
	}
	if o.timeout != nil {
		cfg.API.Timeout = *o.timeout
	}
	if o.latestListWins != nil {
		cfg.Client.LatestListWins = *o.latestListWins
	}
	cfg.Warnings = append(cfg.Warnings, o.warnings...)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// convertRawToOverlay converts the raw map to an overlay and collects warnings.
func convertRawToOverlay(raw map[string]any) *overlay {
	res := &overlay{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "api":
			for k, v := range m {
				switch k {
				case "base_url":
					res.baseURL = stringValue(section, k, v, &warnings)
				case "dev_base_url":
					res.devBaseURL = stringValue(section, k, v, &warnings)
				case "origin":
					res.origin = stringValue(section, k, v, &warnings)
				case "token":
					res.token = stringValue(section, k, v, &warnings)
				case "dev_hosts":
					hosts, ok := stringList(v)
					if !ok {
						warnings = append(warnings, fmt.Sprintf("invalid value in [api]: %s (want list of strings)", k))
						continue
					}
					res.devHosts = hosts
					res.devHostsSet = true
				case "timeout":
					d, err := durationValue(v)
					if err != nil {
						warnings = append(warnings, fmt.Sprintf("invalid value in [api]: %s (%v)", k, err))
						continue
					}
					res.timeout = &d
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [api]: %s", k))
				}
			}
		case "client":
			for k, v := range m {
				switch k {
				case "latest_list_wins":
					b, ok := v.(bool)
					if !ok {
						warnings = append(warnings, fmt.Sprintf("invalid value in [client]: %s (want bool)", k))
						continue
					}
					res.latestListWins = &b
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [client]: %s", k))
				}
			}
		case "ui":
			for k, v := range m {
				switch k {
				case "locale":
					res.locale = stringValue(section, k, v, &warnings)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [ui]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.logLevel = stringValue(section, k, v, &warnings)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.warnings = warnings
	return res
}

func stringValue(section, key string, v any, warnings *[]string) *string {
	s, ok := v.(string)
	if !ok {
		*warnings = append(*warnings, fmt.Sprintf("invalid value in [%s]: %s (want string)", section, key))
		return nil
	}
	return &s
}

func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// durationValue accepts "30s" style strings or a number of seconds.
func durationValue(v any) (domain.Duration, error) {
	switch x := v.(type) {
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(x))
		if err != nil {
			return 0, err
		}
		if d < 0 {
			return 0, errors.New("negative duration")
		}
		return domain.Duration(d), nil
	case int64:
		if x < 0 {
			return 0, errors.New("negative duration")
		}
		return domain.Duration(time.Duration(x) * time.Second), nil
	default:
		return 0, fmt.Errorf("want duration string, got %T", v)
	}
}
