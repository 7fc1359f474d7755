package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func TestGlobalConfigPath(t *testing.T) {
	got := GlobalConfigPath("/home/user/.config")
	want := "/home/user/.config/taskpro/config.toml"
	if got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLogPath(t *testing.T) {
	got := LogPath(StateDir("/home/user/.local/state"))
	want := "/home/user/.local/state/taskpro/taskpro.log"
	if got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Origin != DefaultOrigin {
		t.Errorf("API.Origin = %q, want %q", cfg.API.Origin, DefaultOrigin)
	}
	if len(cfg.API.DevHosts) != 1 || cfg.API.DevHosts[0] != "localhost" {
		t.Errorf("API.DevHosts = %v, want [localhost]", cfg.API.DevHosts)
	}
	if !cfg.Client.LatestListWins {
		t.Error("Client.LatestListWins should default to true")
	}
	if cfg.UI.Locale != DefaultLocale {
		t.Errorf("UI.Locale = %q, want %q", cfg.UI.Locale, DefaultLocale)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}

	// DevHosts must not alias the package default.
	cfg.API.DevHosts[0] = "changed"
	if DefaultDevHosts[0] != "localhost" {
		t.Error("NewDefaultConfig should copy DefaultDevHosts")
	}
}

func TestAPIConfig_ResolveBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     APIConfig
		host    string
		want    string
		wantErr error
	}{
		{
			name: "relative default on production host",
			cfg:  NewDefaultConfig().API,
			host: "tasks.example.com",
			want: "http://localhost/api",
		},
		{
			name: "relative resolved against origin",
			cfg:  APIConfig{BaseURL: "/api", Origin: "https://tasks.example.com"},
			host: "tasks.example.com",
			want: "https://tasks.example.com/api",
		},
		{
			name: "relative without leading slash",
			cfg:  APIConfig{BaseURL: "api/v1", Origin: "https://tasks.example.com/app/"},
			want: "https://tasks.example.com/api/v1",
		},
		{
			name: "dev host uses dev base url",
			cfg: APIConfig{
				BaseURL:    "/api",
				DevBaseURL: "http://192.0.2.10/api",
				Origin:     "http://localhost",
				DevHosts:   []string{"localhost"},
			},
			host: "LOCALHOST",
			want: "http://192.0.2.10/api",
		},
		{
			name: "dev base url ignored elsewhere",
			cfg: APIConfig{
				BaseURL:    "https://prod.example.com/api/",
				DevBaseURL: "http://192.0.2.10/api",
				DevHosts:   []string{"localhost"},
			},
			host: "prod-box",
			want: "https://prod.example.com/api",
		},
		{
			name: "query and fragment dropped",
			cfg:  APIConfig{BaseURL: "http://h/api?x=1#frag"},
			want: "http://h/api",
		},
		{
			name:    "empty",
			cfg:     APIConfig{},
			wantErr: ErrNoBaseURL,
		},
		{
			name:    "relative without origin",
			cfg:     APIConfig{BaseURL: "/api"},
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "unsupported scheme",
			cfg:     APIConfig{BaseURL: "ftp://h/api"},
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "bad origin",
			cfg:     APIConfig{BaseURL: "/api", Origin: "not-a-url"},
			wantErr: ErrInvalidBaseURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.ResolveBaseURL(tt.host)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveBaseURL() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveBaseURL() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ResolveBaseURL() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestAPIConfig_IsDevHost(t *testing.T) {
	cfg := APIConfig{DevHosts: []string{"localhost", " devbox "}}

	for host, want := range map[string]bool{
		"localhost": true,
		"DevBox":    true,
		"":          false,
		"prod":      false,
	} {
		if got := cfg.IsDevHost(host); got != want {
			t.Errorf("IsDevHost(%q) = %v, want %v", host, got, want)
		}
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if time.Duration(d) != 90*time.Second {
		t.Errorf("Duration = %v, want 1m30s", time.Duration(d))
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("UnmarshalText(\"soon\") should fail")
	}
}

func TestRenderConfigTemplate(t *testing.T) {
	out := RenderConfigTemplate(NewDefaultConfig())

	for _, want := range []string{
		`# base_url = "/api"`,
		`# origin = "http://localhost"`,
		`# dev_hosts = ["localhost"]`,
		`# timeout = "30s"`,
		`# latest_list_wins = true`,
		`# locale = "fr"`,
		`# level = "info"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("template missing %q", want)
		}
	}

	// All settings are commented out, so the template parses to nothing.
	var cfg Config
	if err := toml.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("rendered template is not valid TOML: %v", err)
	}
	if cfg.API.BaseURL != "" {
		t.Errorf("API.BaseURL = %q, want empty", cfg.API.BaseURL)
	}
}
