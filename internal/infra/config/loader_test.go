package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpro/internal/domain"
)

// noEnv is an empty environment.
func noEnv(string) string { return "" }

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func newTestLoader(t *testing.T, filePath, globalDir string, env func(string) string) *Loader {
	t.Helper()
	return NewLoaderWithGlobalDir(filePath, globalDir).WithEnv("", env)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := newTestLoader(t, "", t.TempDir(), noEnv)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_GlobalConfig(t *testing.T) {
	// Setup
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[api]
base_url = "https://tasks.example.com/api"
dev_base_url = "http://192.0.2.10/api"
dev_hosts = ["localhost", "devbox"]
timeout = "5s"
token = "abc"

[client]
latest_list_wins = false

[ui]
locale = "en"

[log]
level = "debug"
`)

	// Execute
	cfg, err := newTestLoader(t, "", globalDir, noEnv).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://tasks.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "http://192.0.2.10/api", cfg.API.DevBaseURL)
	assert.Equal(t, []string{"localhost", "devbox"}, cfg.API.DevHosts)
	assert.Equal(t, domain.Duration(5*time.Second), cfg.API.Timeout)
	assert.Equal(t, "abc", cfg.API.Token)
	assert.Equal(t, domain.DefaultOrigin, cfg.API.Origin)
	assert.False(t, cfg.Client.LatestListWins)
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_Precedence(t *testing.T) {
	// Setup: default <- global <- file <- env
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[api]
base_url = "http://global/api"
origin = "http://global"

[ui]
locale = "en"

[log]
level = "warn"
`)
	filePath := filepath.Join(t.TempDir(), "taskpro.toml")
	writeFile(t, filePath, `
[api]
base_url = "http://file/api"

[log]
level = "error"
`)
	env := envMap(map[string]string{
		EnvLogLevel: "debug",
	})

	// Execute
	cfg, err := newTestLoader(t, filePath, globalDir, env).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://file/api", cfg.API.BaseURL) // file over global
	assert.Equal(t, "http://global", cfg.API.Origin)    // global only
	assert.Equal(t, "en", cfg.UI.Locale)                // global only
	assert.Equal(t, "debug", cfg.Log.Level)             // env over file
}

func TestLoader_Load_Dotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "TASKPRO_BASE_URL=http://dotenv/api\nTASKPRO_TOKEN=from-dotenv\nTASKPRO_LOCALE=en\n")

	env := envMap(map[string]string{EnvToken: "from-process"})
	loader := NewLoaderWithGlobalDir("", t.TempDir()).WithEnv(envFile, env)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "http://dotenv/api", cfg.API.BaseURL)
	assert.Equal(t, "from-process", cfg.API.Token, "process environment wins over .env")
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.Equal(t, "en", loader.Getenv(EnvLocale))
}

func TestLoader_Load_MissingDotenvIsFine(t *testing.T) {
	loader := NewLoaderWithGlobalDir("", t.TempDir()).WithEnv(filepath.Join(t.TempDir(), ".env"), noEnv)

	_, err := loader.Load()

	assert.NoError(t, err)
}

func TestLoader_Load_Warnings(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
unknown_top = 1

[api]
base_url = 42
mystery = "x"
timeout = "soon"
dev_hosts = "localhost"

[client]
latest_list_wins = "yes"

[workers]
default = "claude"
`)

	cfg, err := newTestLoader(t, "", globalDir, noEnv).Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBaseURL, cfg.API.BaseURL, "invalid values are ignored")
	assert.True(t, cfg.Client.LatestListWins)
	assert.Contains(t, cfg.Warnings, "unknown section: unknown_top")
	assert.Contains(t, cfg.Warnings, "unknown section: workers")
	assert.Contains(t, cfg.Warnings, "unknown key in [api]: mystery")
	assert.Contains(t, cfg.Warnings, "invalid value in [api]: base_url (want string)")
	assert.Contains(t, cfg.Warnings, "invalid value in [api]: dev_hosts (want list of strings)")
	assert.Contains(t, cfg.Warnings, "invalid value in [client]: latest_list_wins (want bool)")
	assert.Len(t, cfg.Warnings, 7)
}

func TestLoader_Load_TimeoutSeconds(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[api]\ntimeout = 10\n")

	cfg, err := newTestLoader(t, "", globalDir, noEnv).Load()

	require.NoError(t, err)
	assert.Equal(t, domain.Duration(10*time.Second), cfg.API.Timeout)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[api\nbase_url = ")

	_, err := newTestLoader(t, "", globalDir, noEnv).Load()

	assert.Error(t, err)
}

func TestLoader_Load_MissingExplicitFile(t *testing.T) {
	_, err := newTestLoader(t, filepath.Join(t.TempDir(), "nope.toml"), t.TempDir(), noEnv).Load()

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadGlobal_IgnoresFileAndEnv(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), "[ui]\nlocale = \"en\"\n")
	filePath := filepath.Join(t.TempDir(), "c.toml")
	writeFile(t, filePath, "[ui]\nlocale = \"fr\"\n")

	loader := newTestLoader(t, filePath, globalDir, envMap(map[string]string{EnvBaseURL: "http://env"}))
	cfg, err := loader.LoadGlobal()

	require.NoError(t, err)
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.Equal(t, domain.DefaultBaseURL, cfg.API.BaseURL)
}

func TestHostResolver(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		r := NewHostResolver(" DevBox ", envMap(map[string]string{EnvHost: "env"}))
		h, err := r.Hostname()
		require.NoError(t, err)
		assert.Equal(t, "devbox", h)
	})

	t.Run("environment next", func(t *testing.T) {
		r := NewHostResolver("", envMap(map[string]string{EnvHost: "LocalHost"}))
		h, err := r.Hostname()
		require.NoError(t, err)
		assert.Equal(t, "localhost", h)
	})

	t.Run("os hostname last", func(t *testing.T) {
		r := NewHostResolver("", noEnv)
		r.hostname = func() (string, error) { return "Prod-1", nil }
		h, err := r.Hostname()
		require.NoError(t, err)
		assert.Equal(t, "prod-1", h)
	})
}
