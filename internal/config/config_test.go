package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_url": "https://api.example.com",
		"cache_path": "/tmp/cv.db",
		"default_mode": "ai-interview",
		"enhance_timeout": "45s",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "/tmp/cv.db", cfg.CachePath)
	assert.Equal(t, "ai-interview", cfg.DefaultMode)
	assert.Equal(t, "45s", cfg.EnhanceTimeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "api_url: https://api.example.com\nexport_dir: out\nport: 9090\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "out", cfg.ExportDir)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("port: [unclosed"), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config", cfg: Config{}},
		{name: "valid", cfg: Config{APIURL: "http://localhost:8080", DefaultMode: "manual", EnhanceTimeout: "30s", Port: 8080}},
		{name: "relative api url", cfg: Config{APIURL: "localhost"}, wantErr: "api_url"},
		{name: "unknown mode", cfg: Config{DefaultMode: "wizard"}, wantErr: "default_mode"},
		{name: "bad timeout", cfg: Config{EnhanceTimeout: "soon"}, wantErr: "enhance_timeout"},
		{name: "negative timeout", cfg: Config{EnhanceTimeout: "-5s"}, wantErr: "enhance_timeout"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "missing template", cfg: Config{Template: "/nonexistent/cv.tex"}, wantErr: "template file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnhanceTimeoutDuration(t *testing.T) {
	cfg := Config{}
	d, err := cfg.EnhanceTimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	cfg.EnhanceTimeout = "0"
	d, err = cfg.EnhanceTimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	cfg.EnhanceTimeout = "2m"
	d, err = cfg.EnhanceTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvAPIToken, "tok")
	t.Setenv(EnvCachePath, "")

	cfg := Config{APIURL: "https://file.example.com", CachePath: "/from/file.db"}
	cfg.ApplyEnv()

	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, "/from/file.db", cfg.CachePath, "unset env must not clobber file value")
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIURL:      "http://localhost:8080",
		CachePath:   "default.db",
		ExportDir:   ".",
		DefaultMode: "manual",
		Port:        8080,
	}

	partial := Config{
		APIURL:    "https://custom.example.com",
		ExportDir: "out",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "https://custom.example.com", merged.APIURL)
	assert.Equal(t, "out", merged.ExportDir)

	// Default values should fill in empty fields
	assert.Equal(t, "default.db", merged.CachePath)
	assert.Equal(t, "manual", merged.DefaultMode)
	assert.Equal(t, 8080, merged.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		APIURL:    "https://x.example.com",
		CachePath: "x.db",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "https://x.example.com", merged.APIURL)
	assert.Equal(t, "x.db", merged.CachePath)
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "manual", d.DefaultMode)
	assert.Equal(t, 8080, d.Port)
	assert.NotEmpty(t, d.CachePath)
	assert.NoError(t, d.Validate())
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			in := &Config{APIURL: "https://api.example.com", APIToken: "tok", DefaultMode: "manual"}

			require.NoError(t, SaveConfig(path, in))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

			out, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "config.yaml", filepath.Base(DefaultPath()))
	assert.Equal(t, filepath.Dir(DefaultPath()), filepath.Dir(Defaults().CachePath))
}
