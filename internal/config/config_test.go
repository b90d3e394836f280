// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scriptdoc/pkg/types"
)

const fullConfig = `openrouter:
  api_key: sk-or-test
  model: openai/gpt-4o-mini
confluence:
  email: dev@example.com
  api_token: tok
  site: https://acme.atlassian.net/
  space_id: "98306"
paths:
  input_folder: scripts
  archive_folder: archive
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(New(writeConfig(t, fullConfig)), nil)
	require.NoError(t, err)

	assert.Equal(t, "sk-or-test", cfg.OpenRouter.APIKey)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.OpenRouter.Model)
	assert.Equal(t, types.DefaultOpenRouterURL, cfg.OpenRouter.URL)
	assert.Equal(t, "dev@example.com", cfg.Confluence.Email)
	assert.Equal(t, "tok", cfg.Confluence.APIToken)
	assert.Equal(t, "acme.atlassian.net", cfg.Confluence.Site)
	assert.Equal(t, "98306", cfg.Confluence.SpaceID)
	assert.Equal(t, "scripts", cfg.Paths.InputFolder)
	assert.Equal(t, "archive", cfg.Paths.ArchiveFolder)
	assert.Equal(t, "preview", cfg.Paths.PreviewFolder)
	assert.Empty(t, cfg.Paths.Ledger)
	assert.Equal(t, ".py", cfg.Source.Extension)
	assert.Equal(t, time.Duration(0), cfg.HTTP.Timeout)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   func(t *testing.T) string
		errMsg string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.yaml")
			},
			errMsg: "reading config file",
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string {
				return writeConfig(t, "openrouter: [unclosed\n")
			},
			errMsg: "reading config file",
		},
		{
			name: "missing required keys",
			path: func(t *testing.T) string {
				return writeConfig(t, "openrouter:\n  model: m\n")
			},
			errMsg: "confluence.space_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(New(tt.path(t)), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadSecretsFillEmptyKeys(t *testing.T) {
	content := `openrouter:
  model: m
confluence:
  email: dev@example.com
  site: acme.atlassian.net
  space_id: "1"
paths:
  input_folder: in
  archive_folder: out
`
	sec := map[string]string{
		"openrouter-api-key":   "from-secrets",
		"confluence-api-token": "tok-from-secrets",
		"confluence-email":     "ignored@example.com",
	}
	cfg, err := Load(New(writeConfig(t, content)), sec)
	require.NoError(t, err)
	assert.Equal(t, "from-secrets", cfg.OpenRouter.APIKey)
	assert.Equal(t, "tok-from-secrets", cfg.Confluence.APIToken)
	// Keys present in the config file win over secrets.
	assert.Equal(t, "dev@example.com", cfg.Confluence.Email)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SCRIPTDOC_OPENROUTER_MODEL", "anthropic/claude-sonnet-4")
	t.Setenv("SCRIPTDOC_SOURCE_EXTENSION", "sql")

	cfg, err := Load(New(writeConfig(t, fullConfig)), nil)
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-sonnet-4", cfg.OpenRouter.Model)
	assert.Equal(t, ".sql", cfg.Source.Extension)
}

func TestNormalizeSite(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"acme.atlassian.net", "acme.atlassian.net"},
		{"https://acme.atlassian.net", "acme.atlassian.net"},
		{"http://acme.atlassian.net/", "acme.atlassian.net"},
		{"  acme.atlassian.net  ", "acme.atlassian.net"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeSite(tt.in), tt.in)
	}
}

func TestLoadDryRun(t *testing.T) {
	content := `openrouter:
  api_key: sk-or-test
  model: m
paths:
  input_folder: scripts
`
	path := writeConfig(t, content)

	cfg, err := LoadDryRun(New(path), nil)
	require.NoError(t, err)
	assert.Equal(t, "scripts", cfg.Paths.InputFolder)
	assert.Empty(t, cfg.Confluence.Site)
	assert.Empty(t, cfg.Paths.ArchiveFolder)

	_, err = Load(New(path), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confluence.api_token")
	assert.Contains(t, err.Error(), "paths.archive_folder")
}

func TestLoadDryRunStillNeedsOpenRouter(t *testing.T) {
	_, err := LoadDryRun(New(writeConfig(t, "paths:\n  input_folder: scripts\n")), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter.api_key")
	assert.NotContains(t, err.Error(), "confluence")
}

func TestLedgerPath(t *testing.T) {
	tests := []struct {
		name   string
		viper  func(t *testing.T) *viper.Viper
		want   string
		errMsg string
	}{
		{
			name: "set in config file",
			viper: func(t *testing.T) *viper.Viper {
				return New(writeConfig(t, fullConfig+"  ledger: runs.db\n"))
			},
			want: "runs.db",
		},
		{
			name: "config file without ledger",
			viper: func(t *testing.T) *viper.Viper {
				return New(writeConfig(t, fullConfig))
			},
			want: "",
		},
		{
			name: "no config file found by search",
			viper: func(t *testing.T) *viper.Viper {
				v := viper.New()
				v.SetConfigName(configName)
				v.SetConfigType(configType)
				v.AddConfigPath(t.TempDir())
				return v
			},
			want: "",
		},
		{
			name: "malformed config file",
			viper: func(t *testing.T) *viper.Viper {
				return New(writeConfig(t, "paths: [unclosed\n"))
			},
			errMsg: "reading config file",
		},
		{
			name: "explicit config file missing",
			viper: func(t *testing.T) *viper.Viper {
				return New(filepath.Join(t.TempDir(), "nope.yaml"))
			},
			errMsg: "reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LedgerPath(tt.viper(t))
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
