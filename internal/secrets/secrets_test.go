// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  map[string]string
	}{
		{
			name: "all key files trimmed",
			files: map[string]string{
				OpenRouterAPIKey:   "  sk-or-abc123  \n",
				ConfluenceAPIToken: "ATATT789",
				ConfluenceEmail:    "user@example.com\n",
			},
			want: map[string]string{
				OpenRouterAPIKey:   "sk-or-abc123",
				ConfluenceAPIToken: "ATATT789",
				ConfluenceEmail:    "user@example.com",
			},
		},
		{
			name: "blank key file left out",
			files: map[string]string{
				OpenRouterAPIKey: "valid-key",
				ConfluenceEmail:  "   \n\t  ",
			},
			want: map[string]string{OpenRouterAPIKey: "valid-key"},
		},
		{
			name: "unrecognized files ignored",
			files: map[string]string{
				".gitkeep":         "",
				"github-token":     "ghp_x",
				ConfluenceAPIToken: "tok_real",
			},
			want: map[string]string{ConfluenceAPIToken: "tok_real"},
		},
		{
			name:  "empty directory",
			files: nil,
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}
			got, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadPathIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "secrets", "x")

	_, err := Load(filepath.Join(dir, "secrets"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestLoadKeyFileIsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ConfluenceEmail), 0o755))
	writeFile(t, dir, OpenRouterAPIKey, "sk_123")

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{OpenRouterAPIKey: "sk_123"}, got)
}

func TestConfigKeys(t *testing.T) {
	assert.Equal(t, map[string]string{
		"openrouter-api-key":   "openrouter.api_key",
		"confluence-api-token": "confluence.api_token",
		"confluence-email":     "confluence.email",
	}, ConfigKeys)
}
