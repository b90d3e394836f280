// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the immutable run configuration from a config file,
// environment variables, and the secrets directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/scriptdoc/internal/secrets"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

const (
	// EnvPrefix is prepended to environment overrides, e.g. SCRIPTDOC_OPENROUTER_MODEL.
	EnvPrefix = "SCRIPTDOC"

	configName = "config"
	configType = "yaml"
)

// requiredKeys must be non-empty after all sources are merged.
var requiredKeys = []string{
	"openrouter.api_key",
	"openrouter.model",
	"confluence.email",
	"confluence.api_token",
	"confluence.site",
	"confluence.space_id",
	"paths.input_folder",
	"paths.archive_folder",
}

// dryRunKeys are required when nothing is published or archived.
var dryRunKeys = []string{
	"openrouter.api_key",
	"openrouter.model",
	"paths.input_folder",
}

// New returns a viper instance wired for scriptdoc: cfgFile when given,
// otherwise ./config.yaml then ~/.config/scriptdoc/config.yaml, with
// SCRIPTDOC_ environment overrides.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "scriptdoc"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("openrouter.url", types.DefaultOpenRouterURL)
	v.SetDefault("source.extension", types.DefaultExtension)
	v.SetDefault("http.timeout", 0)
	v.SetDefault("http.user_agent", "scriptdoc/0.1")
	v.SetDefault("paths.preview_folder", "preview")
	v.SetDefault("paths.ledger", "")
	return v
}

// Load reads the config file into v, fills empty credentials from sec, and
// returns the validated configuration. A missing or malformed config file
// and any missing required key are errors.
func Load(v *viper.Viper, sec map[string]string) (types.Config, error) {
	return load(v, sec, requiredKeys)
}

// LoadDryRun is Load for runs that only write previews: Confluence
// credentials and the archive folder may be left unset.
func LoadDryRun(v *viper.Viper, sec map[string]string) (types.Config, error) {
	return load(v, sec, dryRunKeys)
}

func load(v *viper.Viper, sec map[string]string, required []string) (types.Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return types.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	for file, key := range secrets.ConfigKeys {
		if v.GetString(key) != "" {
			continue
		}
		if val, ok := sec[file]; ok {
			v.Set(key, val)
		}
	}

	var missing []string
	for _, k := range required {
		if strings.TrimSpace(v.GetString(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return types.Config{}, fmt.Errorf("missing required config keys: %s", strings.Join(missing, ", "))
	}

	cfg := types.Config{
		OpenRouter: types.OpenRouterConfig{
			APIKey: v.GetString("openrouter.api_key"),
			Model:  v.GetString("openrouter.model"),
			URL:    v.GetString("openrouter.url"),
		},
		Confluence: types.ConfluenceConfig{
			Email:    v.GetString("confluence.email"),
			APIToken: v.GetString("confluence.api_token"),
			Site:     normalizeSite(v.GetString("confluence.site")),
			SpaceID:  v.GetString("confluence.space_id"),
		},
		Paths: types.PathsConfig{
			InputFolder:   v.GetString("paths.input_folder"),
			ArchiveFolder: v.GetString("paths.archive_folder"),
			PreviewFolder: v.GetString("paths.preview_folder"),
			Ledger:        v.GetString("paths.ledger"),
		},
		Source: types.SourceConfig{
			Extension: v.GetString("source.extension"),
		},
		HTTP: types.HTTPConfig{
			Timeout:   v.GetDuration("http.timeout"),
			UserAgent: v.GetString("http.user_agent"),
		},
	}
	if cfg.Source.Extension != "" && !strings.HasPrefix(cfg.Source.Extension, ".") {
		cfg.Source.Extension = "." + cfg.Source.Extension
	}
	return cfg, nil
}

// normalizeSite strips a scheme and trailing slash so "https://acme.atlassian.net/"
// and "acme.atlassian.net" configure the same host.
func normalizeSite(site string) string {
	site = strings.TrimSpace(site)
	site = strings.TrimPrefix(site, "https://")
	site = strings.TrimPrefix(site, "http://")
	return strings.TrimRight(site, "/")
}

// LedgerPath returns paths.ledger from the config file behind v. A config
// file that cannot be found yields ""; one that exists but cannot be read
// or parsed is an error.
func LedgerPath(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v.GetString("paths.ledger"), nil
		}
		return "", fmt.Errorf("reading config file: %w", err)
	}
	return v.GetString("paths.ledger"), nil
}
