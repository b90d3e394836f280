// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultOpenRouterURL is the chat completions endpoint used when the
// configuration does not override it.
const DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// DefaultExtension is the recognized source-file extension.
const DefaultExtension = ".py"

// HTTPConfig holds shared HTTP settings for the outbound calls.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// OpenRouterConfig holds settings for the completion API.
type OpenRouterConfig struct {
	// APIKey is the bearer credential.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Model is the model identifier (e.g. "openai/gpt-4o-mini").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// URL is the chat completions endpoint (default DefaultOpenRouterURL).
	URL string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`
}

// ConfluenceConfig holds credentials and the target space for publishing.
type ConfluenceConfig struct {
	Email    string `json:"email" yaml:"email" mapstructure:"email"`
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty" mapstructure:"api_token"`

	// Site is the Atlassian hostname (e.g. "acme.atlassian.net").
	Site string `json:"site" yaml:"site" mapstructure:"site"`

	// SpaceID is the numeric space identifier pages are created in.
	SpaceID string `json:"space_id" yaml:"space_id" mapstructure:"space_id"`
}

// PathsConfig holds the directories the pipeline reads and writes.
type PathsConfig struct {
	InputFolder   string `json:"input_folder" yaml:"input_folder" mapstructure:"input_folder"`
	ArchiveFolder string `json:"archive_folder" yaml:"archive_folder" mapstructure:"archive_folder"`

	// PreviewFolder receives rendered documentation during dry runs.
	PreviewFolder string `json:"preview_folder,omitempty" yaml:"preview_folder,omitempty" mapstructure:"preview_folder"`

	// Ledger is the SQLite publication history. Empty disables it.
	Ledger string `json:"ledger,omitempty" yaml:"ledger,omitempty" mapstructure:"ledger"`
}

// SourceConfig controls which files the scanner picks up.
type SourceConfig struct {
	// Extension is the file-name suffix of recognized source files (default ".py").
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`
}

// Config is the process-wide configuration. It is built once at startup and
// passed by value to each component.
type Config struct {
	OpenRouter OpenRouterConfig `json:"openrouter" yaml:"openrouter" mapstructure:"openrouter"`
	Confluence ConfluenceConfig `json:"confluence" yaml:"confluence" mapstructure:"confluence"`
	Paths      PathsConfig      `json:"paths" yaml:"paths" mapstructure:"paths"`
	Source     SourceConfig     `json:"source" yaml:"source" mapstructure:"source"`
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
}
