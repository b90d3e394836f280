// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a .secrets/ directory so they can
// stay out of config.yaml. Each recognized key file backs one viper key; the
// config loader copies a file's trimmed contents into that key only when the
// config file and environment left it empty.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Key file names recognized under the secrets directory.
const (
	OpenRouterAPIKey   = "openrouter-api-key"
	ConfluenceAPIToken = "confluence-api-token"
	ConfluenceEmail    = "confluence-email"
)

// ConfigKeys maps each key file to the viper key it fills.
var ConfigKeys = map[string]string{
	OpenRouterAPIKey:   "openrouter.api_key",
	ConfluenceAPIToken: "confluence.api_token",
	ConfluenceEmail:    "confluence.email",
}

// Load returns the trimmed contents of every key file in ConfigKeys that
// exists in dir and is non-blank, keyed by file name. Other files in dir are
// ignored. A missing dir yields an empty map; a path that is not a directory
// is an error. A key file that cannot be read is reported on stderr and
// left out.
func Load(dir string) (map[string]string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("secrets path %s is not a directory", dir)
	}

	names := make([]string, 0, len(ConfigKeys))
	for name := range ConfigKeys {
		names = append(names, name)
	}
	sort.Strings(names)

	found := make(map[string]string, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			found[name] = v
		}
	}
	return found, nil
}
