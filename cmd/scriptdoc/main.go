// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scriptdoc CLI.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scriptdoc/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the scriptdoc CLI.
var rootCmd = &cobra.Command{
	Use:   "scriptdoc",
	Short: "Document source files with an LLM and publish them to Confluence",
	Long: `scriptdoc reads source files from an input folder, asks a language model
(via OpenRouter) to write documentation for each one, publishes the result as a
Confluence page, and moves the file to an archive folder once the page exists.

Files whose documentation or publication fails stay in the input folder and are
picked up again on the next run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./config.yaml or ~/.config/scriptdoc/config.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of credential files (openrouter-api-key, confluence-api-token, confluence-email)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
