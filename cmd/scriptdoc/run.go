// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scriptdoc/internal/archive"
	"github.com/pdiddy/scriptdoc/internal/config"
	"github.com/pdiddy/scriptdoc/internal/confluence"
	"github.com/pdiddy/scriptdoc/internal/docgen"
	"github.com/pdiddy/scriptdoc/internal/ledger"
	"github.com/pdiddy/scriptdoc/internal/pipeline"
	"github.com/pdiddy/scriptdoc/internal/preview"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Document, publish, and archive every file in the input folder",
	Long: `Run scans the input folder once and processes each matching file in turn:
it requests documentation from the completion API, creates a Confluence page
titled with the file name, and moves the file to the archive folder.

A failure for one file is logged and the run moves on to the next file.
With --dry-run the documentation is written to the preview folder instead and
nothing is published or archived.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "write documentation to the preview folder instead of publishing")
	runCmd.Flags().Bool("fail-on-error", false, "exit non-zero when any file is skipped or fails")

	rootCmd.AddCommand(runCmd)
}

// loadConfig builds the run configuration from --config, the environment,
// and the loaded secrets. Dry runs do not need Confluence settings.
func loadConfig(cmd *cobra.Command, dryRun bool) (types.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	v := config.New(cfgFile)
	load := config.Load
	if dryRun {
		load = config.LoadDryRun
	}
	cfg, err := load(v, loadedSecrets)
	if err != nil {
		return types.Config{}, err
	}
	fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	return cfg, nil
}

// newArchiver returns the run's archiver, creating its folder unless the run
// is a dry run, which never moves files.
func newArchiver(fsys afero.Fs, dir string, dryRun bool) (*archive.Archiver, error) {
	arc := archive.New(fsys, dir)
	if dryRun {
		return arc, nil
	}
	if err := arc.Ensure(); err != nil {
		return nil, err
	}
	return arc, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	cfg, err := loadConfig(cmd, dryRun)
	if err != nil {
		return err
	}
	failOnError, _ := cmd.Flags().GetBool("fail-on-error")

	fsys := afero.NewOsFs()
	client := &http.Client{Timeout: cfg.HTTP.Timeout}

	arc, err := newArchiver(fsys, cfg.Paths.ArchiveFolder, dryRun)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		FS:        fsys,
		Generator: docgen.NewOpenRouter(cfg, client),
		Publisher: confluence.New(cfg, client),
		Archiver:  arc,
		Out:       os.Stdout,
	}
	if dryRun {
		p.Previewer = preview.New(fsys, cfg.Paths.PreviewFolder)
	}

	if cfg.Paths.Ledger != "" {
		store, err := ledger.Open(cfg.Paths.Ledger)
		if err != nil {
			return err
		}
		defer store.Close()
		p.Recorder = store
	}

	summary, err := p.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if failOnError && summary.HasFailures() {
		return fmt.Errorf("%d file(s) skipped, %d failed to publish, %d failed to archive",
			summary.Skipped, summary.PublishFailed, summary.ArchiveFailed)
	}
	return nil
}
