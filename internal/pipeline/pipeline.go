// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives each source file through documentation,
// publication, and archiving, one file at a time.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/pdiddy/scriptdoc/internal/confluence"
	"github.com/pdiddy/scriptdoc/internal/httputil"
	"github.com/pdiddy/scriptdoc/internal/scan"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

// Generator produces documentation for one source file.
type Generator interface {
	Generate(ctx context.Context, name, content string) (types.Documentation, error)
}

// Publisher creates a wiki page.
type Publisher interface {
	CreatePage(ctx context.Context, title string, body types.Documentation) (confluence.Page, error)
}

// Archiver moves a published file out of the input folder.
type Archiver interface {
	Archive(path string) (string, error)
}

// Recorder persists per-file outcomes.
type Recorder interface {
	Record(ctx context.Context, runID string, r types.FileResult) error
}

// Previewer stores documentation locally instead of publishing it.
type Previewer interface {
	Write(name string, doc types.Documentation) (string, error)
}

const separator = "------------------------------------------------------------"

// Pipeline holds the stages of a run. Recorder and Previewer are optional;
// a non-nil Previewer turns the run into a dry run that neither publishes
// nor archives.
type Pipeline struct {
	FS        afero.Fs
	Generator Generator
	Publisher Publisher
	Archiver  Archiver
	Recorder  Recorder
	Previewer Previewer

	// Out receives the status lines.
	Out io.Writer

	// NewRunID defaults to a random UUID.
	NewRunID func() string
}

// Run scans the input folder once and processes every matching file in
// listing order. A scan failure is returned before any file is touched;
// per-file failures are logged, counted, and never stop the run.
func (p *Pipeline) Run(ctx context.Context, cfg types.Config) (types.RunSummary, error) {
	w := p.Out
	if w == nil {
		w = io.Discard
	}
	newID := p.NewRunID
	if newID == nil {
		newID = uuid.NewString
	}

	summary := types.RunSummary{RunID: newID()}

	fmt.Fprintf(w, "🚀 Starting source → Confluence documentation run %s\n\n", summary.RunID)

	ext := cfg.Source.Extension
	if ext == "" {
		ext = types.DefaultExtension
	}
	files, err := scan.Scan(p.FS, cfg.Paths.InputFolder, ext)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "⚠️ No source files found in input folder.")
		return summary, nil
	}

	for _, f := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		r := p.processFile(ctx, w, f)
		summary.Add(r)

		if p.Recorder != nil {
			if err := p.Recorder.Record(ctx, summary.RunID, r); err != nil {
				fmt.Fprintf(w, "⚠️ Could not record %s in ledger: %v\n", f.Name, err)
			}
		}
	}

	fmt.Fprintf(w, "\n✅ Run finished: %d completed, %d skipped, %d publish failed, %d previewed, %d archive failed (total: %d)\n",
		summary.Completed, summary.Skipped, summary.PublishFailed, summary.Previewed, summary.ArchiveFailed, summary.Total())
	return summary, nil
}

// processFile runs one file through the stages and returns its outcome.
func (p *Pipeline) processFile(ctx context.Context, w io.Writer, f types.SourceFile) types.FileResult {
	r := types.FileResult{File: f}
	fmt.Fprintf(w, "🧠 Processing: %s\n", f.Name)

	doc, err := p.Generator.Generate(ctx, f.Name, f.Content)
	if err != nil {
		fmt.Fprintf(w, "❌ Documentation %s\n", describe("error", err))
		fmt.Fprintf(w, "❌ Skipped %s due to documentation error\n\n", f.Name)
		r.Outcome = types.OutcomeSkippedNoDoc
		r.Err = err
		return r
	}

	if p.Previewer != nil {
		path, err := p.Previewer.Write(f.Name, doc)
		if err != nil {
			fmt.Fprintf(w, "⚠️ Could not write preview for %s: %v\n", f.Name, err)
			r.Err = err
		} else {
			fmt.Fprintf(w, "📝 Preview written: %s\n", path)
		}
		r.Outcome = types.OutcomePreviewed
		fmt.Fprintln(w, separator)
		return r
	}

	page, err := p.Publisher.CreatePage(ctx, f.Name, doc)
	if err != nil {
		label := "error"
		if confluence.IsDuplicateTitle(err) {
			label = "error (page title already exists)"
		}
		fmt.Fprintf(w, "❌ Confluence %s\n", describe(label, err))
		r.Outcome = types.OutcomePublishFailed
		r.Err = err
		fmt.Fprintln(w, separator)
		return r
	}

	r.Outcome = types.OutcomeCompleted
	r.PageID = page.ID
	r.PageTitle = page.Title
	r.PageURL = page.URL()
	if r.PageURL != "" {
		fmt.Fprintf(w, "✅ Uploaded: %s (%s)\n", page.Title, r.PageURL)
	} else {
		fmt.Fprintf(w, "✅ Uploaded: %s\n", page.Title)
	}

	dest, err := p.Archiver.Archive(f.Path)
	if err != nil {
		fmt.Fprintf(w, "⚠️ Could not archive %s: %v\n", f.Path, err)
		r.Err = err
	} else {
		r.Archived = true
		r.ArchivePath = dest
		fmt.Fprintf(w, "📦 Archived: %s\n", f.Name)
	}

	fmt.Fprintln(w, separator)
	return r
}

// describe formats err for a status line, surfacing the HTTP status and
// response body when the error carries them.
func describe(label string, err error) string {
	if se, ok := httputil.AsStatusError(err); ok {
		return fmt.Sprintf("%s %d: %s", label, se.StatusCode, strings.TrimSpace(se.Body))
	}
	return fmt.Sprintf("%s: %v", label, err)
}
